package dto

// ResolveFulfillmentRequest entrada para POST /fulfillment/resolve.
type ResolveFulfillmentRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Pincode   string `json:"pincode" validate:"required,min=4,max=10"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

// CandidateStock bodega consultada durante la resolución, con la cantidad observada.
type CandidateStock struct {
	WarehouseID string `json:"warehouse_id"`
	Tier        string `json:"tier"`
	Quantity    int64  `json:"quantity"`
}

// ResolveFulfillmentResponse bodega elegida y la lista de candidatas consultadas
// en orden, para diagnóstico. Con OUT_OF_STOCK WarehouseID va vacío y Candidates
// trae la cadena completa con cantidades.
type ResolveFulfillmentResponse struct {
	ProductID   string           `json:"product_id"`
	Pincode     string           `json:"pincode"`
	Quantity    int64            `json:"quantity"`
	WarehouseID string           `json:"warehouse_id,omitempty"`
	Candidates  []CandidateStock `json:"candidates"`
}
