package entity

import "time"

// Zone representa una zona geográfica (región + estado) para enrutamiento de entregas.
// Cada zona es dueña de un conjunto de pincodes; un pincode pertenece a lo sumo a una zona.
type Zone struct {
	ID        string
	Name      string
	State     string
	Active    bool
	Pincodes  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}
