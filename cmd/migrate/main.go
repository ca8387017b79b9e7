// Aplica las migraciones SQL de ./migrations en orden lexicográfico.
// Uso: go run ./cmd/migrate [directorio]
package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/jhoicas/Logistica-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Logistica-api/pkg/config"
	"github.com/jhoicas/Logistica-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})

	dir := "migrations"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		log.Fatal().Err(err).Msg("listar migraciones")
	}
	if len(files) == 0 {
		log.Fatal().Str("dir", dir).Msg("no hay migraciones que aplicar")
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("leer migración")
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("aplicar migración")
		}
		log.Info().Str("file", filepath.Base(file)).Msg("migración aplicada")
	}
	log.Info().Int("count", len(files)).Msg("migraciones completas")
}
