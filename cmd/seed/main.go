// seed inserta hornadas de muestra en PostgreSQL para el entorno de desarrollo:
// productos de panadería con edades que cubren las tres categorías de frescura.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que el API (DATABASE_URL / DB_*).
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hornada-api/internal/domain/entity"
	"github.com/jhoicas/Hornada-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Hornada-api/pkg/config"
	"github.com/jhoicas/Hornada-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	batchRepo := postgres.NewBatchRepository(pool)

	now := time.Now().UTC()
	day := func(daysAgo int) time.Time {
		d := now.AddDate(0, 0, -daysAgo)
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	seed := []entity.Batch{
		{ProductID: "pan-frances", Quantity: decimal.NewFromInt(40), OriginalPrice: decimal.NewFromInt(300), SalePrice: decimal.NewFromInt(500), DateAdded: day(0)},
		{ProductID: "pan-frances", Quantity: decimal.NewFromInt(25), OriginalPrice: decimal.NewFromInt(300), SalePrice: decimal.NewFromInt(500), DateAdded: day(2)},
		{ProductID: "croissant", Quantity: decimal.NewFromInt(18), OriginalPrice: decimal.NewFromInt(1200), SalePrice: decimal.NewFromInt(2000), DateAdded: day(3)},
		{ProductID: "croissant", Quantity: decimal.NewFromInt(12), OriginalPrice: decimal.NewFromInt(1200), SalePrice: decimal.NewFromInt(2000), DateAdded: day(5)},
		{ProductID: "torta-chocolate", Quantity: decimal.NewFromInt(6), OriginalPrice: decimal.NewFromInt(8000), SalePrice: decimal.NewFromInt(14000), DateAdded: day(8)},
	}

	for i := range seed {
		b := seed[i]
		b.ID = uuid.New().String()
		b.Status = entity.BatchStatusActive
		b.CreatedAt = now
		b.UpdatedAt = now
		if err := batchRepo.Create(ctx, &b); err != nil {
			log.Fatal().Err(err).Str("product_id", b.ProductID).Msg("insertar lote de muestra")
		}
		log.Info().
			Str("id", b.ID).
			Str("product_id", b.ProductID).
			Str("date_added", b.DateAdded.Format("2006-01-02")).
			Msg("lote de muestra insertado")
	}

	log.Info().Int("lotes", len(seed)).Msg("seed completado")
}
