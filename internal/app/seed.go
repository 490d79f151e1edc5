package app

import (
	"context"

	"catalog/internal/models"
	"catalog/internal/services"
	"catalog/pkg/errs"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// seedProducts is the bootstrap catalog. Two entries share a name on purpose.
var seedProducts = []models.Product{
	{Name: "producto A", Description: "Product no. 1 of the catalog", Price: models.NewPrice(decimal.NewFromInt(10)), Quantity: 10},
	{Name: "producto B", Description: "Product no. 2 of the catalog", Price: models.NewPrice(decimal.NewFromInt(5)), Quantity: 250},
	{Name: "producto C", Description: "Product no. 3 of the catalog", Price: models.NewPrice(decimal.NewFromInt(100)), Quantity: 5},
	{Name: "producto A", Description: "Product no. 4 of the catalog", Price: models.NewPrice(decimal.NewFromInt(200)), Quantity: 50},
}

// Seed stores the bootstrap products when the catalog is empty.
func Seed(ctx context.Context, service *services.ProductService) error {
	existing, err := service.ListAll(ctx)
	if err != nil && !errs.IsNotFound(err) {
		return err
	}
	if len(existing) > 0 {
		log.Info().Int("products", len(existing)).Msg("catalog already populated, skipping seed")
		return nil
	}

	for _, p := range seedProducts {
		created, err := service.Create(ctx, p)
		if err != nil {
			return err
		}
		log.Info().Uint64("id", created.ID).Str("name", created.Name).Msg("seeded product")
	}
	return nil
}
