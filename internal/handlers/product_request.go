package handlers

import (
	"catalog/internal/models"

	"github.com/shopspring/decimal"
)

// CreateProductRequest is the body accepted when creating a product. Any id in the body is
// ignored.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"notblank"`
	Description string           `json:"description" validate:"notblank"`
	Price       *decimal.Decimal `json:"price" validate:"required,decimal_gte=0"`
	Quantity    *int64           `json:"quantity" validate:"required,min=1"`
}

// Product converts the validated request into a product without an id.
func (r CreateProductRequest) Product() models.Product {
	return models.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       models.NewPrice(*r.Price),
		Quantity:    *r.Quantity,
	}
}

// UpdateProductRequest is the body accepted for a partial update. Omitted or null fields are
// left unchanged and any id in the body is ignored.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,notblank"`
	Description *string          `json:"description" validate:"omitempty,notblank"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,decimal_gte=0"`
	Quantity    *int64           `json:"quantity" validate:"omitempty,min=1"`
}

// Patch converts the validated request into a product patch.
func (r UpdateProductRequest) Patch() models.ProductPatch {
	return models.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
	}
}
