package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product in the catalog.
type Product struct {
	ID          uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"type:varchar(255);not null;index"`
	Description string `json:"description" gorm:"type:text;not null"`
	Price       Price  `json:"price" gorm:"not null"`
	Quantity    int64  `json:"quantity" gorm:"not null"`
}

// TableName pins the table to "product" instead of GORM's pluralized default.
func (Product) TableName() string {
	return "product"
}

// ProductPatch carries the fields of a partial update. A nil field means "leave unchanged".
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int64
}

// Merge applies patch on top of current and returns the result.
//
// A field is replaced only when the patch supplies it and the supplied value differs from
// the current one, so an absent field and an unchanged field are indistinguishable. The id
// is always taken from current.
func Merge(current Product, patch ProductPatch) Product {
	merged := current
	if patch.Name != nil && *patch.Name != current.Name {
		merged.Name = *patch.Name
	}
	if patch.Description != nil && *patch.Description != current.Description {
		merged.Description = *patch.Description
	}
	if patch.Price != nil && !patch.Price.Equal(current.Price.Decimal) {
		merged.Price = NewPrice(*patch.Price)
	}
	if patch.Quantity != nil && *patch.Quantity != current.Quantity {
		merged.Quantity = *patch.Quantity
	}
	return merged
}

// SortDirection is the ordering requested for a sorted listing.
type SortDirection string

const (
	Asc  SortDirection = "ASC"
	Desc SortDirection = "DESC"
)

// ParseSortDirection accepts "asc" or "desc" in any letter case.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch SortDirection(strings.ToUpper(s)) {
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	}
	return "", false
}
