package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Price is an exact decimal amount.
//
// It is stored as numeric on postgres and as text on sqlite, where numeric affinity would
// round it to a float. Text prices do not order numerically, so sqlite sorts by price in Go.
type Price struct {
	decimal.Decimal
}

// NewPrice wraps d.
func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

// GormDBDataType picks the column type for the connected dialect.
func (Price) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "numeric"
}
