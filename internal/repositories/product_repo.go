package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// Lookups report absence as a nil product or an empty slice, never as an error. Listings
// come back in insertion (id) order unless a sort is requested, in which case ties on the
// sort field keep insertion order.
type ProductRepository interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindAllSortedBy(ctx context.Context, field string, dir models.SortDirection) ([]models.Product, error)
	FindByID(ctx context.Context, id uint64) (*models.Product, error)
	FindOneByName(ctx context.Context, name string) (*models.Product, error)
	FindAllByName(ctx context.Context, name string) ([]models.Product, error)
	// Save inserts the product when its ID is zero and updates it by ID otherwise. The
	// stored copy, including an assigned ID, is returned.
	Save(ctx context.Context, product models.Product) (models.Product, error)
	DeleteByID(ctx context.Context, id uint64) error
	ExistsByID(ctx context.Context, id uint64) (bool, error)
}

// Sortable product fields, mapped to their column names.
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldPrice    = "price"
	FieldQuantity = "quantity"
)

var sortableColumns = map[string]string{
	FieldID:       "id",
	FieldName:     "name",
	FieldPrice:    "price",
	FieldQuantity: "quantity",
}

func sortColumn(field string) (string, error) {
	col, ok := sortableColumns[field]
	if !ok {
		return "", fmt.Errorf("cannot sort products by %q", field)
	}
	return col, nil
}

// sortProducts orders products by field in place. The sort is stable, so ties keep their
// incoming order.
func sortProducts(products []models.Product, field string, dir models.SortDirection) {
	sort.SliceStable(products, func(i, j int) bool {
		c := compareField(products[i], products[j], field)
		if dir == models.Desc {
			return c > 0
		}
		return c < 0
	})
}

func compareField(a, b models.Product, field string) int {
	switch field {
	case FieldName:
		return strings.Compare(a.Name, b.Name)
	case FieldPrice:
		return a.Price.Cmp(b.Price.Decimal)
	case FieldQuantity:
		return compareInt(a.Quantity, b.Quantity)
	default:
		return compareInt(int64(a.ID), int64(b.ID))
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
