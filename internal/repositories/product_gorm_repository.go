package repositories

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// FindAll retrieves all products in insertion order.
func (r *GORMProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// FindAllSortedBy retrieves all products ordered by field, breaking ties by id.
func (r *GORMProductRepository) FindAllSortedBy(ctx context.Context, field string, dir models.SortDirection) ([]models.Product, error) {
	col, err := sortColumn(field)
	if err != nil {
		return nil, err
	}
	if field == FieldPrice && r.db.Dialector.Name() == "sqlite" {
		// Prices are text on sqlite, so the column does not order numerically.
		products, err := r.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		sortProducts(products, field, dir)
		return products, nil
	}

	var products []models.Product
	err = r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: dir == models.Desc}).
		Order("id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products sorted by %s: %w", field, err)
	}
	return products, nil
}

// FindByID retrieves a single product by its ID. It returns nil when there is none.
func (r *GORMProductRepository) FindByID(ctx context.Context, id uint64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// FindOneByName retrieves the first product with exactly the given name.
func (r *GORMProductRepository) FindOneByName(ctx context.Context, name string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by name %q: %w", name, err)
	}
	return &product, nil
}

// FindAllByName retrieves every product with exactly the given name.
func (r *GORMProductRepository) FindAllByName(ctx context.Context, name string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products by name %q: %w", name, err)
	}
	return products, nil
}

// Save inserts or updates a product.
func (r *GORMProductRepository) Save(ctx context.Context, product models.Product) (models.Product, error) {
	if product.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&product).Error; err != nil {
			return models.Product{}, fmt.Errorf("failed to create product: %w", err)
		}
		return product, nil
	}
	// Save writes every column, zero values included.
	if err := r.db.WithContext(ctx).Save(&product).Error; err != nil {
		return models.Product{}, fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	return product, nil
}

// DeleteByID deletes a product by its ID. Deleting a missing product is not an error.
func (r *GORMProductRepository) DeleteByID(ctx context.Context, id uint64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}

// ExistsByID reports whether a product with the given ID is stored.
func (r *GORMProductRepository) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product %d: %w", id, err)
	}
	return count > 0, nil
}
