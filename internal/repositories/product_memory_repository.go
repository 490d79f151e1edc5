package repositories

import (
	"context"
	"sync"

	"catalog/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// Products are kept in insertion order.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   uint64
}

// NewMemoryProductRepository creates a new, empty MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{nextID: 1}
}

// FindAll returns all products.
func (r *MemoryProductRepository) FindAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.snapshot(), nil
}

// FindAllSortedBy returns all products ordered by field. The sort is stable, so ties keep
// insertion order.
func (r *MemoryProductRepository) FindAllSortedBy(_ context.Context, field string, dir models.SortDirection) ([]models.Product, error) {
	if _, err := sortColumn(field); err != nil {
		return nil, err
	}
	r.mu.RLock()
	products := r.snapshot()
	r.mu.RUnlock()

	sortProducts(products, field, dir)
	return products, nil
}

// FindByID returns a product by its ID, or nil.
func (r *MemoryProductRepository) FindByID(_ context.Context, id uint64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		product := r.products[i]
		return &product, nil
	}
	return nil, nil
}

// FindOneByName returns the first product with the given name, or nil.
func (r *MemoryProductRepository) FindOneByName(_ context.Context, name string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Name == name {
			product := p
			return &product, nil
		}
	}
	return nil, nil
}

// FindAllByName returns every product with the given name.
func (r *MemoryProductRepository) FindAllByName(_ context.Context, name string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []models.Product
	for _, p := range r.products {
		if p.Name == name {
			products = append(products, p)
		}
	}
	return products, nil
}

// Save adds a new product or replaces an existing one.
func (r *MemoryProductRepository) Save(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	if i := r.indexOf(product.ID); i >= 0 {
		r.products[i] = product
	} else {
		r.products = append(r.products, product)
	}
	return product, nil
}

// DeleteByID removes a product by its ID.
func (r *MemoryProductRepository) DeleteByID(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.products = append(r.products[:i], r.products[i+1:]...)
	}
	return nil
}

// ExistsByID reports whether a product with the given ID is stored.
func (r *MemoryProductRepository) ExistsByID(_ context.Context, id uint64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.indexOf(id) >= 0, nil
}

func (r *MemoryProductRepository) snapshot() []models.Product {
	products := make([]models.Product, len(r.products))
	copy(products, r.products)
	return products
}

func (r *MemoryProductRepository) indexOf(id uint64) int {
	for i, p := range r.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
