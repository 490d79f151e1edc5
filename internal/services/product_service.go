package services

import (
	"context"
	"encoding/json"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/pkg/errs"

	"github.com/rs/zerolog/log"
)

// EventPublisher delivers serialized product events under a routing key.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	now       func() time.Time
}

// NewProductService creates a new ProductService. publisher may be nil, in which case no
// events are published.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// ListAll retrieves all products.
func (s *ProductService) ListAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, errNoProducts()
	}
	return products, nil
}

// ListAllSortedByPrice retrieves all products ordered by price in the given direction.
func (s *ProductService) ListAllSortedByPrice(ctx context.Context, dir models.SortDirection) ([]models.Product, error) {
	products, err := s.repo.FindAllSortedBy(ctx, repositories.FieldPrice, dir)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, errNoProducts()
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (s *ProductService) GetByID(ctx context.Context, id uint64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errs.NotFound("no product found with id: '%d'", id)
	}
	return product, nil
}

// ListByName retrieves every product with exactly the given name.
func (s *ProductService) ListByName(ctx context.Context, name string) ([]models.Product, error) {
	products, err := s.repo.FindAllByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, errs.NotFound("no product found with name '%s'", name)
	}
	return products, nil
}

// Create stores a new product. Any ID on the input is discarded.
func (s *ProductService) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	product.ID = 0
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, models.EventProductCreated, saved.ID, &saved)
	return &saved, nil
}

// Update merges patch into the product with the given ID and stores the result.
func (s *ProductService) Update(ctx context.Context, id uint64, patch models.ProductPatch) (*models.Product, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, models.Merge(*current, patch))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, models.EventProductUpdated, saved.ID, &saved)
	return &saved, nil
}

// Delete removes the product with the given ID. It reports false when there was no such
// product.
func (s *ProductService) Delete(ctx context.Context, id uint64) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return false, err
	}
	s.publish(ctx, models.EventProductDeleted, id, nil)
	return true, nil
}

// publish emits a product event. Failures are logged and never reach the caller.
func (s *ProductService) publish(ctx context.Context, eventType string, id uint64, product *models.Product) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(models.ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("event", eventType).Uint64("product_id", id).Msg("failed to marshal product event")
		return
	}
	if err := s.publisher.Publish(ctx, eventType, body); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("event", eventType).Uint64("product_id", id).Msg("failed to publish product event")
	}
}

func errNoProducts() *errs.Error {
	return errs.NotFound("no product found in the database")
}
