package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllSortedBy(ctx context.Context, field string, dir models.SortDirection) ([]models.Product, error) {
	args := m.Called(ctx, field, dir)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindOneByName(ctx context.Context, name string) (*models.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllByName(ctx context.Context, name string) ([]models.Product, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product models.Product) (models.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *MockProductRepository) DeleteByID(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockPublisher records published product events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	args := m.Called(ctx, routingKey, body)
	return args.Error(0)
}

var ctx = context.Background()

func productA() models.Product {
	return models.Product{ID: 1, Name: "A", Description: "D", Price: models.NewPrice(decimal.NewFromInt(10)), Quantity: 10}
}

func TestProductService_ListAll(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := []models.Product{productA()}
	mockRepo.On("FindAll", ctx).Return(expected, nil).Once()

	products, err := service.ListAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expected, products)

	// Empty store
	mockRepo.On("FindAll", ctx).Return([]models.Product{}, nil).Once()
	products, err = service.ListAll(ctx)
	assert.Nil(t, products)
	assert.True(t, errs.IsNotFound(err))
	assert.EqualError(t, err, "no product found in the database")
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListAllSortedByPrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := []models.Product{productA()}
	mockRepo.On("FindAllSortedBy", ctx, repositories.FieldPrice, models.Desc).Return(expected, nil).Once()

	products, err := service.ListAllSortedByPrice(ctx, models.Desc)
	assert.NoError(t, err)
	assert.Equal(t, expected, products)

	mockRepo.On("FindAllSortedBy", ctx, repositories.FieldPrice, models.Asc).Return([]models.Product(nil), nil).Once()
	_, err = service.ListAllSortedByPrice(ctx, models.Asc)
	assert.True(t, errs.IsNotFound(err))
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := productA()
	mockRepo.On("FindByID", ctx, uint64(1)).Return(&expected, nil).Once()
	product, err := service.GetByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, &expected, product)

	// Test product not found
	mockRepo.On("FindByID", ctx, uint64(99)).Return(nil, nil).Once()
	product, err = service.GetByID(ctx, 99)
	assert.Nil(t, product)
	var domainErr *errs.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusNotFound, domainErr.Status)
	assert.Equal(t, "no product found with id: '99'", domainErr.Message)

	// Storage faults propagate untouched
	mockRepo.On("FindByID", ctx, uint64(3)).Return(nil, fmt.Errorf("database error")).Once()
	_, err = service.GetByID(ctx, 3)
	assert.EqualError(t, err, "database error")
	assert.False(t, errs.IsNotFound(err))
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListByName(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := []models.Product{productA(), {ID: 4, Name: "A"}}
	mockRepo.On("FindAllByName", ctx, "A").Return(expected, nil).Once()
	products, err := service.ListByName(ctx, "A")
	assert.NoError(t, err)
	assert.Equal(t, expected, products)

	mockRepo.On("FindAllByName", ctx, "Z").Return([]models.Product{}, nil).Once()
	_, err = service.ListByName(ctx, "Z")
	assert.True(t, errs.IsNotFound(err))
	assert.EqualError(t, err, "no product found with name 'Z'")
	mockRepo.AssertExpectations(t)
}

func TestProductService_Create(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockPub)

	input := productA()
	input.ID = 42 // client supplied ids are ignored
	toSave := input
	toSave.ID = 0
	stored := productA()

	mockRepo.On("Save", ctx, toSave).Return(stored, nil).Once()
	mockPub.On("Publish", ctx, models.EventProductCreated, mock.MatchedBy(func(body []byte) bool {
		var event models.ProductEvent
		return json.Unmarshal(body, &event) == nil &&
			event.Type == models.EventProductCreated &&
			event.ProductID == 1 &&
			event.Product != nil
	})).Return(nil).Once()

	created, err := service.Create(ctx, input)
	assert.NoError(t, err)
	assert.Equal(t, &stored, created)

	// Test creation failure (e.g., database error)
	mockRepo.On("Save", ctx, toSave).Return(models.Product{}, fmt.Errorf("database error")).Once()
	created, err = service.Create(ctx, input)
	assert.Nil(t, created)
	assert.EqualError(t, err, "database error")

	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestProductService_Create_PublishFailureIsNotReturned(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockPub)

	mockRepo.On("Save", ctx, mock.Anything).Return(productA(), nil).Once()
	mockPub.On("Publish", ctx, models.EventProductCreated, mock.Anything).Return(fmt.Errorf("broker down")).Once()

	created, err := service.Create(ctx, productA())
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), created.ID)
	mockPub.AssertExpectations(t)
}

func TestProductService_Update(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	current := productA()
	name := "A-mod"
	merged := current
	merged.Name = name

	mockRepo.On("FindByID", ctx, uint64(1)).Return(&current, nil).Once()
	mockRepo.On("Save", ctx, merged).Return(merged, nil).Once()

	updated, err := service.Update(ctx, 1, models.ProductPatch{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), updated.ID)
	assert.Equal(t, "A-mod", updated.Name)
	assert.Equal(t, "D", updated.Description)
	assert.True(t, decimal.NewFromInt(10).Equal(updated.Price.Decimal))
	assert.Equal(t, int64(10), updated.Quantity)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Update_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("FindByID", ctx, uint64(99)).Return(nil, nil).Once()

	updated, err := service.Update(ctx, 99, models.ProductPatch{})
	assert.Nil(t, updated)
	assert.True(t, errs.IsNotFound(err))
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Update_IdempotentForEqualValues(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	service := services.NewProductService(repo, nil)

	created, err := service.Create(ctx, productA())
	require.NoError(t, err)

	name, price, quantity := created.Name, decimal.RequireFromString("10.0"), created.Quantity
	patch := models.ProductPatch{Name: &name, Price: &price, Quantity: &quantity}

	once, err := service.Update(ctx, created.ID, patch)
	require.NoError(t, err)
	twice, err := service.Update(ctx, created.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, *created, *once)
	assert.Equal(t, *once, *twice)
}

func TestProductService_Delete(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPub := new(MockPublisher)
	service := services.NewProductService(mockRepo, mockPub)

	// Test successful deletion
	mockRepo.On("ExistsByID", ctx, uint64(1)).Return(true, nil).Once()
	mockRepo.On("DeleteByID", ctx, uint64(1)).Return(nil).Once()
	mockPub.On("Publish", ctx, models.EventProductDeleted, mock.Anything).Return(nil).Once()
	deleted, err := service.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, deleted)

	// Test deletion of a missing product
	mockRepo.On("ExistsByID", ctx, uint64(99)).Return(false, nil).Once()
	deleted, err = service.Delete(ctx, 99)
	assert.NoError(t, err)
	assert.False(t, deleted)
	mockRepo.AssertNotCalled(t, "DeleteByID", ctx, uint64(99))

	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestProductService_DeleteThenGet(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()
	service := services.NewProductService(repo, nil)

	created, err := service.Create(ctx, productA())
	require.NoError(t, err)
	other, err := service.Create(ctx, productA())
	require.NoError(t, err)

	deleted, err := service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = service.GetByID(ctx, created.ID)
	assert.True(t, errs.IsNotFound(err))

	deleted, err = service.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	remaining, err := service.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].ID)
}
