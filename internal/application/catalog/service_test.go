package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/panchhi-sarees/storefront-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Put(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProductStore) Get(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) Scan(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if p, _ := args.Get(0).([]domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	args := m.Called(ctx, category)
	if p, _ := args.Get(0).([]domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) Update(ctx context.Context, productID string, updates map[string]interface{}) error {
	return m.Called(ctx, productID, updates).Error(0)
}
func (m *mockProductStore) Delete(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) UploadBase64(ctx context.Context, key, b64Data string) (string, error) {
	args := m.Called(ctx, key, b64Data)
	return args.String(0), args.Error(1)
}
func (m *mockImageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func TestList_WithCategory_UsesIndex(t *testing.T) {
	ps := &mockProductStore{}
	ps.On("ListByCategory", mock.Anything, "silk").Return([]domain.Product{{ProductID: "p1"}}, nil)

	svc := NewService(ps, nil)
	products, err := svc.List(context.Background(), "silk")

	require.NoError(t, err)
	assert.Len(t, products, 1)
	ps.AssertNotCalled(t, "Scan", mock.Anything)
}

func TestList_NoCategory_ScansAll(t *testing.T) {
	ps := &mockProductStore{}
	ps.On("Scan", mock.Anything).Return([]domain.Product{{ProductID: "p1"}, {ProductID: "p2"}}, nil)

	svc := NewService(ps, nil)
	products, err := svc.List(context.Background(), "")

	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCreate_WithBase64Image_UploadsAndStoresURL(t *testing.T) {
	ps := &mockProductStore{}
	is := &mockImageStore{}
	is.On("UploadBase64", mock.Anything, mock.Anything, "aW1n").
		Return("https://bucket.s3.ap-south-1.amazonaws.com/products/x.jpg", nil)

	var created *domain.Product
	ps.On("Put", mock.Anything, mock.AnythingOfType("*domain.Product")).Run(func(args mock.Arguments) {
		created = args.Get(1).(*domain.Product)
	}).Return(nil)

	svc := NewService(ps, is)
	p, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name:        "Kota Doria Saree",
		Description: "Lightweight handwoven saree",
		Price:       2499,
		Category:    "cotton",
		Fabric:      "kota doria",
		Quantity:    12,
		ImageBase64: "aW1n",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3.ap-south-1.amazonaws.com/products/x.jpg", p.ImageURL)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ProductID)
	is.AssertExpectations(t)
}

func TestCreate_UploadFailure_DoesNotPersist(t *testing.T) {
	ps := &mockProductStore{}
	is := &mockImageStore{}
	is.On("UploadBase64", mock.Anything, mock.Anything, "aW1n").Return("", errors.New("s3 down"))

	svc := NewService(ps, is)
	_, err := svc.Create(context.Background(), domain.CreateProductRequest{
		Name: "Saree", Price: 100, Category: "silk", Quantity: 1, ImageBase64: "aW1n",
	})

	require.Error(t, err)
	ps.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestUpdate_OnlyProvidedFieldsChange(t *testing.T) {
	ps := &mockProductStore{}
	price := 1999.0
	ps.On("Update", mock.Anything, "p1", map[string]interface{}{fieldPrice: price}).Return(nil)
	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{ProductID: "p1", Price: price}, nil)

	svc := NewService(ps, nil)
	p, err := svc.Update(context.Background(), "p1", domain.UpdateProductRequest{Price: &price})

	require.NoError(t, err)
	assert.Equal(t, price, p.Price)
	ps.AssertExpectations(t)
}

func TestUpdate_NoFields_ReturnsCurrentRecord(t *testing.T) {
	ps := &mockProductStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{ProductID: "p1"}, nil)

	svc := NewService(ps, nil)
	_, err := svc.Update(context.Background(), "p1", domain.UpdateProductRequest{})

	require.NoError(t, err)
	ps.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_UnknownProduct_ReturnsNotFound(t *testing.T) {
	ps := &mockProductStore{}
	ps.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := NewService(ps, nil)
	err := svc.Delete(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	ps.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_HostedImage_RemovedFromStorage(t *testing.T) {
	ps := &mockProductStore{}
	is := &mockImageStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{
		ProductID: "p1",
		ImageURL:  "https://bucket.s3.ap-south-1.amazonaws.com/products/p1.jpg",
	}, nil)
	ps.On("Delete", mock.Anything, "p1").Return(nil)
	is.On("Delete", mock.Anything, "products/p1.jpg").Return(nil)

	svc := NewService(ps, is)
	require.NoError(t, svc.Delete(context.Background(), "p1"))
	is.AssertExpectations(t)
}

func TestDelete_ExternalImageURL_LeftAlone(t *testing.T) {
	ps := &mockProductStore{}
	is := &mockImageStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{
		ProductID: "p1",
		ImageURL:  "https://cdn.example.com/p1.jpg",
	}, nil)
	ps.On("Delete", mock.Anything, "p1").Return(nil)

	svc := NewService(ps, is)
	require.NoError(t, svc.Delete(context.Background(), "p1"))
	is.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
