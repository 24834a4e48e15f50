package account

import (
	"context"
	"errors"
	"testing"

	"github.com/panchhi-sarees/storefront-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCustomerStore struct{ mock.Mock }

func (m *mockCustomerStore) Get(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if c, _ := args.Get(0).(*domain.Customer); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCustomerStore) Update(ctx context.Context, customerID string, updates map[string]interface{}) error {
	return m.Called(ctx, customerID, updates).Error(0)
}

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Get(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func customer(mod func(*domain.Customer)) *domain.Customer {
	c := &domain.Customer{CustomerID: "c1"}
	if mod != nil {
		mod(c)
	}
	return c
}

// --- wishlist ---

func TestToggleWishlist_AddsWhenAbsent(t *testing.T) {
	cs := &mockCustomerStore{}
	ps := &mockProductStore{}
	cs.On("Get", mock.Anything, "c1").Return(customer(nil), nil)
	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{ProductID: "p1"}, nil)
	cs.On("Update", mock.Anything, "c1", map[string]interface{}{fieldWishlist: []string{"p1"}}).Return(nil)

	svc := NewService(cs, ps)
	wishlist, err := svc.ToggleWishlist(context.Background(), "c1", "p1")

	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, wishlist)
	cs.AssertExpectations(t)
}

func TestToggleWishlist_RemovesWhenPresent(t *testing.T) {
	cs := &mockCustomerStore{}
	ps := &mockProductStore{}
	cs.On("Get", mock.Anything, "c1").Return(customer(func(c *domain.Customer) {
		c.Wishlist = []string{"p1", "p2"}
	}), nil)
	cs.On("Update", mock.Anything, "c1", map[string]interface{}{fieldWishlist: []string{"p2"}}).Return(nil)

	svc := NewService(cs, ps)
	wishlist, err := svc.ToggleWishlist(context.Background(), "c1", "p1")

	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, wishlist)
	// Removal never touches the catalog.
	ps.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestToggleWishlist_UnknownProduct_ReturnsNotFound(t *testing.T) {
	cs := &mockCustomerStore{}
	ps := &mockProductStore{}
	cs.On("Get", mock.Anything, "c1").Return(customer(nil), nil)
	ps.On("Get", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	svc := NewService(cs, ps)
	_, err := svc.ToggleWishlist(context.Background(), "c1", "ghost")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	cs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

// --- cart ---

func TestCart_SkipsDelistedProducts(t *testing.T) {
	cs := &mockCustomerStore{}
	ps := &mockProductStore{}
	cs.On("Get", mock.Anything, "c1").Return(customer(func(c *domain.Customer) {
		c.Cart = []domain.CartItem{
			{ProductID: "p1", Size: "M", Quantity: 2},
			{ProductID: "gone", Size: "L", Quantity: 1},
		}
	}), nil)
	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{ProductID: "p1", Name: "Kota Saree"}, nil)
	ps.On("Get", mock.Anything, "gone").Return(nil, domain.ErrNotFound)

	svc := NewService(cs, ps)
	lines, err := svc.Cart(context.Background(), "c1")

	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Kota Saree", lines[0].Product.Name)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestUpsertCartItem_ReplacesQuantityForSameProductAndSize(t *testing.T) {
	cs := &mockCustomerStore{}
	ps := &mockProductStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{ProductID: "p1"}, nil)
	cs.On("Get", mock.Anything, "c1").Return(customer(func(c *domain.Customer) {
		c.Cart = []domain.CartItem{{ProductID: "p1", Size: "M", Quantity: 1}}
	}), nil)
	cs.On("Update", mock.Anything, "c1", mock.Anything).Return(nil)

	svc := NewService(cs, ps)
	cart, err := svc.UpsertCartItem(context.Background(), "c1", CartItemRequest{ProductID: "p1", Size: "M", Quantity: 3})

	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestUpsertCartItem_SameProductDifferentSize_AppendsLine(t *testing.T) {
	cs := &mockCustomerStore{}
	ps := &mockProductStore{}
	ps.On("Get", mock.Anything, "p1").Return(&domain.Product{ProductID: "p1"}, nil)
	cs.On("Get", mock.Anything, "c1").Return(customer(func(c *domain.Customer) {
		c.Cart = []domain.CartItem{{ProductID: "p1", Size: "M", Quantity: 1}}
	}), nil)
	cs.On("Update", mock.Anything, "c1", mock.Anything).Return(nil)

	svc := NewService(cs, ps)
	cart, err := svc.UpsertCartItem(context.Background(), "c1", CartItemRequest{ProductID: "p1", Size: "L", Quantity: 2})

	require.NoError(t, err)
	assert.Len(t, cart, 2)
}

func TestRemoveCartItem_NotInCart_ReturnsNotFound(t *testing.T) {
	cs := &mockCustomerStore{}
	cs.On("Get", mock.Anything, "c1").Return(customer(nil), nil)

	svc := NewService(cs, nil)
	_, err := svc.RemoveCartItem(context.Background(), "c1", "p1", "M")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// --- addresses ---

func addrReq(isDefault bool) AddressRequest {
	return AddressRequest{
		FullName:     "Asha Rao",
		Phone:        "9876543210",
		AddressLine1: "12 MG Road",
		City:         "Jaipur",
		State:        "Rajasthan",
		Pincode:      "302001",
		Country:      "India",
		IsDefault:    isDefault,
	}
}

func TestAddAddress_FirstIsAlwaysDefault(t *testing.T) {
	cs := &mockCustomerStore{}
	cs.On("Get", mock.Anything, "c1").Return(customer(nil), nil)
	cs.On("Update", mock.Anything, "c1", mock.Anything).Return(nil)

	svc := NewService(cs, nil)
	addresses, err := svc.AddAddress(context.Background(), "c1", addrReq(false))

	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.True(t, addresses[0].IsDefault)
	assert.NotEmpty(t, addresses[0].AddressID)
}

func TestAddAddress_NewDefaultClearsOldDefault(t *testing.T) {
	cs := &mockCustomerStore{}
	cs.On("Get", mock.Anything, "c1").Return(customer(func(c *domain.Customer) {
		c.Addresses = []domain.Address{{AddressID: "a1", IsDefault: true}}
	}), nil)
	cs.On("Update", mock.Anything, "c1", mock.Anything).Return(nil)

	svc := NewService(cs, nil)
	addresses, err := svc.AddAddress(context.Background(), "c1", addrReq(true))

	require.NoError(t, err)
	require.Len(t, addresses, 2)
	assert.False(t, addresses[0].IsDefault)
	assert.True(t, addresses[1].IsDefault)
}

func TestEditAddress_UnknownID_ReturnsNotFound(t *testing.T) {
	cs := &mockCustomerStore{}
	cs.On("Get", mock.Anything, "c1").Return(customer(nil), nil)

	svc := NewService(cs, nil)
	_, err := svc.EditAddress(context.Background(), "c1", "ghost", addrReq(false))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteAddress_RemovingDefault_PromotesFirstRemaining(t *testing.T) {
	cs := &mockCustomerStore{}
	cs.On("Get", mock.Anything, "c1").Return(customer(func(c *domain.Customer) {
		c.Addresses = []domain.Address{
			{AddressID: "a1", IsDefault: true},
			{AddressID: "a2"},
		}
	}), nil)
	cs.On("Update", mock.Anything, "c1", mock.Anything).Return(nil)

	svc := NewService(cs, nil)
	addresses, err := svc.DeleteAddress(context.Background(), "c1", "a1")

	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, "a2", addresses[0].AddressID)
	assert.True(t, addresses[0].IsDefault)
}
