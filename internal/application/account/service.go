package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/panchhi-sarees/storefront-api/internal/domain"
	"github.com/panchhi-sarees/storefront-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldWishlist  = "wishlist"
	fieldCart      = "cart"
	fieldAddresses = "addresses"
)

type AddressRequest struct {
	FullName     string `json:"full_name" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Pincode      string `json:"pincode" validate:"required"`
	Country      string `json:"country" validate:"required"`
	IsDefault    bool   `json:"is_default"`
}

type CartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CartLine is a cart entry joined with its live product record.
type CartLine struct {
	Product  *domain.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size"`
}

// Service manages the customer-owned embedded data: wishlist, cart and
// addresses all live inside the customer document and every mutation is a
// read-modify-write of the whole embedded list.
type Service interface {
	Profile(ctx context.Context, customerID string) (*domain.Customer, error)
	ToggleWishlist(ctx context.Context, customerID, productID string) ([]string, error)
	Cart(ctx context.Context, customerID string) ([]CartLine, error)
	UpsertCartItem(ctx context.Context, customerID string, req CartItemRequest) ([]domain.CartItem, error)
	RemoveCartItem(ctx context.Context, customerID, productID, size string) ([]domain.CartItem, error)
	Addresses(ctx context.Context, customerID string) ([]domain.Address, error)
	AddAddress(ctx context.Context, customerID string, req AddressRequest) ([]domain.Address, error)
	EditAddress(ctx context.Context, customerID, addressID string, req AddressRequest) ([]domain.Address, error)
	DeleteAddress(ctx context.Context, customerID, addressID string) ([]domain.Address, error)
}

type customerStore interface {
	Get(ctx context.Context, customerID string) (*domain.Customer, error)
	Update(ctx context.Context, customerID string, updates map[string]interface{}) error
}

type productStore interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
}

type service struct {
	customers customerStore
	products  productStore
}

func NewService(customers customerStore, products productStore) Service {
	return &service{customers: customers, products: products}
}

func (s *service) Profile(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customers.Get(ctx, customerID)
}

// ToggleWishlist adds productID to the wishlist if absent and removes it if
// present, returning the resulting list.
func (s *service) ToggleWishlist(ctx context.Context, customerID, productID string) ([]string, error) {
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	next := make([]string, 0, len(c.Wishlist)+1)
	found := false
	for _, pid := range c.Wishlist {
		if pid == productID {
			found = true
			continue
		}
		next = append(next, pid)
	}
	if !found {
		if _, err := s.products.Get(ctx, productID); err != nil {
			return nil, err
		}
		next = append(next, productID)
	}
	if err := s.customers.Update(ctx, customerID, map[string]interface{}{fieldWishlist: next}); err != nil {
		return nil, err
	}
	return next, nil
}

// Cart joins the embedded cart lines with live product records. Lines whose
// product has been removed from the catalog are skipped rather than erroring.
func (s *service) Cart(ctx context.Context, customerID string) ([]CartLine, error) {
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	lines := make([]CartLine, 0, len(c.Cart))
	for _, item := range c.Cart {
		p, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, err
		}
		lines = append(lines, CartLine{Product: p, Quantity: item.Quantity, Size: item.Size})
	}
	return lines, nil
}

// UpsertCartItem replaces the quantity of the matching (product, size) line
// or appends a new line.
func (s *service) UpsertCartItem(ctx context.Context, customerID string, req CartItemRequest) ([]domain.CartItem, error) {
	if _, err := s.products.Get(ctx, req.ProductID); err != nil {
		return nil, err
	}
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	cart := c.Cart
	updated := false
	for i := range cart {
		if cart[i].ProductID == req.ProductID && cart[i].Size == req.Size {
			cart[i].Quantity = req.Quantity
			updated = true
			break
		}
	}
	if !updated {
		cart = append(cart, domain.CartItem{ProductID: req.ProductID, Size: req.Size, Quantity: req.Quantity})
	}
	if err := s.customers.Update(ctx, customerID, map[string]interface{}{fieldCart: cart}); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) RemoveCartItem(ctx context.Context, customerID, productID, size string) ([]domain.CartItem, error) {
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	next := make([]domain.CartItem, 0, len(c.Cart))
	for _, item := range c.Cart {
		if item.ProductID == productID && item.Size == size {
			continue
		}
		next = append(next, item)
	}
	if len(next) == len(c.Cart) {
		return nil, fmt.Errorf("cart item not found: %w", domain.ErrNotFound)
	}
	if err := s.customers.Update(ctx, customerID, map[string]interface{}{fieldCart: next}); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) Addresses(ctx context.Context, customerID string) ([]domain.Address, error) {
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return c.Addresses, nil
}

// AddAddress appends a new address. The first address is always the default;
// marking a later one default clears the flag on the rest.
func (s *service) AddAddress(ctx context.Context, customerID string, req AddressRequest) ([]domain.Address, error) {
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	addr := addressFromRequest(req)
	addr.AddressID = id.New()
	if len(c.Addresses) == 0 {
		addr.IsDefault = true
	}
	next := c.Addresses
	if addr.IsDefault {
		for i := range next {
			next[i].IsDefault = false
		}
	}
	next = append(next, addr)
	if err := s.customers.Update(ctx, customerID, map[string]interface{}{fieldAddresses: next}); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) EditAddress(ctx context.Context, customerID, addressID string, req AddressRequest) ([]domain.Address, error) {
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range c.Addresses {
		if c.Addresses[i].AddressID == addressID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("address not found: %w", domain.ErrNotFound)
	}
	next := c.Addresses
	addr := addressFromRequest(req)
	addr.AddressID = addressID
	if addr.IsDefault {
		for i := range next {
			next[i].IsDefault = false
		}
	}
	next[idx] = addr
	if err := s.customers.Update(ctx, customerID, map[string]interface{}{fieldAddresses: next}); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *service) DeleteAddress(ctx context.Context, customerID, addressID string) ([]domain.Address, error) {
	c, err := s.customers.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	next := make([]domain.Address, 0, len(c.Addresses))
	removedDefault := false
	for _, a := range c.Addresses {
		if a.AddressID == addressID {
			removedDefault = a.IsDefault
			continue
		}
		next = append(next, a)
	}
	if len(next) == len(c.Addresses) {
		return nil, fmt.Errorf("address not found: %w", domain.ErrNotFound)
	}
	if removedDefault && len(next) > 0 {
		next[0].IsDefault = true
	}
	if err := s.customers.Update(ctx, customerID, map[string]interface{}{fieldAddresses: next}); err != nil {
		return nil, err
	}
	return next, nil
}

func addressFromRequest(req AddressRequest) domain.Address {
	return domain.Address{
		FullName:     req.FullName,
		Phone:        req.Phone,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		Pincode:      req.Pincode,
		Country:      req.Country,
		IsDefault:    req.IsDefault,
	}
}
