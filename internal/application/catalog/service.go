package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/panchhi-sarees/storefront-api/internal/domain"
	"github.com/panchhi-sarees/storefront-api/internal/pkg/id"
)

const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldCategory    = "category"
	fieldFabric      = "fabric"
	fieldQuantity    = "quantity"
	fieldImageURL    = "image_url"
)

type Service interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, productID string) error
}

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	Scan(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
}

type imageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo   productStore
	images imageStore
}

func NewService(repo productStore, images imageStore) Service {
	return &service{repo: repo, images: images}
}

func (s *service) List(ctx context.Context, category string) ([]domain.Product, error) {
	if category != "" {
		return s.repo.ListByCategory(ctx, category)
	}
	return s.repo.Scan(ctx)
}

func (s *service) Get(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.Get(ctx, productID)
}

func (s *service) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	productID := id.New()
	imageURL := req.ImageURL
	if req.ImageBase64 != "" {
		url, err := s.images.UploadBase64(ctx, imageKey(productID), req.ImageBase64)
		if err != nil {
			return nil, err
		}
		imageURL = url
	}
	now := time.Now().UTC()
	p := &domain.Product{
		ProductID:   productID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    imageURL,
		Price:       req.Price,
		Category:    req.Category,
		Fabric:      req.Fabric,
		Quantity:    req.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.Price != nil {
		updates[fieldPrice] = *req.Price
	}
	if req.Category != nil {
		updates[fieldCategory] = *req.Category
	}
	if req.Fabric != nil {
		updates[fieldFabric] = *req.Fabric
	}
	if req.Quantity != nil {
		updates[fieldQuantity] = *req.Quantity
	}
	if req.ImageBase64 != nil && *req.ImageBase64 != "" {
		url, err := s.images.UploadBase64(ctx, imageKey(productID), *req.ImageBase64)
		if err != nil {
			return nil, err
		}
		updates[fieldImageURL] = url
	} else if req.ImageURL != nil {
		updates[fieldImageURL] = *req.ImageURL
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, productID)
	}
	if err := s.repo.Update(ctx, productID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, productID)
}

func (s *service) Delete(ctx context.Context, productID string) error {
	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}
	// Only images we host get cleaned up; external URLs are left alone.
	if strings.Contains(p.ImageURL, ".amazonaws.com/") {
		if err := s.images.Delete(ctx, imageKey(productID)); err != nil {
			slog.Warn("failed to delete product image", "product_id", productID, "err", err)
		}
	}
	return nil
}

func imageKey(productID string) string {
	return fmt.Sprintf("products/%s.jpg", productID)
}
