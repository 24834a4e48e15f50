package session

import (
	"context"
	"fmt"

	"github.com/panchhi-sarees/storefront-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type CustomerLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CustomerLoginResult struct {
	Bearer   string
	Customer *domain.Customer
}

type AdminLoginResult struct {
	Bearer string
	Admin  *domain.Admin
}

// Service authenticates existing credentials and issues bearer tokens.
// Tokens are stateless: nothing is stored server-side at login.
type Service interface {
	CustomerLogin(ctx context.Context, req CustomerLoginRequest) (*CustomerLoginResult, error)
	AdminLogin(ctx context.Context, req AdminLoginRequest) (*AdminLoginResult, error)
}

type customerStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

type adminStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

type jwtSigner interface {
	Sign(userID, role string) (string, error)
}

type service struct {
	customers customerStore
	admins    adminStore
	jwt       jwtSigner
}

func NewService(customers customerStore, admins adminStore, jwt jwtSigner) Service {
	return &service{customers: customers, admins: admins, jwt: jwt}
}

func (s *service) CustomerLogin(ctx context.Context, req CustomerLoginRequest) (*CustomerLoginResult, error) {
	c, err := s.customers.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !c.Verified {
		return nil, fmt.Errorf("account not verified, complete OTP verification: %w", domain.ErrForbidden)
	}
	bearer, err := s.jwt.Sign(c.CustomerID, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return &CustomerLoginResult{Bearer: bearer, Customer: c}, nil
}

func (s *service) AdminLogin(ctx context.Context, req AdminLoginRequest) (*AdminLoginResult, error) {
	a, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !a.Verified {
		return nil, fmt.Errorf("admin not verified: %w", domain.ErrForbidden)
	}
	bearer, err := s.jwt.Sign(a.AdminID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &AdminLoginResult{Bearer: bearer, Admin: a}, nil
}
