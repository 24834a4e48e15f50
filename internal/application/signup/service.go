package signup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/panchhi-sarees/storefront-api/internal/domain"
	"github.com/panchhi-sarees/storefront-api/internal/pkg/id"
	"github.com/panchhi-sarees/storefront-api/internal/pkg/otp"
	"golang.org/x/crypto/bcrypt"
)

type BeginCustomerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10,max=15"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type BeginAdminRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"otp" validate:"required,len=6"`
}

type CustomerResult struct {
	Bearer   string
	Customer *domain.Customer
}

type AdminResult struct {
	Bearer string
	Admin  *domain.Admin
}

// Service drives the OTP-gated signup flow for both credential kinds.
// A credential record is never created except through Verify, so the
// verified flag is true on every record the flow produces.
type Service interface {
	BeginCustomer(ctx context.Context, req BeginCustomerRequest) error
	VerifyCustomer(ctx context.Context, req VerifyRequest) (*CustomerResult, error)
	BeginAdmin(ctx context.Context, req BeginAdminRequest) error
	VerifyAdmin(ctx context.Context, req VerifyRequest) (*AdminResult, error)
}

type customerStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	Put(ctx context.Context, c *domain.Customer) error
}

type adminStore interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Put(ctx context.Context, a *domain.Admin) error
}

type signupStore interface {
	Put(ctx context.Context, p *domain.PendingSignup) error
	Get(ctx context.Context, email, kind string) (*domain.PendingSignup, error)
	Delete(ctx context.Context, email, kind string) error
}

type mailSender interface {
	SendEmail(to, subject, textBody, htmlBody string) error
}

type jwtSigner interface {
	Sign(userID, role string) (string, error)
}

// sendLimiter caps code requests per contact. A nil limiter allows everything.
type sendLimiter interface {
	Allow(ctx context.Context, contact string) bool
}

type idGen func() string

type service struct {
	customers customerStore
	admins    adminStore
	signups   signupStore
	mailer    mailSender
	jwt       jwtSigner
	limiter   sendLimiter
	newID     idGen
	now       func() time.Time
}

type ServiceDeps struct {
	CustomerRepo customerStore
	AdminRepo    adminStore
	SignupRepo   signupStore
	Mailer       mailSender
	JWTProvider  jwtSigner
	SendLimiter  sendLimiter
	NewID        idGen
	Now          func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		customers: deps.CustomerRepo,
		admins:    deps.AdminRepo,
		signups:   deps.SignupRepo,
		mailer:    deps.Mailer,
		jwt:       deps.JWTProvider,
		limiter:   deps.SendLimiter,
		newID:     deps.NewID,
		now:       deps.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = id.New
	}
	return s
}

func (s *service) BeginCustomer(ctx context.Context, req BeginCustomerRequest) error {
	if s.limiter != nil && !s.limiter.Allow(ctx, req.Email) {
		return fmt.Errorf("too many codes requested for this email: %w", domain.ErrTooManyRequests)
	}

	if _, err := s.customers.GetByEmail(ctx, req.Email); err == nil {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, err := s.customers.GetByPhone(ctx, req.Phone); err == nil {
		return fmt.Errorf("phone already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	code, err := otp.NewCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	// Overwrites any earlier pending signup for this email: only the most
	// recently issued code is ever accepted.
	p := &domain.PendingSignup{
		Email:        req.Email,
		Kind:         domain.SignupKindCustomer,
		Code:         code,
		ExpiresAt:    s.now().Add(otp.CodeLifetime).Unix(),
		Name:         req.Name,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	}
	if err := s.signups.Put(ctx, p); err != nil {
		return err
	}

	if err := s.sendCode(req.Email, code); err != nil {
		// The staged record stays; a retry regenerates the code.
		slog.Error("failed to send signup code", "email", req.Email, "err", err)
		return fmt.Errorf("could not send verification email: %w", domain.ErrDeliveryFailed)
	}
	return nil
}

func (s *service) VerifyCustomer(ctx context.Context, req VerifyRequest) (*CustomerResult, error) {
	p, err := s.checkPending(ctx, req, domain.SignupKindCustomer)
	if err != nil {
		return nil, err
	}

	// DynamoDB cannot enforce uniqueness on the email GSI, so re-check just
	// before the write. Two racing verifications can still slip through; the
	// window is the accepted risk documented in the design notes.
	if _, err := s.customers.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	c := &domain.Customer{
		CustomerID:   s.newID(),
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		PasswordHash: p.PasswordHash,
		Verified:     true,
		Wishlist:     []string{},
		Cart:         []domain.CartItem{},
		Addresses:    []domain.Address{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.customers.Put(ctx, c); err != nil {
		return nil, err
	}
	if err := s.signups.Delete(ctx, req.Email, domain.SignupKindCustomer); err != nil {
		slog.Warn("failed to delete pending signup", "email", req.Email, "err", err)
	}

	bearer, err := s.jwt.Sign(c.CustomerID, domain.RoleCustomer)
	if err != nil {
		return nil, err
	}
	return &CustomerResult{Bearer: bearer, Customer: c}, nil
}

func (s *service) BeginAdmin(ctx context.Context, req BeginAdminRequest) error {
	if s.limiter != nil && !s.limiter.Allow(ctx, req.Email) {
		return fmt.Errorf("too many codes requested for this email: %w", domain.ErrTooManyRequests)
	}

	if _, err := s.admins.GetByUsername(ctx, req.Username); err == nil {
		return fmt.Errorf("username already taken: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if _, err := s.admins.GetByEmail(ctx, req.Email); err == nil {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	code, err := otp.NewCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p := &domain.PendingSignup{
		Email:        req.Email,
		Kind:         domain.SignupKindAdmin,
		Code:         code,
		ExpiresAt:    s.now().Add(otp.CodeLifetime).Unix(),
		Username:     req.Username,
		PasswordHash: string(hash),
	}
	if err := s.signups.Put(ctx, p); err != nil {
		return err
	}

	if err := s.sendCode(req.Email, code); err != nil {
		slog.Error("failed to send signup code", "email", req.Email, "err", err)
		return fmt.Errorf("could not send verification email: %w", domain.ErrDeliveryFailed)
	}
	return nil
}

func (s *service) VerifyAdmin(ctx context.Context, req VerifyRequest) (*AdminResult, error) {
	p, err := s.checkPending(ctx, req, domain.SignupKindAdmin)
	if err != nil {
		return nil, err
	}

	if _, err := s.admins.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	a := &domain.Admin{
		AdminID:      s.newID(),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.admins.Put(ctx, a); err != nil {
		return nil, err
	}
	if err := s.signups.Delete(ctx, req.Email, domain.SignupKindAdmin); err != nil {
		slog.Warn("failed to delete pending signup", "email", req.Email, "err", err)
	}

	bearer, err := s.jwt.Sign(a.AdminID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &AdminResult{Bearer: bearer, Admin: a}, nil
}

// checkPending runs the verification checks in their fixed order:
// record missing, then code mismatch, then expiry. A failed attempt leaves
// the staged record untouched, so retries are possible until it expires.
func (s *service) checkPending(ctx context.Context, req VerifyRequest, kind string) (*domain.PendingSignup, error) {
	p, err := s.signups.Get(ctx, req.Email, kind)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no pending signup for this email: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	if p.Code != req.Code {
		return nil, fmt.Errorf("incorrect verification code: %w", domain.ErrUnauthorized)
	}
	if s.now().Unix() > p.ExpiresAt {
		return nil, fmt.Errorf("verification code expired, request a new one: %w", domain.ErrUnauthorized)
	}
	return p, nil
}

func (s *service) sendCode(email, code string) error {
	text := fmt.Sprintf("Hi,\n\nYour OTP is: %s\n\nIt is valid for 10 minutes.\n\nRegards,\nPanchhi Sarees", code)
	html := fmt.Sprintf("<p>Hi,</p><p>Your OTP is: <strong>%s</strong></p><p>It is valid for 10 minutes.</p><p>Regards,<br/>Panchhi Sarees</p>", code)
	return s.mailer.SendEmail(email, "OTP Verification for Account Signup", text, html)
}
