package order

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/panchhi-sarees/storefront-api/internal/domain"
	rzp "github.com/panchhi-sarees/storefront-api/internal/infrastructure/razorpay"
	"github.com/panchhi-sarees/storefront-api/internal/pkg/id"
)

const fieldStatus = "status"

type CreateGatewayOrderRequest struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"` // rupees
	Currency string  `json:"currency"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string                   `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string                   `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string                   `json:"razorpay_signature" validate:"required"`
	Order             domain.PlaceOrderRequest `json:"order" validate:"required"`
}

// StatusResult reports an admin status change and whether the customer
// notification went out (the update itself never rolls back on a
// notification failure).
type StatusResult struct {
	Order     *domain.Order `json:"order"`
	EmailSent bool          `json:"email_sent"`
}

type Service interface {
	Place(ctx context.Context, customerID string, req domain.PlaceOrderRequest) (*domain.Order, error)
	CreateGatewayOrder(ctx context.Context, req CreateGatewayOrderRequest) (*rzp.GatewayOrder, error)
	VerifyPaymentAndPlace(ctx context.Context, customerID string, req VerifyPaymentRequest) (*domain.Order, error)
	ListMine(ctx context.Context, customerID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (*StatusResult, error)
}

type orderStore interface {
	Put(ctx context.Context, o *domain.Order) error
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	Scan(ctx context.Context) ([]domain.Order, error)
	Update(ctx context.Context, orderID string, updates map[string]interface{}) error
}

type customerStore interface {
	Get(ctx context.Context, customerID string) (*domain.Customer, error)
}

type mailSender interface {
	SendEmail(to, subject, textBody, htmlBody string) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type service struct {
	orders        orderStore
	customers     customerStore
	gateway       rzp.Gateway
	gatewaySecret string
	mailer        mailSender
	sms           smsSender // nil when SNS is not configured
	now           func() time.Time
}

type ServiceDeps struct {
	OrderRepo     orderStore
	CustomerRepo  customerStore
	Gateway       rzp.Gateway
	GatewaySecret string
	Mailer        mailSender
	SMSSender     smsSender
	Now           func() time.Time
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		orders:        deps.OrderRepo,
		customers:     deps.CustomerRepo,
		gateway:       deps.Gateway,
		gatewaySecret: deps.GatewaySecret,
		mailer:        deps.Mailer,
		sms:           deps.SMSSender,
		now:           deps.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Place records a cash-on-delivery order.
func (s *service) Place(ctx context.Context, customerID string, req domain.PlaceOrderRequest) (*domain.Order, error) {
	now := s.now().UTC()
	o := &domain.Order{
		OrderID:         id.New(),
		CustomerID:      customerID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     req.TotalAmount,
		Status:          domain.OrderPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orders.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// CreateGatewayOrder opens a Razorpay order for the checkout amount.
// Razorpay wants the amount in paise.
func (s *service) CreateGatewayOrder(ctx context.Context, req CreateGatewayOrderRequest) (*rzp.GatewayOrder, error) {
	currency := req.Currency
	if currency == "" {
		currency = "INR"
	}
	receipt := fmt.Sprintf("receipt_%d", s.now().UnixMilli())
	return s.gateway.CreateOrder(int64(req.Amount*100), currency, receipt)
}

// VerifyPaymentAndPlace validates the checkout callback signature and, on
// success, records the paid order. A bad signature is rejected outright;
// nothing is persisted for it.
func (s *service) VerifyPaymentAndPlace(ctx context.Context, customerID string, req VerifyPaymentRequest) (*domain.Order, error) {
	if !rzp.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature, s.gatewaySecret) {
		return nil, fmt.Errorf("invalid payment signature: %w", domain.ErrUnauthorized)
	}
	now := s.now().UTC()
	o := &domain.Order{
		OrderID:         id.New(),
		CustomerID:      customerID,
		Items:           req.Order.Items,
		ShippingAddress: req.Order.ShippingAddress,
		TotalAmount:     req.Order.TotalAmount,
		Status:          domain.OrderPending,
		Paid:            true,
		PaidAt:          &now,
		GatewayOrderID:  req.RazorpayOrderID,
		PaymentID:       req.RazorpayPaymentID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orders.Put(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListMine(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

func (s *service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.Scan(ctx)
}

// UpdateStatus moves an order to the given status. A transition to shipped
// notifies the customer by email (and SMS when a sender is configured);
// notification failures are reported, not rolled back.
func (s *service) UpdateStatus(ctx context.Context, orderID, status string) (*StatusResult, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, fmt.Errorf("invalid order status %q: %w", status, domain.ErrBadRequest)
	}
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, orderID, map[string]interface{}{fieldStatus: status}); err != nil {
		return nil, err
	}
	o.Status = status

	result := &StatusResult{Order: o}
	if status != domain.OrderShipped {
		return result, nil
	}

	c, err := s.customers.Get(ctx, o.CustomerID)
	if err != nil {
		slog.Warn("shipped notification skipped, customer lookup failed", "order_id", orderID, "err", err)
		return result, nil
	}
	text, html := shippedEmail(c.Name, o)
	subject := fmt.Sprintf("Order Shipped - #%s | Panchhi Sarees", shortID(o.OrderID))
	if err := s.mailer.SendEmail(c.Email, subject, text, html); err != nil {
		slog.Warn("failed to send shipped email", "order_id", orderID, "err", err)
	} else {
		result.EmailSent = true
	}
	if s.sms != nil && o.ShippingAddress.Phone != "" {
		msg := fmt.Sprintf("Panchhi Sarees: your order #%s has been shipped and should arrive within 3-7 business days.", shortID(o.OrderID))
		if err := s.sms.SendSMS(ctx, o.ShippingAddress.Phone, msg); err != nil {
			slog.Warn("failed to send shipped SMS", "order_id", orderID, "err", err)
		}
	}
	return result, nil
}

// shortID mirrors the order reference shown to customers: the last 8
// characters of the order id.
func shortID(orderID string) string {
	if len(orderID) <= 8 {
		return orderID
	}
	return orderID[len(orderID)-8:]
}

func shippedEmail(name string, o *domain.Order) (text, html string) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hi %s,\n\nYour order #%s has been shipped and is on its way to you.\n\n", name, shortID(o.OrderID))
	for _, item := range o.Items {
		fmt.Fprintf(&sb, "- %s x%d (₹%.2f)\n", item.Name, item.Quantity, item.Price)
	}
	fmt.Fprintf(&sb, "\nTotal: ₹%.2f\n\nIt should arrive within 3-7 business days.\n\nThank you for choosing Panchhi Sarees!", o.TotalAmount)
	text = sb.String()

	var hb strings.Builder
	fmt.Fprintf(&hb, "<h2>Your Order Has Been Shipped!</h2><p>Hi %s,</p><p>Your order <strong>#%s</strong> has been shipped and is on its way to you.</p><table><thead><tr><th>Product</th><th>Qty</th><th>Price</th></tr></thead><tbody>", name, shortID(o.OrderID))
	for _, item := range o.Items {
		fmt.Fprintf(&hb, "<tr><td>%s</td><td>%d</td><td>₹%.2f</td></tr>", item.Name, item.Quantity, item.Price)
	}
	fmt.Fprintf(&hb, "</tbody></table><p><strong>Total: ₹%.2f</strong></p>", o.TotalAmount)
	a := o.ShippingAddress
	fmt.Fprintf(&hb, "<p>%s<br/>%s", a.FullName, a.AddressLine1)
	if a.AddressLine2 != "" {
		fmt.Fprintf(&hb, "<br/>%s", a.AddressLine2)
	}
	fmt.Fprintf(&hb, "<br/>%s, %s - %s<br/>%s</p>", a.City, a.State, a.Pincode, a.Country)
	hb.WriteString("<p>It should arrive within 3-7 business days.</p><p>Thank you for choosing Panchhi Sarees!</p>")
	html = hb.String()
	return text, html
}
