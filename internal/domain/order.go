package domain

import "time"

// Order statuses. Transitions are admin-driven; "shipped" additionally
// triggers the customer notification.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type OrderItem struct {
	ProductID string  `json:"product_id" dynamodbav:"product_id" validate:"required"`
	Name      string  `json:"name" dynamodbav:"name" validate:"required"`
	ImageURL  string  `json:"image,omitempty" dynamodbav:"image_url"`
	Quantity  int     `json:"quantity" dynamodbav:"quantity" validate:"required,gt=0"`
	Size      string  `json:"size,omitempty" dynamodbav:"size"`
	Color     string  `json:"color,omitempty" dynamodbav:"color"`
	Price     float64 `json:"price" dynamodbav:"price" validate:"required,gt=0"`
}

type Order struct {
	OrderID         string      `json:"id" dynamodbav:"order_id"`
	CustomerID      string      `json:"customer_id" dynamodbav:"customer_id"`
	Items           []OrderItem `json:"items" dynamodbav:"items"`
	ShippingAddress Address     `json:"shipping_address" dynamodbav:"shipping_address"`
	TotalAmount     float64     `json:"total_amount" dynamodbav:"total_amount"`
	Status          string      `json:"status" dynamodbav:"status"`
	Paid            bool        `json:"paid" dynamodbav:"paid"`
	PaidAt          *time.Time  `json:"paid_at,omitempty" dynamodbav:"paid_at"`
	GatewayOrderID  string      `json:"gateway_order_id,omitempty" dynamodbav:"gateway_order_id"`
	PaymentID       string      `json:"payment_id,omitempty" dynamodbav:"payment_id"`
	CreatedAt       time.Time   `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" dynamodbav:"updated_at"`
}

type PlaceOrderRequest struct {
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
	ShippingAddress Address     `json:"shipping_address" validate:"required"`
	TotalAmount     float64     `json:"total_amount" validate:"required,gt=0"`
}
