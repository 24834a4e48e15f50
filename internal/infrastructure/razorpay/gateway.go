package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/panchhi-sarees/storefront-api/internal/config"
)

// GatewayOrder is the subset of the Razorpay order the storefront needs.
type GatewayOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
}

// Gateway creates payment-gateway orders.
type Gateway interface {
	CreateOrder(amountPaise int64, currency, receipt string) (*GatewayOrder, error)
}

type gateway struct {
	client *razorpay.Client
}

func NewGateway(cfg *config.Config) Gateway {
	return &gateway{client: razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpaySecret)}
}

func (g *gateway) CreateOrder(amountPaise int64, currency, receipt string) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: missing id in response")
	}
	out := &GatewayOrder{OrderID: id, Amount: amountPaise, Currency: currency}
	if c, ok := body["currency"].(string); ok {
		out.Currency = c
	}
	return out, nil
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256(order_id + "|" + payment_id, secret) compared in constant time.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
