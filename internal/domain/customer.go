package domain

import "time"

// Roles carried in the JWT role claim.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Customer is the durable identity record. It is only ever created through
// the OTP signup flow, so Verified is true from the moment it exists.
// Cart, wishlist and addresses are embedded in the item, mirroring the
// single-document layout the storefront always had.
type Customer struct {
	CustomerID   string     `json:"id" dynamodbav:"customer_id"`
	Name         string     `json:"name" dynamodbav:"name"`
	Email        string     `json:"email" dynamodbav:"email"`
	Phone        string     `json:"phone" dynamodbav:"phone"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	Verified     bool       `json:"verified" dynamodbav:"verified"`
	Wishlist     []string   `json:"wishlist" dynamodbav:"wishlist"`
	Cart         []CartItem `json:"cart" dynamodbav:"cart"`
	Addresses    []Address  `json:"addresses" dynamodbav:"addresses"`
	CreatedAt    time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}

// CartItem is one line of the embedded cart. A line is identified by
// (product, size): the same saree in two sizes is two lines.
type CartItem struct {
	ProductID string `json:"product_id" dynamodbav:"product_id"`
	Quantity  int    `json:"quantity" dynamodbav:"quantity"`
	Size      string `json:"size" dynamodbav:"size"`
}

// Address is one embedded shipping address. At most one address per
// customer has IsDefault set.
type Address struct {
	AddressID    string `json:"id" dynamodbav:"address_id"`
	FullName     string `json:"full_name" dynamodbav:"full_name"`
	Phone        string `json:"phone" dynamodbav:"phone"`
	AddressLine1 string `json:"address_line1" dynamodbav:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty" dynamodbav:"address_line2"`
	City         string `json:"city" dynamodbav:"city"`
	State        string `json:"state" dynamodbav:"state"`
	Pincode      string `json:"pincode" dynamodbav:"pincode"`
	Country      string `json:"country" dynamodbav:"country"`
	IsDefault    bool   `json:"is_default" dynamodbav:"is_default"`
}
