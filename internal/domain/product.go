package domain

import "time"

type Product struct {
	ProductID   string    `json:"id" dynamodbav:"product_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Description string    `json:"description" dynamodbav:"description"`
	ImageURL    string    `json:"image" dynamodbav:"image_url"`
	Price       float64   `json:"price" dynamodbav:"price"`
	Category    string    `json:"category" dynamodbav:"category"`
	Fabric      string    `json:"fabric" dynamodbav:"fabric"`
	Quantity    int       `json:"quantity" dynamodbav:"quantity"`
	Rating      float64   `json:"rating" dynamodbav:"rating"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category"`
	Fabric      string  `json:"fabric"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	// ImageURL is used as-is when set; ImageBase64 is uploaded to S3 instead.
	ImageURL    string `json:"image"`
	ImageBase64 string `json:"image_base64"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Category    *string  `json:"category"`
	Fabric      *string  `json:"fabric"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"image"`
	ImageBase64 *string  `json:"image_base64"`
}
