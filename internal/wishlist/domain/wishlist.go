package domain

import (
	"time"

	"github.com/ReactByHarsh/Apex-Perfumes/pkg/money"
)

// Item is a wishlist entry joined with its product snapshot for display.
type Item struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	ProductID    string      `json:"product_id"`
	ProductName  string      `json:"product_name"`
	ProductBrand string      `json:"product_brand,omitempty"`
	Images       []string    `json:"images,omitempty"`
	Price        money.Money `json:"price"`
	Stock        int32       `json:"stock"`
	AddedAt      time.Time   `json:"added_at"`
}
