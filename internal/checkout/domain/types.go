package domain

import (
	orderdom "github.com/ReactByHarsh/Apex-Perfumes/internal/order/domain"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/money"
)

type QuoteLine struct {
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	Size      string      `json:"size"`
	Quantity  int64       `json:"quantity"`
	UnitPrice money.Money `json:"unit_price"`
	LineTotal money.Money `json:"line_total"`
}

type Quote struct {
	Lines          []QuoteLine `json:"lines"`
	Subtotal       money.Money `json:"subtotal"`
	Discount       money.Money `json:"discount"`
	Total          money.Money `json:"total"`
	PromotionLabel string      `json:"promotion_label,omitempty"`
}

// PaymentOrder is the gateway-side order the client pays against.
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type CheckoutRequest struct {
	ShippingAddress orderdom.ShippingAddress
	PaymentMethod   string
}

type CheckoutResult struct {
	Order   orderdom.Order `json:"order"`
	Payment PaymentOrder   `json:"payment"`
}
