package domain

import "time"

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

type ShippingAddress struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
	Country  string `json:"country"`
	Phone    string `json:"phone,omitempty"`
}

type Order struct {
	ID              string
	UserID          string
	Status          string
	PaymentStatus   string
	PaymentMethod   string
	PaymentRef      string
	Currency        string
	SubtotalAmount  int64
	DiscountAmount  int64
	TotalAmount     int64
	ShippingAddress ShippingAddress
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	Name            string
	Size            string
	UnitAmount      int64
	Quantity        int32
	LineTotalAmount int64
}

type CreateOrderRequest struct {
	UserID          string
	Currency        string
	SubtotalAmount  int64
	DiscountAmount  int64
	TotalAmount     int64
	PaymentMethod   string
	PaymentRef      string
	ShippingAddress ShippingAddress
	Items           []OrderItemRequest
}

type OrderItemRequest struct {
	ProductID  string
	Name       string
	Size       string
	UnitAmount int64
	Quantity   int32
}

// HistoryFilter selects a page of a user's past orders, newest first.
type HistoryFilter struct {
	Status    string
	StartDate time.Time
	EndDate   time.Time
	Page      int
	Limit     int
}

type HistoryPage struct {
	Orders     []Order
	Total      int
	Page       int
	TotalPages int
}
