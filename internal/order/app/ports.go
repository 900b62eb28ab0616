package app

import (
	"context"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/order/domain"
)

type OrderRepo interface {
	// CreateOrderTx inserts the order with its items and decrements stock
	// for every item, all in one transaction.
	CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
	Get(ctx context.Context, orderID, userID string) (domain.Order, error)
	History(ctx context.Context, userID string, f domain.HistoryFilter) ([]domain.Order, int, error)
	SetStatus(ctx context.Context, orderID, status string) (domain.Order, error)
	SetPaymentStatus(ctx context.Context, orderID, paymentStatus string) (domain.Order, error)
}
