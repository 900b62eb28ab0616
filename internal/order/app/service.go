package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/order/domain"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("order not found")
	ErrNotCancelable = errors.New("order cannot be cancelled")
)

var validStatuses = map[string]bool{
	domain.StatusPending:    true,
	domain.StatusProcessing: true,
	domain.StatusShipped:    true,
	domain.StatusDelivered:  true,
	domain.StatusCancelled:  true,
}

var validPaymentStatuses = map[string]bool{
	domain.PaymentPending:  true,
	domain.PaymentPaid:     true,
	domain.PaymentFailed:   true,
	domain.PaymentRefunded: true,
}

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if req.UserID == "" {
		return domain.Order{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}
	if req.DiscountAmount < 0 {
		return domain.Order{}, fmt.Errorf("%w: discount cannot be negative", ErrInvalidInput)
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	var subtotal int64
	for i, it := range req.Items {
		if it.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: quantity must be positive", ErrInvalidInput, i)
		}
		if it.UnitAmount < 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: unit amount cannot be negative", ErrInvalidInput, i)
		}
		line := it.UnitAmount * int64(it.Quantity)
		items = append(items, domain.OrderItem{
			ProductID:       it.ProductID,
			Name:            it.Name,
			Size:            it.Size,
			UnitAmount:      it.UnitAmount,
			Quantity:        it.Quantity,
			LineTotalAmount: line,
		})
		subtotal += line
	}

	if req.SubtotalAmount != 0 && req.SubtotalAmount != subtotal {
		return domain.Order{}, fmt.Errorf("%w: subtotal mismatch: got %d, items sum to %d",
			ErrInvalidInput, req.SubtotalAmount, subtotal)
	}
	total := req.TotalAmount
	if total == 0 {
		total = subtotal - req.DiscountAmount
	}
	if total != subtotal-req.DiscountAmount {
		return domain.Order{}, fmt.Errorf("%w: total mismatch: got %d, want %d",
			ErrInvalidInput, total, subtotal-req.DiscountAmount)
	}

	order := domain.Order{
		UserID:          req.UserID,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentMethod:   req.PaymentMethod,
		PaymentRef:      req.PaymentRef,
		Currency:        req.Currency,
		SubtotalAmount:  subtotal,
		DiscountAmount:  req.DiscountAmount,
		TotalAmount:     total,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	}

	return s.repo.CreateOrderTx(ctx, order)
}

func (s *Service) GetOrder(ctx context.Context, orderID, userID string) (domain.Order, error) {
	if orderID == "" || userID == "" {
		return domain.Order{}, fmt.Errorf("%w: order id and user id are required", ErrInvalidInput)
	}
	return s.repo.Get(ctx, orderID, userID)
}

func (s *Service) History(ctx context.Context, userID string, f domain.HistoryFilter) (domain.HistoryPage, error) {
	if userID == "" {
		return domain.HistoryPage{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Status != "" && !validStatuses[f.Status] {
		return domain.HistoryPage{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, f.Status)
	}

	orders, total, err := s.repo.History(ctx, userID, f)
	if err != nil {
		return domain.HistoryPage{}, err
	}

	totalPages := (total + f.Limit - 1) / f.Limit
	return domain.HistoryPage{
		Orders:     orders,
		Total:      total,
		Page:       f.Page,
		TotalPages: totalPages,
	}, nil
}

// CancelOrder refuses once the order has shipped.
func (s *Service) CancelOrder(ctx context.Context, orderID, userID string) (domain.Order, error) {
	o, err := s.GetOrder(ctx, orderID, userID)
	if err != nil {
		return domain.Order{}, err
	}
	if o.Status == domain.StatusShipped || o.Status == domain.StatusDelivered {
		return domain.Order{}, fmt.Errorf("%w: status is %s", ErrNotCancelable, o.Status)
	}
	return s.repo.SetStatus(ctx, orderID, domain.StatusCancelled)
}

func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (domain.Order, error) {
	if !validStatuses[status] {
		return domain.Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	return s.repo.SetStatus(ctx, orderID, status)
}

func (s *Service) UpdatePaymentStatus(ctx context.Context, orderID, paymentStatus string) (domain.Order, error) {
	if !validPaymentStatuses[paymentStatus] {
		return domain.Order{}, fmt.Errorf("%w: unknown payment status %q", ErrInvalidInput, paymentStatus)
	}
	return s.repo.SetPaymentStatus(ctx, orderID, paymentStatus)
}
