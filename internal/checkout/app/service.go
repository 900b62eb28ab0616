package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cartdom "github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/checkout/domain"
	orderdom "github.com/ReactByHarsh/Apex-Perfumes/internal/order/domain"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrPaymentFailed = errors.New("payment order creation failed")
)

// CartGateway reads and clears the account cart.
type CartGateway interface {
	Cart(ctx context.Context, accountID string) (cartdom.Cart, error)
	Clear(ctx context.Context, accountID string) error
}

// PaymentGateway creates a gateway-side order the client pays against.
// Amount is in the currency's minor unit.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (domain.PaymentOrder, error)
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, req orderdom.CreateOrderRequest) (orderdom.Order, error)
	UpdatePaymentStatus(ctx context.Context, orderID, paymentStatus string) (orderdom.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) (orderdom.Order, error)
}

type ConfirmationMailer interface {
	OrderConfirmation(ctx context.Context, to string, o orderdom.Order) error
}

type Service struct {
	cart    CartGateway
	payment PaymentGateway
	orders  OrderWriter
	mailer  ConfirmationMailer
	log     *slog.Logger
}

// NewService wires checkout. mailer may be nil (no confirmation emails).
func NewService(cart CartGateway, payment PaymentGateway, orders OrderWriter, mailer ConfirmationMailer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{cart: cart, payment: payment, orders: orders, mailer: mailer, log: log}
}

// Quote prices the current cart without side effects.
func (s *Service) Quote(ctx context.Context, accountID string) (domain.Quote, error) {
	cart, err := s.cart.Cart(ctx, accountID)
	if err != nil {
		return domain.Quote{}, err
	}
	if len(cart.Items) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}
	return quoteFromCart(cart), nil
}

// Checkout places an order from the account cart: price it, open a payment
// order at the gateway, persist the order, then clear the cart and send the
// confirmation. The last two are best effort; the order stands once written.
func (s *Service) Checkout(ctx context.Context, accountID, email string, req domain.CheckoutRequest) (domain.CheckoutResult, error) {
	cart, err := s.cart.Cart(ctx, accountID)
	if err != nil {
		return domain.CheckoutResult{}, err
	}
	if len(cart.Items) == 0 {
		return domain.CheckoutResult{}, ErrEmptyCart
	}
	quote := quoteFromCart(cart)

	receipt := fmt.Sprintf("cart-%s", accountID)
	payment, err := s.payment.CreateOrder(ctx, quote.Total.Amount*100, quote.Total.Currency, receipt)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	items := make([]orderdom.OrderItemRequest, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, orderdom.OrderItemRequest{
			ProductID:  it.ProductID,
			Name:       it.ProductName,
			Size:       string(it.Size),
			UnitAmount: it.UnitPrice.Amount,
			Quantity:   int32(it.Quantity),
		})
	}

	order, err := s.orders.CreateOrder(ctx, orderdom.CreateOrderRequest{
		UserID:          accountID,
		Currency:        quote.Total.Currency,
		SubtotalAmount:  quote.Subtotal.Amount,
		DiscountAmount:  quote.Discount.Amount,
		TotalAmount:     quote.Total.Amount,
		PaymentMethod:   req.PaymentMethod,
		PaymentRef:      payment.ID,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	})
	if err != nil {
		return domain.CheckoutResult{}, err
	}

	if err := s.cart.Clear(ctx, accountID); err != nil {
		s.log.Warn("cart clear after checkout failed", "account_id", accountID, "order_id", order.ID, "err", err)
	}
	if s.mailer != nil && email != "" {
		if err := s.mailer.OrderConfirmation(ctx, email, order); err != nil {
			s.log.Warn("confirmation email failed", "order_id", order.ID, "err", err)
		}
	}

	return domain.CheckoutResult{Order: order, Payment: payment}, nil
}

// ConfirmPayment marks the order paid once the gateway reports capture.
func (s *Service) ConfirmPayment(ctx context.Context, orderID string) (orderdom.Order, error) {
	o, err := s.orders.UpdatePaymentStatus(ctx, orderID, orderdom.PaymentPaid)
	if err != nil {
		return orderdom.Order{}, err
	}
	return s.orders.UpdateStatus(ctx, o.ID, orderdom.StatusProcessing)
}

func quoteFromCart(cart cartdom.Cart) domain.Quote {
	lines := make([]domain.QuoteLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, domain.QuoteLine{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Size:      string(it.Size),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	return domain.Quote{
		Lines:          lines,
		Subtotal:       cart.Totals.Subtotal,
		Discount:       cart.Totals.Discount,
		Total:          cart.Totals.Total,
		PromotionLabel: cart.Totals.PromotionLabel,
	}
}
