package notify

import (
	"context"
	"fmt"
	"strings"

	orderdom "github.com/ReactByHarsh/Apex-Perfumes/internal/order/domain"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/money"
)

// EmailClient sends a single message. Implemented by the SendGrid adapter.
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// Mailer composes storefront notifications on top of an EmailClient.
type Mailer struct {
	client    EmailClient
	from      string
	storeName string
}

func NewMailer(client EmailClient, from, storeName string) *Mailer {
	return &Mailer{client: client, from: from, storeName: storeName}
}

// OrderConfirmation sends the post-checkout receipt. Failures are the
// caller's to log; the order itself is already placed.
func (m *Mailer) OrderConfirmation(ctx context.Context, to string, o orderdom.Order) error {
	if to == "" {
		return fmt.Errorf("order confirmation: recipient is empty")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order at %s.\n\n", m.storeName)
	fmt.Fprintf(&b, "Order %s\n\n", o.ID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %d x %s (%s)  %s\n", it.Quantity, it.Name, it.Size, money.Format(it.LineTotalAmount))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\n", money.Format(o.SubtotalAmount))
	if o.DiscountAmount > 0 {
		fmt.Fprintf(&b, "Discount: -%s\n", money.Format(o.DiscountAmount))
	}
	fmt.Fprintf(&b, "Total: %s\n", money.Format(o.TotalAmount))
	if o.ShippingAddress.FullName != "" {
		fmt.Fprintf(&b, "\nShipping to:\n%s\n%s\n%s, %s %s\n%s\n",
			o.ShippingAddress.FullName, o.ShippingAddress.Address,
			o.ShippingAddress.City, o.ShippingAddress.State, o.ShippingAddress.ZipCode,
			o.ShippingAddress.Country)
	}

	subject := fmt.Sprintf("%s order confirmation", m.storeName)
	return m.client.Send(ctx, m.from, to, subject, b.String())
}
