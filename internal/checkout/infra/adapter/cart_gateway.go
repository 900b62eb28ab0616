package adapter

import (
	"context"

	cartapp "github.com/ReactByHarsh/Apex-Perfumes/internal/cart/app"
	cartdom "github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
)

// CartGateway exposes the account cart to checkout.
type CartGateway struct {
	cart *cartapp.Service
}

func NewCartGateway(cart *cartapp.Service) *CartGateway {
	return &CartGateway{cart: cart}
}

func (g *CartGateway) Cart(ctx context.Context, accountID string) (cartdom.Cart, error) {
	return g.cart.GetCart(ctx, cartapp.Account(accountID))
}

func (g *CartGateway) Clear(ctx context.Context, accountID string) error {
	_, err := g.cart.ClearCart(ctx, cartapp.Account(accountID))
	return err
}
