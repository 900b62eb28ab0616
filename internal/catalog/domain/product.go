package domain

import (
	"time"

	"github.com/ReactByHarsh/Apex-Perfumes/pkg/money"
)

type Product struct {
	ID          string
	Name        string
	Brand       string
	Description string
	// Category is one of "men", "women", "unisex".
	Category string
	Images   []string
	// Price is the 100ml display price; cart math resolves per-size prices
	// from the size table, never from here.
	Price     money.Money
	Stock     int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter narrows a catalog listing. Zero values mean "no constraint".
type ListFilter struct {
	Query    string
	Category string
	Limit    int
	Cursor   string
}
