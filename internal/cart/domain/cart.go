package domain

import (
	"strings"
	"time"

	"github.com/ReactByHarsh/Apex-Perfumes/pkg/money"
)

// Size is the packaging variant of a bottle. Unrecognized inputs resolve to
// Size100ml; several call sites historically omitted the size entirely.
type Size string

const (
	Size20ml  Size = "20ml"
	Size50ml  Size = "50ml"
	Size100ml Size = "100ml"

	DefaultSize = Size100ml
)

func ParseSize(s string) Size {
	switch Size(strings.ToLower(strings.TrimSpace(s))) {
	case Size20ml:
		return Size20ml
	case Size50ml:
		return Size50ml
	case Size100ml:
		return Size100ml
	default:
		return DefaultSize
	}
}

// ItemKey is a line item's identity: the same product in two sizes is two
// distinct lines.
type ItemKey struct {
	ProductID string
	Size      Size
}

// RawItem is a cart row as it arrives from either store, before
// normalization. The product snapshot fields are denormalized and may be
// stale or absent; they are display fallbacks only and never feed cart math.
type RawItem struct {
	ProductID     string
	Size          string
	Quantity      int64
	ProductName   string
	ProductImages []string
	ProductPrice  int64
	AddedAt       time.Time
}

// LineItem is a canonical cart line. UnitPrice and LineTotal are derived at
// read time and never persisted.
type LineItem struct {
	ProductID     string
	Size          Size
	Quantity      int64
	UnitPrice     money.Money
	LineTotal     money.Money
	ProductName   string
	ProductImages []string
}

func (li LineItem) Key() ItemKey {
	return ItemKey{ProductID: li.ProductID, Size: li.Size}
}

// CartTotals is a pure function of the current line item set, recomputed on
// every read. PromotionLabel is empty unless Discount > 0.
type CartTotals struct {
	Subtotal       money.Money
	Discount       money.Money
	Total          money.Money
	PromotionLabel string
}

type Cart struct {
	Items  []LineItem
	Totals CartTotals
}

func (c Cart) ItemCount() int64 {
	var n int64
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
