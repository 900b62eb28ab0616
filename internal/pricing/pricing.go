package pricing

import (
	"github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/money"
)

const Currency = "USD"

// Unit prices per bottle size, in whole currency units.
var sizePrices = map[domain.Size]int64{
	domain.Size20ml:  349,
	domain.Size50ml:  599,
	domain.Size100ml: 799,
}

// PriceOf returns the unit price for a size. Sizes outside the table resolve
// through ParseSize first, so unknown labels price as 100ml.
func PriceOf(size domain.Size) money.Money {
	amount, ok := sizePrices[size]
	if !ok {
		amount = sizePrices[domain.DefaultSize]
	}
	return money.New(Currency, amount)
}

// BundleSize is the only size enrolled in the bundle promotion.
const BundleSize = domain.Size100ml

const PromotionLabel = "Buy 2 Get 1 Free on 100ml bottles"

// ComputeTotals derives cart totals from the canonical line item set.
//
// The discount counts eligible units across all lines of the bundle size,
// not per line: two 100ml lines of quantity 1 each combine toward the same
// bundle as one line of quantity 2. Every 2 eligible units make 1 free.
func ComputeTotals(items []domain.LineItem) domain.CartTotals {
	subtotal := money.New(Currency, 0)
	var eligibleUnits int64

	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal)
		if it.Size == BundleSize {
			eligibleUnits += it.Quantity
		}
	}

	freeUnits := eligibleUnits / 2
	discount := PriceOf(BundleSize).MulQty(freeUnits)

	totals := domain.CartTotals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
	if freeUnits > 0 {
		totals.PromotionLabel = PromotionLabel
	}

	return totals
}
