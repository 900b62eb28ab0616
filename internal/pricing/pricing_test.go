package pricing

import (
	"testing"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/money"
	"github.com/google/go-cmp/cmp"
)

func usd(amount int64) money.Money {
	return money.New(Currency, amount)
}

func line(productID string, size domain.Size, qty int64) domain.LineItem {
	unit := PriceOf(size)
	return domain.LineItem{
		ProductID: productID,
		Size:      size,
		Quantity:  qty,
		UnitPrice: unit,
		LineTotal: unit.MulQty(qty),
	}
}

func TestPriceOf(t *testing.T) {
	cases := []struct {
		size domain.Size
		want int64
	}{
		{domain.Size20ml, 349},
		{domain.Size50ml, 599},
		{domain.Size100ml, 799},
		{domain.Size("250ml"), 799}, // outside the table -> 100ml price
	}
	for _, c := range cases {
		if got := PriceOf(c.size).Amount; got != c.want {
			t.Errorf("PriceOf(%s) = %d, want %d", c.size, got, c.want)
		}
	}
}

func TestBundleCountsUnitsAcrossLines(t *testing.T) {
	t.Run("one line qty 3", func(t *testing.T) {
		got := ComputeTotals([]domain.LineItem{line("p1", domain.Size100ml, 3)})
		if got.Discount.Amount != 799 {
			t.Fatalf("discount = %d, want 799", got.Discount.Amount)
		}
	})

	t.Run("1+2 split across two lines", func(t *testing.T) {
		got := ComputeTotals([]domain.LineItem{
			line("p1", domain.Size100ml, 1),
			line("p2", domain.Size100ml, 2),
		})
		if got.Discount.Amount != 799 {
			t.Fatalf("discount = %d, want 799", got.Discount.Amount)
		}
	})

	t.Run("free units are floor of half", func(t *testing.T) {
		for _, c := range []struct {
			units    int64
			discount int64
		}{
			{0, 0}, {1, 0}, {2, 799}, {3, 799}, {4, 1598}, {5, 1598}, {7, 2397},
		} {
			got := ComputeTotals([]domain.LineItem{line("p", domain.Size100ml, c.units)})
			if got.Discount.Amount != c.discount {
				t.Errorf("units=%d: discount = %d, want %d", c.units, got.Discount.Amount, c.discount)
			}
		}
	})
}

func TestSmallerSizesNeverCombineForBundle(t *testing.T) {
	got := ComputeTotals([]domain.LineItem{
		line("p1", domain.Size100ml, 1),
		line("p2", domain.Size50ml, 1),
	})
	if got.Discount.Amount != 0 {
		t.Fatalf("discount = %d, want 0", got.Discount.Amount)
	}
	if got.PromotionLabel != "" {
		t.Fatalf("promotion label = %q, want empty", got.PromotionLabel)
	}

	got = ComputeTotals([]domain.LineItem{
		line("p1", domain.Size50ml, 4),
		line("p2", domain.Size20ml, 4),
	})
	if got.Discount.Amount != 0 {
		t.Fatalf("smaller sizes alone: discount = %d, want 0", got.Discount.Amount)
	}
}

func TestEndToEndScenario(t *testing.T) {
	// 2x100ml + 1x100ml + 3x20ml: subtotal 3444, one free bottle, total 2645.
	items := []domain.LineItem{
		line("p1", domain.Size100ml, 2),
		line("p2", domain.Size100ml, 1),
		line("p3", domain.Size20ml, 3),
	}

	got := ComputeTotals(items)
	want := domain.CartTotals{
		Subtotal:       usd(3444),
		Discount:       usd(799),
		Total:          usd(2645),
		PromotionLabel: PromotionLabel,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("totals mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyCart(t *testing.T) {
	got := ComputeTotals(nil)
	if got.Subtotal.Amount != 0 || got.Discount.Amount != 0 || got.Total.Amount != 0 {
		t.Fatalf("empty cart totals not zero: %+v", got)
	}
	if got.PromotionLabel != "" {
		t.Fatalf("empty cart has promotion label %q", got.PromotionLabel)
	}
}
