package domain

import "github.com/ReactByHarsh/Apex-Perfumes/pkg/money"

// StaleProductName stands in for a product the catalog can no longer
// resolve. The line still counts toward totals at its size-table price.
const StaleProductName = "Product unavailable"

// Normalize converts raw rows from either store into the canonical line item
// list. Rows with non-positive quantity are dropped, sizes default to 100ml,
// and rows sharing a (product, size) identity merge by summing quantities.
// Output order is insertion order of first occurrence.
//
// priceOf resolves the authoritative unit price for a size; the denormalized
// snapshot price on a raw row is never trusted for cart math.
func Normalize(rows []RawItem, priceOf func(Size) money.Money) []LineItem {
	items := make([]LineItem, 0, len(rows))
	index := make(map[ItemKey]int, len(rows))

	for _, row := range rows {
		if row.Quantity <= 0 {
			continue
		}

		size := ParseSize(row.Size)
		key := ItemKey{ProductID: row.ProductID, Size: size}

		if i, ok := index[key]; ok {
			items[i].Quantity += row.Quantity
			if items[i].ProductName == StaleProductName && row.ProductName != "" {
				items[i].ProductName = row.ProductName
			}
			if len(items[i].ProductImages) == 0 {
				items[i].ProductImages = row.ProductImages
			}
			continue
		}

		name := row.ProductName
		if name == "" {
			name = StaleProductName
		}

		index[key] = len(items)
		items = append(items, LineItem{
			ProductID:     row.ProductID,
			Size:          size,
			Quantity:      row.Quantity,
			UnitPrice:     priceOf(size),
			ProductName:   name,
			ProductImages: row.ProductImages,
		})
	}

	for i := range items {
		items[i].LineTotal = items[i].UnitPrice.MulQty(items[i].Quantity)
	}

	return items
}
