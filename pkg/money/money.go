package money

import (
	"strconv"
	"strings"
)

// Money is an exact amount in whole currency units. All cart math stays in
// int64; floating point never touches a price.
type Money struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
}

func New(currency string, amount int64) Money {
	return Money{Currency: currency, Amount: amount}
}

func (m Money) Add(o Money) Money {
	return Money{Currency: m.Currency, Amount: m.Amount + o.Amount}
}

func (m Money) Sub(o Money) Money {
	return Money{Currency: m.Currency, Amount: m.Amount - o.Amount}
}

func (m Money) MulQty(qty int64) Money {
	return Money{Currency: m.Currency, Amount: m.Amount * qty}
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Format renders an amount like "$1,299" or "-$50". Comma as thousands
// separator.
func Format(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	if len(s) <= 3 {
		if neg {
			return "-$" + s
		}
		return "$" + s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 2)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	return b.String()
}
