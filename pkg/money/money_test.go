package money

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "$0"},
		{349, "$349"},
		{799, "$799"},
		{3444, "$3,444"},
		{1234567, "$1,234,567"},
		{-50, "-$50"},
		{-2645, "-$2,645"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := New("USD", 799)
	b := New("USD", 349)

	if got := a.Add(b).Amount; got != 1148 {
		t.Fatalf("Add: got %d", got)
	}
	if got := a.Sub(b).Amount; got != 450 {
		t.Fatalf("Sub: got %d", got)
	}
	if got := a.MulQty(3).Amount; got != 2397 {
		t.Fatalf("MulQty: got %d", got)
	}
	if !New("USD", 0).IsZero() {
		t.Fatal("IsZero: expected true for zero amount")
	}
}
