package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"
)

type fakeRemote struct {
	mu    sync.Mutex
	carts map[string][]domain.RawItem

	failUpsert      error
	failUpsertCount int // upserts left to fail while failUpsert is set; -1 = all
	skipFailures    int // let this many upserts succeed before failing
	failRead        error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{carts: map[string][]domain.RawItem{}, failUpsertCount: -1}
}

func (f *fakeRemote) Read(ctx context.Context, accountID string) ([]domain.RawItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead != nil {
		return nil, f.failRead
	}
	rows := make([]domain.RawItem, len(f.carts[accountID]))
	copy(rows, f.carts[accountID])
	return rows, nil
}

func (f *fakeRemote) Upsert(ctx context.Context, accountID, productID string, size domain.Size, qty int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpsert != nil && f.failUpsertCount != 0 {
		if f.skipFailures > 0 {
			f.skipFailures--
		} else {
			if f.failUpsertCount > 0 {
				f.failUpsertCount--
			}
			return f.failUpsert
		}
	}

	rows := f.carts[accountID]
	for i := range rows {
		if rows[i].ProductID == productID && domain.ParseSize(rows[i].Size) == size {
			rows[i].Quantity += qty
			f.carts[accountID] = rows
			return nil
		}
	}
	f.carts[accountID] = append(rows, domain.RawItem{ProductID: productID, Size: string(size), Quantity: qty})
	return nil
}

func (f *fakeRemote) SetQuantity(ctx context.Context, accountID, productID string, size domain.Size, qty int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.carts[accountID]
	for i := range rows {
		if rows[i].ProductID == productID && domain.ParseSize(rows[i].Size) == size {
			rows[i].Quantity = qty
			f.carts[accountID] = rows
			return nil
		}
	}
	f.carts[accountID] = append(rows, domain.RawItem{ProductID: productID, Size: string(size), Quantity: qty})
	return nil
}

func (f *fakeRemote) Remove(ctx context.Context, accountID, productID string, size domain.Size) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.carts[accountID]
	out := rows[:0]
	for _, r := range rows {
		if r.ProductID == productID && domain.ParseSize(r.Size) == size {
			continue
		}
		out = append(out, r)
	}
	f.carts[accountID] = out
	return nil
}

func (f *fakeRemote) Clear(ctx context.Context, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, accountID)
	return nil
}

type fakeGuest struct {
	mu   sync.Mutex
	data map[string][]domain.RawItem
}

func newFakeGuest() *fakeGuest {
	return &fakeGuest{data: map[string][]domain.RawItem{}}
}

func (f *fakeGuest) Get(key string) ([]domain.RawItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, ok := f.data[key]
	out := make([]domain.RawItem, len(rows))
	copy(out, rows)
	return out, ok
}

func (f *fakeGuest) Set(key string, items []domain.RawItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := make([]domain.RawItem, len(items))
	copy(rows, items)
	f.data[key] = rows
}

func (f *fakeGuest) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
}

func newTestService() (*Service, *fakeRemote, *fakeGuest) {
	remote := newFakeRemote()
	guest := newFakeGuest()
	return NewService(remote, guest, nil, 0), remote, guest
}

func TestAddItemMergesIdentity(t *testing.T) {
	ctx := context.Background()

	for _, id := range []Identity{Guest("g1"), Account("a1")} {
		svc, _, _ := newTestService()

		if _, err := svc.AddItem(ctx, id, "p1", "50ml", 2); err != nil {
			t.Fatalf("first add: %v", err)
		}
		cart, err := svc.AddItem(ctx, id, "p1", "50ml", 2)
		if err != nil {
			t.Fatalf("second add: %v", err)
		}

		if len(cart.Items) != 1 {
			t.Fatalf("%+v: expected one merged line, got %d", id, len(cart.Items))
		}
		if cart.Items[0].Quantity != 4 {
			t.Fatalf("%+v: quantity = %d, want 4", id, cart.Items[0].Quantity)
		}
	}
}

func TestGuestAccountParity(t *testing.T) {
	// The same item set must produce identical totals through both paths.
	ctx := context.Background()
	svc, _, _ := newTestService()

	type add struct {
		productID string
		size      string
		qty       int64
	}
	adds := []add{
		{"p1", "100ml", 2},
		{"p2", "100ml", 1},
		{"p3", "20ml", 3},
	}

	guest := Guest("g1")
	account := Account("a1")
	for _, a := range adds {
		if _, err := svc.AddItem(ctx, guest, a.productID, a.size, a.qty); err != nil {
			t.Fatalf("guest add: %v", err)
		}
		if _, err := svc.AddItem(ctx, account, a.productID, a.size, a.qty); err != nil {
			t.Fatalf("account add: %v", err)
		}
	}

	guestTotals, err := svc.Totals(ctx, guest)
	if err != nil {
		t.Fatalf("guest totals: %v", err)
	}
	accountTotals, err := svc.Totals(ctx, account)
	if err != nil {
		t.Fatalf("account totals: %v", err)
	}

	if diff := cmp.Diff(guestTotals, accountTotals); diff != "" {
		t.Fatalf("guest/account totals diverge (-guest +account):\n%s", diff)
	}
	if guestTotals.Subtotal.Amount != 3444 || guestTotals.Discount.Amount != 799 || guestTotals.Total.Amount != 2645 {
		t.Fatalf("unexpected totals: %+v", guestTotals)
	}
	if guestTotals.PromotionLabel == "" {
		t.Fatal("expected promotion label")
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()

	for _, id := range []Identity{Guest("g1"), Account("a1")} {
		svc, _, _ := newTestService()

		if _, err := svc.AddItem(ctx, id, "p1", "100ml", 2); err != nil {
			t.Fatal(err)
		}
		cart, err := svc.UpdateQuantity(ctx, id, "p1", "100ml", 0)
		if err != nil {
			t.Fatalf("update to zero: %v", err)
		}
		if len(cart.Items) != 0 {
			t.Fatalf("%+v: line should be gone, got %+v", id, cart.Items)
		}
	}
}

func TestUpdateQuantityIsAbsolute(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	id := Guest("g1")

	if _, err := svc.AddItem(ctx, id, "p1", "100ml", 5); err != nil {
		t.Fatal(err)
	}
	cart, err := svc.UpdateQuantity(ctx, id, "p1", "100ml", 2)
	if err != nil {
		t.Fatal(err)
	}
	if cart.Items[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want absolute 2", cart.Items[0].Quantity)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	for _, id := range []Identity{Guest("g1"), Account("a1")} {
		cart, err := svc.RemoveItem(ctx, id, "nope", "100ml")
		if err != nil {
			t.Fatalf("%+v: remove absent: %v", id, err)
		}
		if len(cart.Items) != 0 {
			t.Fatalf("%+v: unexpected items %+v", id, cart.Items)
		}
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	for _, qty := range []int64{0, -1} {
		_, err := svc.AddItem(ctx, Guest("g1"), "p1", "100ml", qty)
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("qty=%d: got %v, want ErrInvalidQuantity", qty, err)
		}
	}

	// A rejected add must not have become a removal or a negative line.
	cart, err := svc.GetCart(ctx, Guest("g1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("rejected add left items behind: %+v", cart.Items)
	}
}

func TestClearCartIdempotent(t *testing.T) {
	ctx := context.Background()

	for _, id := range []Identity{Guest("g1"), Account("a1")} {
		svc, _, _ := newTestService()

		if _, err := svc.AddItem(ctx, id, "p1", "100ml", 1); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 2; i++ {
			cart, err := svc.ClearCart(ctx, id)
			if err != nil {
				t.Fatalf("%+v: clear #%d: %v", id, i+1, err)
			}
			if len(cart.Items) != 0 {
				t.Fatalf("%+v: clear #%d left items", id, i+1)
			}
		}
	}
}

func TestChangeSizeMergesIntoExistingLine(t *testing.T) {
	ctx := context.Background()

	for _, id := range []Identity{Guest("g1"), Account("a1")} {
		svc, _, _ := newTestService()

		if _, err := svc.AddItem(ctx, id, "p1", "50ml", 2); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.AddItem(ctx, id, "p1", "100ml", 1); err != nil {
			t.Fatal(err)
		}

		cart, err := svc.ChangeSize(ctx, id, "p1", "50ml", "100ml", 2)
		if err != nil {
			t.Fatalf("%+v: change size: %v", id, err)
		}
		if len(cart.Items) != 1 {
			t.Fatalf("%+v: expected merged single line, got %+v", id, cart.Items)
		}
		if cart.Items[0].Size != domain.Size100ml || cart.Items[0].Quantity != 3 {
			t.Fatalf("%+v: got %s x%d, want 100ml x3", id, cart.Items[0].Size, cart.Items[0].Quantity)
		}
	}
}

func TestChangeSizeRollsBackWhenAddFails(t *testing.T) {
	ctx := context.Background()
	svc, remote, _ := newTestService()
	id := Account("a1")

	if _, err := svc.AddItem(ctx, id, "p1", "50ml", 2); err != nil {
		t.Fatal(err)
	}

	// The remove succeeds, then both the re-add and the restore fail: the
	// half-applied state must be reported distinctly.
	remote.failUpsert = errors.New("boom")
	_, err := svc.ChangeSize(ctx, id, "p1", "50ml", "100ml", 2)
	if !errors.Is(err, ErrSizeChangeIncomplete) {
		t.Fatalf("got %v, want ErrSizeChangeIncomplete", err)
	}
}

func TestChangeSizeRestoreSucceeds(t *testing.T) {
	ctx := context.Background()
	svc, remote, _ := newTestService()
	id := Account("a1")

	if _, err := svc.AddItem(ctx, id, "p1", "50ml", 2); err != nil {
		t.Fatal(err)
	}

	// Fail exactly the "add new size" upsert, let the restore through.
	remote.failUpsert = errors.New("boom")
	remote.failUpsertCount = 1

	_, err := svc.ChangeSize(ctx, id, "p1", "50ml", "100ml", 2)
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("got %v, want ErrRemoteUnavailable after rollback", err)
	}
	if errors.Is(err, ErrSizeChangeIncomplete) {
		t.Fatalf("rolled-back failure must not be half-applied: %v", err)
	}

	remote.failUpsert = nil
	cart, err := svc.GetCart(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Size != domain.Size50ml || cart.Items[0].Quantity != 2 {
		t.Fatalf("old line not restored: %+v", cart.Items)
	}
}

func TestRemoteFailureIsClassified(t *testing.T) {
	ctx := context.Background()
	svc, remote, _ := newTestService()
	remote.failRead = errors.New("connection refused")

	_, err := svc.GetCart(ctx, Account("a1"))
	if !errors.Is(err, ErrRemoteUnavailable) {
		t.Fatalf("got %v, want ErrRemoteUnavailable", err)
	}
}

func TestMissingIdentityRejected(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.GetCart(ctx, Identity{})
	if !errors.Is(err, ErrIdentityRequired) {
		t.Fatalf("got %v, want ErrIdentityRequired", err)
	}
}

func TestConcurrentAddsSerialize(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()
	id := Guest("g1")

	const n = 50
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := svc.AddItem(gctx, id, "p1", "100ml", 1)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent adds: %v", err)
	}

	cart, err := svc.GetCart(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != n {
		t.Fatalf("expected one line x%d, got %+v", n, cart.Items)
	}
}
