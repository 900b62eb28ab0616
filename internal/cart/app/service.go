package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/pricing"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrIdentityRequired     = errors.New("identity required")
	ErrRemoteUnavailable    = errors.New("remote cart unavailable")
	ErrPartialMerge         = errors.New("guest cart merge incomplete")
	ErrSizeChangeIncomplete = errors.New("size change half-applied")
)

const defaultRemoteTimeout = 10 * time.Second

// Service is the cart mutation coordinator. It routes each operation to the
// guest store or the remote store by identity, serializes mutations per cart,
// and re-derives canonical items and totals after every mutation.
//
// For an authenticated identity the remote store is the source of truth:
// every write is followed by a full reload, never an optimistic local patch.
// Guest mutations write the full set back to the guest store synchronously.
type Service struct {
	remote   RemoteCart
	guest    GuestStore
	products ProductReader
	timeout  time.Duration
	locks    keyedLock
}

// NewService wires the coordinator. products may be nil (no display
// enrichment). timeout <= 0 falls back to 10s.
func NewService(remote RemoteCart, guest GuestStore, products ProductReader, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &Service{
		remote:   remote,
		guest:    guest,
		products: products,
		timeout:  timeout,
	}
}

func (s *Service) GetCart(ctx context.Context, id Identity) (domain.Cart, error) {
	if err := checkIdentity(id); err != nil {
		return domain.Cart{}, err
	}

	rows, err := s.readRaw(ctx, id)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.assemble(ctx, rows), nil
}

// Totals is read-only and safe to call at any time; it reflects the
// last-known-good state of the cart.
func (s *Service) Totals(ctx context.Context, id Identity) (domain.CartTotals, error) {
	cart, err := s.GetCart(ctx, id)
	if err != nil {
		return domain.CartTotals{}, err
	}
	return cart.Totals, nil
}

// AddItem increments an existing (product, size) line or creates it. A
// non-positive quantity is rejected, never treated as a removal.
func (s *Service) AddItem(ctx context.Context, id Identity, productID, sizeLabel string, qty int64) (domain.Cart, error) {
	if err := checkIdentity(id); err != nil {
		return domain.Cart{}, err
	}
	if productID == "" {
		return domain.Cart{}, fmt.Errorf("add item: %w: empty product id", ErrInvalidInput)
	}
	if qty <= 0 {
		return domain.Cart{}, fmt.Errorf("add item: %w: %d", ErrInvalidQuantity, qty)
	}

	size := domain.ParseSize(sizeLabel)

	unlock := s.locks.lock(id.key())
	defer unlock()

	if id.IsGuest() {
		rows, _ := s.guest.Get(id.key())
		rows = upsertRaw(rows, productID, size, qty, false)
		s.guest.Set(id.key(), rows)
		return s.assemble(ctx, rows), nil
	}

	if err := s.remoteCall(ctx, "add item", func(rctx context.Context) error {
		return s.remote.Upsert(rctx, id.AccountID, productID, size, qty)
	}); err != nil {
		return domain.Cart{}, err
	}

	return s.reload(ctx, id)
}

// UpdateQuantity sets a line's quantity absolutely. Zero or negative behaves
// as RemoveItem.
func (s *Service) UpdateQuantity(ctx context.Context, id Identity, productID, sizeLabel string, qty int64) (domain.Cart, error) {
	if qty <= 0 {
		return s.RemoveItem(ctx, id, productID, sizeLabel)
	}
	if err := checkIdentity(id); err != nil {
		return domain.Cart{}, err
	}
	if productID == "" {
		return domain.Cart{}, fmt.Errorf("update quantity: %w: empty product id", ErrInvalidInput)
	}

	size := domain.ParseSize(sizeLabel)

	unlock := s.locks.lock(id.key())
	defer unlock()

	if id.IsGuest() {
		rows, _ := s.guest.Get(id.key())
		rows = upsertRaw(rows, productID, size, qty, true)
		s.guest.Set(id.key(), rows)
		return s.assemble(ctx, rows), nil
	}

	if err := s.remoteCall(ctx, "set quantity", func(rctx context.Context) error {
		return s.remote.SetQuantity(rctx, id.AccountID, productID, size, qty)
	}); err != nil {
		return domain.Cart{}, err
	}

	return s.reload(ctx, id)
}

// RemoveItem deletes the (product, size) line. Removing an absent line is a
// no-op, not an error.
func (s *Service) RemoveItem(ctx context.Context, id Identity, productID, sizeLabel string) (domain.Cart, error) {
	if err := checkIdentity(id); err != nil {
		return domain.Cart{}, err
	}

	size := domain.ParseSize(sizeLabel)

	unlock := s.locks.lock(id.key())
	defer unlock()

	if id.IsGuest() {
		rows, _ := s.guest.Get(id.key())
		rows = removeRaw(rows, productID, size)
		s.guest.Set(id.key(), rows)
		return s.assemble(ctx, rows), nil
	}

	if err := s.remoteCall(ctx, "remove item", func(rctx context.Context) error {
		return s.remote.Remove(rctx, id.AccountID, productID, size)
	}); err != nil {
		return domain.Cart{}, err
	}

	return s.reload(ctx, id)
}

// ChangeSize moves a line to a new size: remove the old identity, add the new
// one (which may merge into an existing line of that identity). For an
// authenticated cart the two remote steps are coordinated: if the re-add
// fails, the removed line is restored; if even the restore fails the caller
// gets ErrSizeChangeIncomplete so the UI can prompt a retry instead of
// reporting a generic failure.
func (s *Service) ChangeSize(ctx context.Context, id Identity, productID, oldSizeLabel, newSizeLabel string, qty int64) (domain.Cart, error) {
	if err := checkIdentity(id); err != nil {
		return domain.Cart{}, err
	}
	if qty <= 0 {
		return domain.Cart{}, fmt.Errorf("change size: %w: %d", ErrInvalidQuantity, qty)
	}

	oldSize := domain.ParseSize(oldSizeLabel)
	newSize := domain.ParseSize(newSizeLabel)

	unlock := s.locks.lock(id.key())
	defer unlock()

	if oldSize == newSize {
		rows, err := s.readRaw(ctx, id)
		if err != nil {
			return domain.Cart{}, err
		}
		return s.assemble(ctx, rows), nil
	}

	if id.IsGuest() {
		rows, _ := s.guest.Get(id.key())
		rows = upsertRaw(removeRaw(rows, productID, oldSize), productID, newSize, qty, false)
		s.guest.Set(id.key(), rows)
		return s.assemble(ctx, rows), nil
	}

	// Capture the old line's quantity so a failed re-add can be rolled back.
	before, err := s.readRaw(ctx, id)
	if err != nil {
		return domain.Cart{}, err
	}
	var oldQty int64
	for _, it := range domain.Normalize(before, pricing.PriceOf) {
		if it.ProductID == productID && it.Size == oldSize {
			oldQty = it.Quantity
			break
		}
	}

	if err := s.remoteCall(ctx, "change size: remove", func(rctx context.Context) error {
		return s.remote.Remove(rctx, id.AccountID, productID, oldSize)
	}); err != nil {
		return domain.Cart{}, err
	}

	addErr := s.remoteCall(ctx, "change size: add", func(rctx context.Context) error {
		return s.remote.Upsert(rctx, id.AccountID, productID, newSize, qty)
	})
	if addErr != nil && oldQty > 0 {
		restoreErr := s.remoteCall(ctx, "change size: restore", func(rctx context.Context) error {
			return s.remote.Upsert(rctx, id.AccountID, productID, oldSize, oldQty)
		})
		if restoreErr != nil {
			return domain.Cart{}, fmt.Errorf("%w: %s/%s removed, %s not added", ErrSizeChangeIncomplete, productID, oldSize, newSize)
		}
	}
	if addErr != nil {
		return domain.Cart{}, addErr
	}

	return s.reload(ctx, id)
}

// ClearCart empties the identity's full set. Clearing an already-empty cart
// is a no-op.
func (s *Service) ClearCart(ctx context.Context, id Identity) (domain.Cart, error) {
	if err := checkIdentity(id); err != nil {
		return domain.Cart{}, err
	}

	unlock := s.locks.lock(id.key())
	defer unlock()

	if id.IsGuest() {
		s.guest.Remove(id.key())
		return s.assemble(ctx, nil), nil
	}

	if err := s.remoteCall(ctx, "clear cart", func(rctx context.Context) error {
		return s.remote.Clear(rctx, id.AccountID)
	}); err != nil {
		return domain.Cart{}, err
	}

	return s.reload(ctx, id)
}

func (s *Service) readRaw(ctx context.Context, id Identity) ([]domain.RawItem, error) {
	if id.IsGuest() {
		rows, _ := s.guest.Get(id.key())
		return rows, nil
	}

	var rows []domain.RawItem
	err := s.remoteCall(ctx, "read cart", func(rctx context.Context) error {
		var err error
		rows, err = s.remote.Read(rctx, id.AccountID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) reload(ctx context.Context, id Identity) (domain.Cart, error) {
	rows, err := s.readRaw(ctx, id)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.assemble(ctx, rows), nil
}

// assemble turns raw rows into the canonical cart: normalize, enrich display
// names best-effort, compute totals. Identical for both identity paths.
func (s *Service) assemble(ctx context.Context, rows []domain.RawItem) domain.Cart {
	items := domain.Normalize(rows, pricing.PriceOf)
	s.enrich(ctx, items)
	return domain.Cart{
		Items:  items,
		Totals: pricing.ComputeTotals(items),
	}
}

func (s *Service) enrich(ctx context.Context, items []domain.LineItem) {
	if s.products == nil {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i := range items {
		if items[i].ProductName != domain.StaleProductName {
			continue
		}
		g.Go(func() error {
			name, images, err := s.products.Snapshot(gctx, items[i].ProductID)
			if err != nil || name == "" {
				// Stale reference: keep the placeholder, keep the line.
				return nil
			}
			items[i].ProductName = name
			if len(items[i].ProductImages) == 0 {
				items[i].ProductImages = images
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Service) remoteCall(ctx context.Context, op string, fn func(context.Context) error) error {
	rctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := fn(rctx); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrRemoteUnavailable, err)
	}
	return nil
}

func checkIdentity(id Identity) error {
	if id.AccountID == "" && id.GuestID == "" {
		return ErrIdentityRequired
	}
	return nil
}

// upsertRaw merges a quantity into the guest row set. absolute replaces the
// quantity instead of incrementing.
func upsertRaw(rows []domain.RawItem, productID string, size domain.Size, qty int64, absolute bool) []domain.RawItem {
	for i := range rows {
		if rows[i].ProductID == productID && domain.ParseSize(rows[i].Size) == size {
			if absolute {
				rows[i].Quantity = qty
			} else {
				rows[i].Quantity += qty
			}
			return rows
		}
	}
	return append(rows, domain.RawItem{
		ProductID: productID,
		Size:      string(size),
		Quantity:  qty,
		AddedAt:   time.Now(),
	})
}

func removeRaw(rows []domain.RawItem, productID string, size domain.Size) []domain.RawItem {
	out := rows[:0]
	for _, r := range rows {
		if r.ProductID == productID && domain.ParseSize(r.Size) == size {
			continue
		}
		out = append(out, r)
	}
	return out
}
