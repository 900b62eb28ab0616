package app

import (
	"context"
	"fmt"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/pricing"
)

// MergeGuestCart folds a guest's locally-held line items into the account's
// remote cart, once, at sign-in. The guest store is cleared only after every
// line has been accepted remotely; on failure it is retained so the merge can
// be retried without losing the guest cart. The remote cart is reloaded as
// the new source of truth regardless of merge outcome.
//
// Semantics are at-least-once: a retry after a partial failure re-sends lines
// that already landed, and the remote upsert-by-identity increments them
// again. That is accepted as long as retries carry the same quantities, which
// holds because the guest set is untouched between attempts.
func (s *Service) MergeGuestCart(ctx context.Context, guestID, accountID string) (domain.Cart, error) {
	if accountID == "" {
		return domain.Cart{}, ErrIdentityRequired
	}
	if guestID == "" {
		return domain.Cart{}, fmt.Errorf("merge: %w: empty guest id", ErrInvalidInput)
	}

	guest := Guest(guestID)
	account := Account(accountID)

	// Lock ordering is fixed (guest before account); this is the only path
	// that holds two cart locks.
	unlockGuest := s.locks.lock(guest.key())
	defer unlockGuest()
	unlockAccount := s.locks.lock(account.key())
	defer unlockAccount()

	rows, _ := s.guest.Get(guest.key())
	lines := domain.Normalize(rows, pricing.PriceOf)

	var mergeErr error
	for _, it := range lines {
		err := s.remoteCall(ctx, "merge: add item", func(rctx context.Context) error {
			return s.remote.Upsert(rctx, accountID, it.ProductID, it.Size, it.Quantity)
		})
		if err != nil {
			mergeErr = fmt.Errorf("%w: product %s (%s): %w", ErrPartialMerge, it.ProductID, it.Size, err)
			break
		}
	}

	if mergeErr == nil && len(lines) > 0 {
		s.guest.Remove(guest.key())
	}

	rawAfter, readErr := s.readRaw(ctx, account)
	if mergeErr != nil {
		return s.assemble(ctx, rawAfter), mergeErr
	}
	if readErr != nil {
		return domain.Cart{}, readErr
	}
	return s.assemble(ctx, rawAfter), nil
}
