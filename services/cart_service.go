package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
	"github.com/iamaamins/sporkbox-client-sub001/repository"
)

// CartNotifier receives the new cart after every mutation so open tabs of the
// same user stay in sync. Implemented by the ws hub.
type CartNotifier interface {
	CartChanged(userID string, items []entity.CartItem)
}

// CartService owns the per-user cart. The state store is the single source of
// truth; the key is derived from the user id on every call so a login/logout
// in the same browser lands in the right bucket.
type CartService struct {
	Store    repository.StateStore
	TTL      time.Duration
	Notifier CartNotifier

	now func() time.Time // swapped in tests
}

func NewCartService(store repository.StateStore, ttl time.Duration) *CartService {
	return &CartService{Store: store, TTL: ttl, now: time.Now}
}

var ErrBadQuantity = errors.New("quantity must be at least 1")

func cartKey(userID string) string { return "cart-" + userID }

// Items loads the user's cart, dropping lines whose expiry has passed.
// Storage trouble is best-effort territory: the cart just starts empty.
func (s *CartService) Items(ctx context.Context, userID string) ([]entity.CartItem, error) {
	raw, err := s.Store.Get(ctx, cartKey(userID))
	if err != nil {
		log.Printf("cart read failed for %s: %v", userID, err)
		return nil, nil
	}
	if raw == "" {
		return nil, nil
	}

	var items []entity.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("cart state corrupt for %s, starting empty: %v", userID, err)
		return nil, nil
	}

	nowMs := s.now().UnixMilli()
	fresh := items[:0]
	for _, it := range items {
		if it.ExpiresAt == 0 || it.ExpiresAt > nowMs {
			fresh = append(fresh, it)
		}
	}
	if len(fresh) != len(items) {
		s.persist(ctx, userID, fresh)
	}
	return fresh, nil
}

// AddOrUpdate appends the line, or replaces quantity and derived totals when
// a line with the same identity (item + date + shift + restaurant) already
// exists. The full list is persisted after every mutation.
func (s *CartService) AddOrUpdate(ctx context.Context, userID string, item entity.CartItem) ([]entity.CartItem, error) {
	if item.Quantity < 1 {
		return nil, ErrBadQuantity
	}
	item.ExpiresAt = s.now().Add(s.TTL).UnixMilli()

	items, _ := s.Items(ctx, userID)
	replaced := false
	for i := range items {
		if items[i].SameIdentity(item) {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}

	s.persist(ctx, userID, items)
	return items, nil
}

// UpdateQuantity sets the quantity on an existing line. A quantity of zero or
// less removes the line instead.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, item entity.CartItem, qty int) ([]entity.CartItem, error) {
	if qty <= 0 {
		return s.Remove(ctx, userID, item)
	}

	items, _ := s.Items(ctx, userID)
	for i := range items {
		if items[i].SameIdentity(item) {
			items[i].Quantity = qty
			break
		}
	}
	s.persist(ctx, userID, items)
	return items, nil
}

// Remove filters the line out by identity. Removing a line that is not there
// is a no-op.
func (s *CartService) Remove(ctx context.Context, userID string, item entity.CartItem) ([]entity.CartItem, error) {
	items, _ := s.Items(ctx, userID)
	kept := items[:0]
	for _, it := range items {
		if !it.SameIdentity(item) {
			kept = append(kept, it)
		}
	}
	s.persist(ctx, userID, kept)
	return kept, nil
}

// Clear drops the whole cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.Store.Delete(ctx, cartKey(userID)); err != nil {
		log.Printf("cart clear failed for %s: %v", userID, err)
	}
	if s.Notifier != nil {
		s.Notifier.CartChanged(userID, nil)
	}
	return nil
}

func (s *CartService) persist(ctx context.Context, userID string, items []entity.CartItem) {
	b, err := json.Marshal(items)
	if err == nil {
		err = s.Store.Put(ctx, cartKey(userID), string(b))
	}
	if err != nil {
		// best effort, matching the old client's silent local-storage writes
		log.Printf("cart persist failed for %s: %v", userID, err)
	}
	if s.Notifier != nil {
		s.Notifier.CartChanged(userID, items)
	}
}
