package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
)

func newTestCart() *CartService {
	s := NewCartService(newMemStore(), time.Hour)
	s.now = func() time.Time { return time.UnixMilli(may1) }
	return s
}

func TestAddSameIdentityReplacesLine(t *testing.T) {
	s := newTestCart()
	ctx := context.Background()

	_, err := s.AddOrUpdate(ctx, "u1", line(may1, 1, 15, 0))
	require.NoError(t, err)
	items, err := s.AddOrUpdate(ctx, "u1", line(may1, 3, 15, 0))
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddDifferentDateAppends(t *testing.T) {
	s := newTestCart()
	ctx := context.Background()

	s.AddOrUpdate(ctx, "u1", line(may1, 1, 15, 0))
	items, _ := s.AddOrUpdate(ctx, "u1", line(may2, 1, 15, 0))

	assert.Len(t, items, 2)
}

func TestAddRejectsZeroQuantity(t *testing.T) {
	s := newTestCart()

	_, err := s.AddOrUpdate(context.Background(), "u1", line(may1, 0, 15, 0))

	assert.ErrorIs(t, err, ErrBadQuantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s := newTestCart()
	ctx := context.Background()

	s.AddOrUpdate(ctx, "u1", line(may1, 2, 15, 0))
	items, err := s.UpdateQuantity(ctx, "u1", line(may1, 2, 15, 0), 0)

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := newTestCart()
	ctx := context.Background()

	s.AddOrUpdate(ctx, "u1", line(may1, 2, 15, 0))
	items, err := s.Remove(ctx, "u1", line(may1, 2, 15, 0))
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = s.Remove(ctx, "u1", line(may1, 2, 15, 0))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartsAreKeyedPerUser(t *testing.T) {
	s := newTestCart()
	ctx := context.Background()

	s.AddOrUpdate(ctx, "u1", line(may1, 1, 15, 0))
	s.AddOrUpdate(ctx, "u2", line(may2, 2, 10, 0))

	u1, _ := s.Items(ctx, "u1")
	u2, _ := s.Items(ctx, "u2")

	require.Len(t, u1, 1)
	require.Len(t, u2, 1)
	assert.Equal(t, may1, u1[0].DeliveryDate)
	assert.Equal(t, may2, u2[0].DeliveryDate)
}

func TestExpiredLinesDropOnRestore(t *testing.T) {
	s := newTestCart()
	ctx := context.Background()

	s.AddOrUpdate(ctx, "u1", line(may1, 1, 15, 0))
	s.AddOrUpdate(ctx, "u1", line(may2, 1, 15, 0))

	// jump past the TTL of the first line only
	s.now = func() time.Time { return time.UnixMilli(may1).Add(2 * time.Hour) }
	s.AddOrUpdate(ctx, "u1", line(may2, 2, 15, 0))

	s.now = func() time.Time { return time.UnixMilli(may1).Add(150 * time.Minute) }
	items, _ := s.Items(ctx, "u1")

	require.Len(t, items, 1)
	assert.Equal(t, may2, items[0].DeliveryDate)
}

func TestStorageFailuresAreNonFatal(t *testing.T) {
	s := NewCartService(failStore{}, time.Hour)
	ctx := context.Background()

	items, err := s.Items(ctx, "u1")
	assert.NoError(t, err)
	assert.Empty(t, items)

	items, err = s.AddOrUpdate(ctx, "u1", line(may1, 1, 15, 0))
	assert.NoError(t, err)
	assert.Len(t, items, 1)

	assert.NoError(t, s.Clear(ctx, "u1"))
}

func TestCorruptStateStartsEmpty(t *testing.T) {
	store := newMemStore()
	store.Put(context.Background(), "cart-u1", "{not json")
	s := NewCartService(store, time.Hour)

	items, err := s.Items(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestNotifierSeesEveryMutation(t *testing.T) {
	s := newTestCart()
	var got [][]entity.CartItem
	s.Notifier = notifierFunc(func(userID string, items []entity.CartItem) {
		got = append(got, items)
	})

	ctx := context.Background()
	s.AddOrUpdate(ctx, "u1", line(may1, 1, 15, 0))
	s.Remove(ctx, "u1", line(may1, 1, 15, 0))
	s.Clear(ctx, "u1")

	require.Len(t, got, 3)
	assert.Len(t, got[0], 1)
	assert.Empty(t, got[1])
	assert.Empty(t, got[2])
}

type notifierFunc func(string, []entity.CartItem)

func (f notifierFunc) CartChanged(userID string, items []entity.CartItem) { f(userID, items) }
