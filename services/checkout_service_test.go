package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
	"github.com/iamaamins/sporkbox-client-sub001/pkg/upstream"
)

// checkoutUpstream serves the session and order projections around a
// test-specific create-orders handler.
func checkoutUpstream(sess entity.Session, upcoming []entity.UpcomingOrder, create http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/me":
			json.NewEncoder(w).Encode(sess)
		case "/orders/me/upcoming-orders":
			json.NewEncoder(w).Encode(upcoming)
		case "/orders/create-orders":
			create(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
}

func checkoutFixture(srv *httptest.Server) (*CheckoutService, *CartService, *DiscountService) {
	store := newMemStore()
	api := upstream.NewClient(srv.URL)
	cart := NewCartService(store, time.Hour)
	cart.now = func() time.Time { return time.UnixMilli(may1) }
	discount := NewDiscountService(store, api)
	orders := NewOrderService(api)
	sessions := NewSessionService(store, api)
	quotes := NewQuoteService(cart, discount, orders, sessions)
	return NewCheckoutService(api, cart, discount, quotes), cart, discount
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	srv := checkoutUpstream(customerSession(50), nil, func(w http.ResponseWriter, r *http.Request) {
		t.Error("orders must not be created for an empty cart")
	})
	defer srv.Close()
	s, _, _ := checkoutFixture(srv)

	_, err := s.Checkout(context.Background(), "u1", "tok")

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutDirectOrderClearsCartAndDiscount(t *testing.T) {
	// gross 15 (45 against remaining 30), discount 20 absorbs it fully
	srv := checkoutUpstream(customerSession(50), []entity.UpcomingOrder{{DeliveryDate: may1, Total: 20}},
		func(w http.ResponseWriter, r *http.Request) {
			var req upstream.CheckoutRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.DiscountCodeID != "d1" {
				t.Errorf("discount id not forwarded, got %q", req.DiscountCodeID)
			}
			json.NewEncoder(w).Encode(upstream.CheckoutResponse{
				Orders: []entity.UpcomingOrder{{ID: "o1", DeliveryDate: may1, Total: 0}},
			})
		})
	defer srv.Close()
	s, cart, discount := checkoutFixture(srv)
	ctx := context.Background()

	cart.AddOrUpdate(ctx, "u1", line(may1, 3, 15, 0))
	seedDiscount(t, discount, "u1", 20)

	res, err := s.Checkout(ctx, "u1", "tok")
	require.NoError(t, err)
	assert.Empty(t, res.PaymentURL)
	assert.Len(t, res.Orders, 1)

	items, _ := cart.Items(ctx, "u1")
	assert.Empty(t, items)
	d, _ := discount.Applied(ctx, "u1")
	assert.Nil(t, d)
}

func TestCheckoutDropsDiscountWhenNothingPayable(t *testing.T) {
	// the whole cart fits inside the allowance, so gross is zero and the
	// stored discount must not reach the orders endpoint
	var gotDiscountID string
	srv := checkoutUpstream(customerSession(50), nil, func(w http.ResponseWriter, r *http.Request) {
		var req upstream.CheckoutRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotDiscountID = req.DiscountCodeID
		json.NewEncoder(w).Encode(upstream.CheckoutResponse{
			Orders: []entity.UpcomingOrder{{ID: "o1", DeliveryDate: may1, Total: 0}},
		})
	})
	defer srv.Close()
	s, cart, discount := checkoutFixture(srv)
	ctx := context.Background()

	cart.AddOrUpdate(ctx, "u1", line(may1, 1, 10, 0))
	seedDiscount(t, discount, "u1", 20)

	res, err := s.Checkout(ctx, "u1", "tok")
	require.NoError(t, err)
	assert.Len(t, res.Orders, 1)

	assert.Equal(t, "", gotDiscountID, "discount must not ride on a zero gross payable")
	d, _ := discount.Applied(ctx, "u1")
	assert.Nil(t, d)
}

func TestCheckoutPaymentPathLeavesCartAlone(t *testing.T) {
	srv := checkoutUpstream(customerSession(50), []entity.UpcomingOrder{{DeliveryDate: may1, Total: 20}},
		func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(upstream.CheckoutResponse{PaymentURL: "https://pay.example/session"})
		})
	defer srv.Close()
	s, cart, _ := checkoutFixture(srv)
	ctx := context.Background()

	cart.AddOrUpdate(ctx, "u1", line(may1, 3, 15, 0))

	res, err := s.Checkout(ctx, "u1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/session", res.PaymentURL)

	// payment not completed yet; the cart stays until upstream confirms
	items, _ := cart.Items(ctx, "u1")
	assert.Len(t, items, 1)
}

func TestCheckoutFailureLeavesCartUntouched(t *testing.T) {
	srv := checkoutUpstream(customerSession(50), nil, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "stripe is down", http.StatusBadGateway)
	})
	defer srv.Close()
	s, cart, _ := checkoutFixture(srv)
	ctx := context.Background()

	cart.AddOrUpdate(ctx, "u1", line(may1, 3, 15, 0))

	_, err := s.Checkout(ctx, "u1", "tok")
	assert.ErrorIs(t, err, ErrCheckoutFailed)

	items, _ := cart.Items(ctx, "u1")
	assert.Len(t, items, 1, "user must be able to retry")
}

func TestCheckoutGuardsAgainstDoubleSubmission(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := checkoutUpstream(customerSession(50), nil, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		json.NewEncoder(w).Encode(upstream.CheckoutResponse{
			Orders: []entity.UpcomingOrder{{ID: "o1"}},
		})
	})
	defer srv.Close()
	s, cart, _ := checkoutFixture(srv)
	ctx := context.Background()

	cart.AddOrUpdate(ctx, "u1", line(may1, 1, 10, 0))

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = s.Checkout(ctx, "u1", "tok")
	}()

	<-started
	_, err := s.Checkout(ctx, "u1", "tok")
	assert.ErrorIs(t, err, ErrCheckoutInFlight)

	close(release)
	wg.Wait()
	assert.NoError(t, firstErr)

	// the guard lifts once the first submission finishes
	_, err = s.Checkout(ctx, "u1", "tok")
	assert.ErrorIs(t, err, ErrEmptyCart)
}
