package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
	"github.com/iamaamins/sporkbox-client-sub001/pkg/upstream"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCheckoutInFlight = errors.New("checkout already in progress")
	ErrCheckoutFailed   = errors.New("checkout failed, please try again")
)

// CheckoutService hands the final cart and discount reference to the upstream
// API. One submission per user at a time; there is no client-side idempotency
// key beyond that guard.
type CheckoutService struct {
	API      *upstream.Client
	Cart     *CartService
	Discount *DiscountService
	Quotes   *QuoteService

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewCheckoutService(api *upstream.Client, cart *CartService, discount *DiscountService, quotes *QuoteService) *CheckoutService {
	return &CheckoutService{API: api, Cart: cart, Discount: discount, Quotes: quotes, inFlight: make(map[string]bool)}
}

// CheckoutResult mirrors the upstream response: a payment redirect when
// something is payable, or the created orders when the budget covered it all.
type CheckoutResult struct {
	PaymentURL string                 `json:"paymentUrl,omitempty"`
	Orders     []entity.UpcomingOrder `json:"orders,omitempty"`
}

// Checkout submits the cart. The quote is re-derived at submission time: the
// last one the UI saw may predate item expiry or upstream budget changes, and
// a discount must never ride along when nothing is payable. On failure the
// cart is left untouched so the user can retry; on a direct order (no payment
// needed) cart and discount are cleared. The payment-session path clears
// nothing until payment completes upstream.
func (s *CheckoutService) Checkout(ctx context.Context, userID, token string) (*CheckoutResult, error) {
	if !s.begin(userID) {
		return nil, ErrCheckoutInFlight
	}
	defer s.end(userID)

	q, err := s.Quotes.Quote(ctx, userID, token)
	if err != nil {
		log.Printf("checkout quote failed for %s: %v", userID, err)
		return nil, ErrCheckoutFailed
	}
	if len(q.Items) == 0 {
		return nil, ErrEmptyCart
	}

	req := &upstream.CheckoutRequest{Items: make([]upstream.CheckoutItem, 0, len(q.Items))}
	for _, it := range q.Items {
		req.Items = append(req.Items, upstream.CheckoutItem{
			ItemID:       it.ItemID,
			Quantity:     it.Quantity,
			DeliveryDate: it.DeliveryDate,
			RestaurantID: it.RestaurantID,
			ShiftID:      it.ShiftID,
			Addons:       it.Addons,
		})
	}
	// Quote has already dropped any discount whose gross payable hit zero.
	if q.Discount != nil {
		req.DiscountCodeID = q.Discount.ID
	}

	res, err := s.API.CreateOrders(ctx, token, req)
	if err != nil {
		log.Printf("checkout failed for %s: %v", userID, err)
		return nil, ErrCheckoutFailed
	}

	if res.PaymentURL == "" {
		// Orders were placed directly; the cart has served its purpose.
		s.Cart.Clear(ctx, userID)
		s.Discount.Remove(ctx, userID)
	}
	return &CheckoutResult{PaymentURL: res.PaymentURL, Orders: res.Orders}, nil
}

func (s *CheckoutService) begin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[userID] {
		return false
	}
	s.inFlight[userID] = true
	return true
}

func (s *CheckoutService) end(userID string) {
	s.mu.Lock()
	delete(s.inFlight, userID)
	s.mu.Unlock()
}
