package upstream

import (
	"context"
	"fmt"
	"net/url"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
)

// Me returns the authenticated user with company memberships.
func (c *Client) Me(ctx context.Context, token string) (*entity.Session, error) {
	var s entity.Session
	if err := c.do(ctx, "GET", "/users/me", token, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ApplyDiscount validates a code. Any non-2xx means the code was rejected;
// the upstream reason is not propagated to users.
func (c *Client) ApplyDiscount(ctx context.Context, token, code string) (*entity.AppliedDiscount, error) {
	var d entity.AppliedDiscount
	path := "/discount-code/apply/" + url.PathEscape(code)
	if err := c.do(ctx, "POST", path, token, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpcomingOrders returns the caller's not-yet-delivered orders.
func (c *Client) UpcomingOrders(ctx context.Context, token string) ([]entity.UpcomingOrder, error) {
	var orders []entity.UpcomingOrder
	if err := c.do(ctx, "GET", "/orders/me/upcoming-orders", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// DeliveredOrders returns up to limit delivered orders, newest first.
func (c *Client) DeliveredOrders(ctx context.Context, token string, limit int) ([]entity.DeliveredOrder, error) {
	var orders []entity.DeliveredOrder
	path := fmt.Sprintf("/orders/me/delivered-orders/%d", limit)
	if err := c.do(ctx, "GET", path, token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CheckoutItem is one cart line in the shape the orders endpoint expects.
type CheckoutItem struct {
	ItemID       string   `json:"itemId"`
	Quantity     int      `json:"quantity"`
	DeliveryDate int64    `json:"deliveryDate"`
	RestaurantID string   `json:"restaurantId"`
	ShiftID      string   `json:"companyId"`
	Addons       []string `json:"optionalAddons,omitempty"`
}

type CheckoutRequest struct {
	Items          []CheckoutItem `json:"orderItems"`
	DiscountCodeID string         `json:"discountCodeId,omitempty"`
}

// CheckoutResponse is either a payment session redirect (payable > 0) or the
// created orders (nothing to pay). Exactly one of the two is set.
type CheckoutResponse struct {
	PaymentURL string                 `json:"url,omitempty"`
	Orders     []entity.UpcomingOrder `json:"orders,omitempty"`
}

// CreateOrders submits the final cart. The upstream side decides whether a
// Stripe session is needed or the orders can be placed directly.
func (c *Client) CreateOrders(ctx context.Context, token string, req *CheckoutRequest) (*CheckoutResponse, error) {
	var out CheckoutResponse
	if err := c.do(ctx, "POST", "/orders/create-orders", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
