package services

import (
	"context"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
)

// CartQuote is what the UI renders after every cart change: the items, the
// per-date budget math, the applied discount and the final amount. When the
// customer has no active company the budget math is skipped entirely
// (BudgetApplied=false) and checkout validation is left to the upstream API.
type CartQuote struct {
	Items           []entity.CartItem       `json:"items"`
	Breakdown       *PayableBreakdown       `json:"breakdown,omitempty"`
	Discount        *entity.AppliedDiscount `json:"discount,omitempty"`
	BudgetApplied   bool                    `json:"budgetApplied"`
	Gross           float64                 `json:"gross"`
	Net             float64                 `json:"net"`
	RequiresPayment bool                    `json:"requiresPayment"`
}

// QuoteService re-derives the payable amount from the current cart, the
// already-placed upcoming orders and the customer's shift budget.
type QuoteService struct {
	Cart     *CartService
	Discount *DiscountService
	Orders   *OrderService
	Sessions *SessionService
}

func NewQuoteService(cart *CartService, discount *DiscountService, orders *OrderService, sessions *SessionService) *QuoteService {
	return &QuoteService{Cart: cart, Discount: discount, Orders: orders, Sessions: sessions}
}

// Quote computes the current quote and enforces the auto-invalidation rule:
// a discount never survives a gross payable of zero or below.
func (s *QuoteService) Quote(ctx context.Context, userID, token string) (*CartQuote, error) {
	items, _ := s.Cart.Items(ctx, userID)
	q := &CartQuote{Items: items}

	sess, err := s.Sessions.Current(ctx, userID, token)
	if err != nil {
		return nil, err
	}

	if company, ok := sess.ActiveCompany(); ok && sess.Role == entity.RoleCustomer {
		upcoming, err := s.Orders.Upcoming(ctx, token)
		if err != nil {
			return nil, err
		}
		q.Breakdown = ComputePayable(items, SpentPerDate(upcoming), company.ShiftBudget)
		q.BudgetApplied = true
		q.Gross = q.Breakdown.Gross
	}

	// Gross of zero means there is nothing left to discount. Without an
	// active company gross is undefined, so only an emptied cart clears it.
	if q.BudgetApplied && q.Gross <= 0 || !q.BudgetApplied && len(items) == 0 {
		s.Discount.Remove(ctx, userID)
	} else {
		q.Discount, _ = s.Discount.Applied(ctx, userID)
	}

	q.Net = q.Gross
	if q.Discount != nil {
		q.Net = q.Gross - q.Discount.Value
	}
	q.RequiresPayment = q.BudgetApplied && q.Net > 0
	return q, nil
}
