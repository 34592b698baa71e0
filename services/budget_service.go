package services

import (
	"sort"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
)

// DatePayable is the budget math for one delivery date.
type DatePayable struct {
	DeliveryDate int64   `json:"deliveryDate"`
	CartTotal    float64 `json:"cartTotal"`
	AlreadySpent float64 `json:"alreadySpent"`
	Remaining    float64 `json:"remaining"`
	Payable      float64 `json:"payable"`
}

// PayableBreakdown is the per-date budget math plus the gross total. The
// discount is applied later, on top of Gross.
type PayableBreakdown struct {
	Dates []DatePayable `json:"dates"`
	Gross float64       `json:"gross"`
}

// SpentPerDate indexes upcoming orders by delivery date, summing what was
// already charged against the shift allowance on each date.
func SpentPerDate(orders []entity.UpcomingOrder) map[int64]float64 {
	spent := make(map[int64]float64, len(orders))
	for _, o := range orders {
		spent[o.DeliveryDate] += o.Total
	}
	return spent
}

// ComputePayable runs the canonical shift-budget formula:
//
//	payable(date) = max(0, cartTotal(date) - max(0, shiftBudget - alreadySpent(date)))
//
// and sums the positive per-date remainders into Gross. A date whose cart
// total fits inside the remaining allowance contributes zero.
func ComputePayable(items []entity.CartItem, spent map[int64]float64, shiftBudget float64) *PayableBreakdown {
	totals := make(map[int64]float64, len(items))
	for _, it := range items {
		totals[it.DeliveryDate] += it.LineTotal()
	}

	dates := make([]int64, 0, len(totals))
	for d := range totals {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	b := &PayableBreakdown{Dates: make([]DatePayable, 0, len(dates))}
	for _, d := range dates {
		already := spent[d]
		remaining := shiftBudget - already
		if remaining < 0 {
			remaining = 0
		}
		payable := totals[d] - remaining
		if payable < 0 {
			payable = 0
		}
		b.Dates = append(b.Dates, DatePayable{
			DeliveryDate: d,
			CartTotal:    totals[d],
			AlreadySpent: already,
			Remaining:    remaining,
			Payable:      payable,
		})
		b.Gross += payable
	}
	return b
}
