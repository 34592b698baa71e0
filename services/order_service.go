package services

import (
	"context"
	"sort"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
	"github.com/iamaamins/sporkbox-client-sub001/pkg/upstream"
)

// OrderService exposes read-only projections of orders that already exist
// upstream. They feed the history views and the budget calculator.
type OrderService struct {
	API *upstream.Client
}

func NewOrderService(api *upstream.Client) *OrderService {
	return &OrderService{API: api}
}

// Upcoming returns the caller's pending orders, soonest delivery first.
func (s *OrderService) Upcoming(ctx context.Context, token string) ([]entity.UpcomingOrder, error) {
	orders, err := s.API.UpcomingOrders(ctx, token)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].DeliveryDate < orders[j].DeliveryDate
	})
	return orders, nil
}

// Delivered returns up to limit past orders, most recent first.
func (s *OrderService) Delivered(ctx context.Context, token string, limit int) ([]entity.DeliveredOrder, error) {
	if limit <= 0 {
		limit = 25
	}
	orders, err := s.API.DeliveredOrders(ctx, token, limit)
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].DeliveredAt > orders[j].DeliveredAt
	})
	return orders, nil
}

// UpcomingByDate groups pending orders by delivery date for the grouped
// history view.
func UpcomingByDate(orders []entity.UpcomingOrder) map[int64][]entity.UpcomingOrder {
	grouped := make(map[int64][]entity.UpcomingOrder)
	for _, o := range orders {
		grouped[o.DeliveryDate] = append(grouped[o.DeliveryDate], o)
	}
	return grouped
}
