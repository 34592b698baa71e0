package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
	"github.com/iamaamins/sporkbox-client-sub001/pkg/upstream"
	"github.com/iamaamins/sporkbox-client-sub001/repository"
)

// ErrInvalidCode is the only failure the UI ever sees for a rejected code;
// upstream validation details are deliberately not passed through.
var ErrInvalidCode = errors.New("invalid discount code")

type DiscountService struct {
	Store repository.StateStore
	API   *upstream.Client
}

func NewDiscountService(store repository.StateStore, api *upstream.Client) *DiscountService {
	return &DiscountService{Store: store, API: api}
}

func discountKey(userID string) string { return "discount-" + userID }

// Applied returns the stored discount, or nil when none is applied.
func (s *DiscountService) Applied(ctx context.Context, userID string) (*entity.AppliedDiscount, error) {
	raw, err := s.Store.Get(ctx, discountKey(userID))
	if err != nil {
		log.Printf("discount read failed for %s: %v", userID, err)
		return nil, nil
	}
	if raw == "" {
		return nil, nil
	}
	var d entity.AppliedDiscount
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		log.Printf("discount state corrupt for %s: %v", userID, err)
		return nil, nil
	}
	return &d, nil
}

// Apply asks the upstream API to validate the code and stores the result
// under discount-{userId}. Any upstream failure collapses to ErrInvalidCode.
func (s *DiscountService) Apply(ctx context.Context, userID, token, code string) (*entity.AppliedDiscount, error) {
	d, err := s.API.ApplyDiscount(ctx, token, code)
	if err != nil {
		log.Printf("discount apply rejected for %s: %v", userID, err)
		return nil, ErrInvalidCode
	}

	b, err := json.Marshal(d)
	if err == nil {
		err = s.Store.Put(ctx, discountKey(userID), string(b))
	}
	if err != nil {
		log.Printf("discount persist failed for %s: %v", userID, err)
	}
	return d, nil
}

// Remove clears the applied discount. Removing twice is a no-op.
func (s *DiscountService) Remove(ctx context.Context, userID string) error {
	if err := s.Store.Delete(ctx, discountKey(userID)); err != nil {
		log.Printf("discount remove failed for %s: %v", userID, err)
	}
	return nil
}
