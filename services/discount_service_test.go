package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
	"github.com/iamaamins/sporkbox-client-sub001/pkg/upstream"
)

func TestApplyStoresAcceptedCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/discount-code/apply/SPRING20", r.URL.Path)
		json.NewEncoder(w).Encode(entity.AppliedDiscount{ID: "d1", Code: "SPRING20", Value: 20})
	}))
	defer srv.Close()

	s := NewDiscountService(newMemStore(), upstream.NewClient(srv.URL))
	d, err := s.Apply(context.Background(), "u1", "tok", "SPRING20")

	require.NoError(t, err)
	assert.Equal(t, 20.0, d.Value)

	stored, err := s.Applied(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "d1", stored.ID)
}

func TestApplyCollapsesRejectionsToGenericError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "code expired on 2024-01-01 for tenant 42", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s := NewDiscountService(newMemStore(), upstream.NewClient(srv.URL))
	_, err := s.Apply(context.Background(), "u1", "tok", "OLD")

	// the upstream reason must not leak to the caller
	assert.ErrorIs(t, err, ErrInvalidCode)
	assert.Equal(t, "invalid discount code", err.Error())

	stored, _ := s.Applied(context.Background(), "u1")
	assert.Nil(t, stored)
}

func TestRemoveIsIdempotentForDiscounts(t *testing.T) {
	s := NewDiscountService(newMemStore(), upstream.NewClient("http://unused"))

	assert.NoError(t, s.Remove(context.Background(), "u1"))
	assert.NoError(t, s.Remove(context.Background(), "u1"))
}
