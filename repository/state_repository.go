package repository

import (
	"context"
	"errors"

	"github.com/iamaamins/sporkbox-client-sub001/entity"
	"gorm.io/gorm"
)

// StateStore holds the serialized per-user client state (cart-{userId},
// discount-{userId}). Reads of a missing key return "" without error so a
// fresh user simply starts with an empty cart.
type StateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type StateRepository struct{ DB *gorm.DB }

func NewStateRepository(db *gorm.DB) *StateRepository { return &StateRepository{DB: db} }

func (r *StateRepository) Get(ctx context.Context, key string) (string, error) {
	var rec entity.StateRecord
	err := r.DB.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return rec.Value, nil
}

func (r *StateRepository) Put(ctx context.Context, key, value string) error {
	var rec entity.StateRecord
	err := r.DB.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if err == nil {
		rec.Value = value
		return r.DB.WithContext(ctx).Save(&rec).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	rec = entity.StateRecord{Key: key, Value: value}
	return r.DB.WithContext(ctx).Create(&rec).Error
}

func (r *StateRepository) Delete(ctx context.Context, key string) error {
	// hard delete: a soft-deleted row would keep the unique key occupied
	return r.DB.WithContext(ctx).Unscoped().Where("key = ?", key).Delete(&entity.StateRecord{}).Error
}
