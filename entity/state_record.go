package entity

import "gorm.io/gorm"

// StateRecord is one row of the local key-value state store. Keys are
// namespaced per user (cart-{userId}, discount-{userId}) and the value is the
// serialized JSON the old web client kept in browser local storage.
type StateRecord struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;size:128"`
	Value string
}
