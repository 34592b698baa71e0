package entity

// CartItem is one not-yet-submitted order line. The cart lives in the
// per-user state store, not in the upstream API; nothing exists server-side
// until checkout.
type CartItem struct {
	ItemID       string   `json:"itemId"`
	ItemName     string   `json:"itemName"`
	RestaurantID string   `json:"restaurantId"`
	ShiftID      string   `json:"shiftId"`
	Shift        string   `json:"shift"`        // day | night | general
	DeliveryDate int64    `json:"deliveryDate"` // unix millis, midnight of the delivery day
	Quantity     int      `json:"quantity"`
	UnitPrice    float64  `json:"unitPrice"`
	AddonPrice   float64  `json:"addonPrice"` // total addon price for the line
	Addons       []string `json:"addons,omitempty"`
	ExpiresAt    int64    `json:"expiresAt"` // unix millis; stale lines are dropped on restore
}

// SameIdentity reports whether two lines refer to the same orderable thing:
// same menu item, delivery date, shift and restaurant. Quantity and price are
// not part of identity.
func (ci CartItem) SameIdentity(other CartItem) bool {
	return ci.ItemID == other.ItemID &&
		ci.DeliveryDate == other.DeliveryDate &&
		ci.ShiftID == other.ShiftID &&
		ci.RestaurantID == other.RestaurantID
}

// LineTotal is unitPrice*qty plus the addon total for the line.
func (ci CartItem) LineTotal() float64 {
	return ci.UnitPrice*float64(ci.Quantity) + ci.AddonPrice
}
