package entity

// UpcomingOrder is a read-only projection of an order already created
// upstream but not yet delivered. Only the delivery date and the money spent
// matter here; the budget calculator counts them against the shift allowance.
type UpcomingOrder struct {
	ID           string  `json:"_id"`
	Status       string  `json:"status"`
	Restaurant   string  `json:"restaurantName"`
	ItemName     string  `json:"itemName"`
	Shift        string  `json:"shift"`
	DeliveryDate int64   `json:"deliveryDate"` // unix millis
	Total        float64 `json:"totalAmount"`
}

// DeliveredOrder is the delivered counterpart, used only for history views.
type DeliveredOrder struct {
	ID           string  `json:"_id"`
	Restaurant   string  `json:"restaurantName"`
	ItemName     string  `json:"itemName"`
	Shift        string  `json:"shift"`
	DeliveryDate int64   `json:"deliveryDate"`
	DeliveredAt  int64   `json:"deliveredAt"`
	Total        float64 `json:"totalAmount"`
}
