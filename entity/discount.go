package entity

// AppliedDiscount mirrors the upstream discount-code response. It exists only
// in the per-user state store; validity beyond "upstream accepted it" is not
// tracked here.
type AppliedDiscount struct {
	ID    string  `json:"_id"`
	Code  string  `json:"code"`
	Value float64 `json:"value"` // flat value off the gross payable
}
