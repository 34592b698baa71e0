package entity

// Company is the customer's active company membership as reported by the
// upstream /me payload. ShiftBudget is the per-shift daily allowance employee
// orders draw from before anything becomes payable out-of-pocket.
type Company struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Shift       string  `json:"shift"` // day | night | general
	ShiftBudget float64 `json:"shiftBudget"`
	Status      string  `json:"status"` // ACTIVE | ARCHIVED
}

// Active reports whether this membership currently grants an allowance.
func (c Company) Active() bool { return c.Status == "ACTIVE" }
