package entity

// Role tags a session. One polymorphic session type replaces the per-role
// user providers the old web client duplicated.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
	RoleVendor   Role = "VENDOR"
	RoleDriver   Role = "DRIVER"
)

// Session is the authenticated caller. Companies is populated for customers
// only; vendors carry their restaurant id instead.
type Session struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         Role      `json:"role"`
	Companies    []Company `json:"companies,omitempty"`
	RestaurantID string    `json:"restaurantId,omitempty"`
}

// ActiveCompany returns the customer's active membership, or false when the
// user is between shifts. Budget math is skipped in that case and checkout
// validation is left entirely to the upstream API.
func (s *Session) ActiveCompany() (Company, bool) {
	for _, c := range s.Companies {
		if c.Active() {
			return c, true
		}
	}
	return Company{}, false
}
