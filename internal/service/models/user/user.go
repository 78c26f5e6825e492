package user

import "errors"

// Role distinguishes vendors (who place orders) from partners (who set
// procurement prices and fulfil deliveries).
type Role string

const (
	RoleVendor  Role = "vendor"
	RolePartner Role = "partner"
)

var ErrUnknownRole = errors.New("unknown user role")

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleVendor, RolePartner:
		return Role(s), nil
	default:
		return "", ErrUnknownRole
	}
}

// User represents an account. Token issuance is handled by an external
// auth service; this service only reads identity from verified claims.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
}
