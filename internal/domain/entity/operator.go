package entity

import "github.com/google/uuid"

// Operator is a cashier allowed to drive the terminal.
type Operator struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	PINHash string    `json:"-"`
	Roles   []string  `json:"roles"`
}

// HasRole reports whether the operator holds role.
func (o *Operator) HasRole(role string) bool {
	for _, r := range o.Roles {
		if r == role {
			return true
		}
	}
	return false
}
