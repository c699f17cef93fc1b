// internal/domain/customer/entity.go
package customer

import "time"

// Customer is an identity-linked profile enabling self-service viewing of
// quotes and jobs. A row exists only when the user explicitly opted in to
// registration; quote submission alone never creates one.
type Customer struct {
	ID      string  `json:"id" db:"id"`
	Email   string  `json:"email" db:"email"`
	Name    string  `json:"name" db:"name"`
	Phone   *string `json:"phone,omitempty" db:"phone"`
	Company *string `json:"company,omitempty" db:"company"`
	Address *string `json:"address,omitempty" db:"address"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
