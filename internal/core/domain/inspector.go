package domain

import "time"

const (
	RoleAdmin     = "admin"
	RoleInspector = "inspector"
)

// Inspector is the identity performing inspections. Read-only from the
// enforcement core's point of view.
type Inspector struct {
	CPF          string    `json:"cpf"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	State        string    `json:"state,omitempty"`
	City         string    `json:"city,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
