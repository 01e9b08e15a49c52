package ports

import (
	"context"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
)

// RegisterInput carries the fields needed to register an inspector.
type RegisterInput struct {
	CPF      string
	Email    string
	Password string
	Role     string // defaults to inspector when empty
	State    string
	City     string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Inspector, error)
	Login(ctx context.Context, email, password string) (string, *domain.Inspector, error)
}
