package ports

import (
	"context"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
)

// InspectorRepository defines the interface for inspector persistence.
type InspectorRepository interface {
	FindByCPF(ctx context.Context, cpf string) (*domain.Inspector, error)
	FindByEmail(ctx context.Context, email string) (*domain.Inspector, error)
	Create(ctx context.Context, inspector *domain.Inspector) (*domain.Inspector, error)
}
