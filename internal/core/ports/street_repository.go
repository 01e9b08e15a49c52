package ports

import (
	"context"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
)

// StreetRepository handles persistence of enforcement zones.
type StreetRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Street, error)
	Create(ctx context.Context, name string) (*domain.Street, error)
	List(ctx context.Context) ([]domain.Street, error)
}
