package ports

import (
	"context"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
)

// StreetService defines the administrative operations on enforcement zones.
// Streets are immutable once created, so there is no update or delete.
type StreetService interface {
	Create(ctx context.Context, name string) (*domain.Street, error)
	List(ctx context.Context) ([]domain.Street, error)
}
