package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

type streetService struct {
	repo ports.StreetRepository
	log  zerolog.Logger
}

// NewStreetService returns a StreetService implementation.
func NewStreetService(repo ports.StreetRepository, log zerolog.Logger) ports.StreetService {
	return &streetService{repo: repo, log: log}
}

func (s *streetService) Create(ctx context.Context, name string) (*domain.Street, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	street, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create street: %w", err)
	}

	s.log.Info().Int64("street_id", street.ID).Str("name", street.Name).Msg("street created")
	return street, nil
}

func (s *streetService) List(ctx context.Context) ([]domain.Street, error) {
	streets, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list streets: %w", err)
	}
	return streets, nil
}
