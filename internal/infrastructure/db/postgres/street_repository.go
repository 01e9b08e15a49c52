package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
)

// StreetRepository is the Postgres implementation of ports.StreetRepository.
type StreetRepository struct {
	db db
}

func NewStreetRepository(db db) *StreetRepository {
	return &StreetRepository{db: db}
}

func (r *StreetRepository) FindByName(ctx context.Context, name string) (*domain.Street, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Street
	err := r.db.QueryRow(ctx, `SELECT id, name FROM streets WHERE name = @name`,
		pgx.NamedArgs{"name": name}).Scan(&s.ID, &s.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStreetNotFound
	}
	if err != nil {
		return nil, mapTransient(fmt.Errorf("find street: %w", err))
	}
	return &s, nil
}

func (r *StreetRepository) Create(ctx context.Context, name string) (*domain.Street, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Street
	err := r.db.QueryRow(ctx, `INSERT INTO streets (name) VALUES (@name) RETURNING id, name`,
		pgx.NamedArgs{"name": name}).Scan(&s.ID, &s.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrStreetExists
		}
		return nil, mapTransient(fmt.Errorf("insert street: %w", err))
	}
	return &s, nil
}

func (r *StreetRepository) List(ctx context.Context) ([]domain.Street, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, name FROM streets ORDER BY name`)
	if err != nil {
		return nil, mapTransient(fmt.Errorf("list streets: %w", err))
	}
	defer rows.Close()

	var streets []domain.Street
	for rows.Next() {
		var s domain.Street
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("list streets: scan: %w", err)
		}
		streets = append(streets, s)
	}
	return streets, rows.Err()
}
