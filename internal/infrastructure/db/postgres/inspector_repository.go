package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
)

const inspectorColumns = "cpf, email, password_hash, role, state, city, created_at"

// InspectorRepository is the Postgres implementation of ports.InspectorRepository.
type InspectorRepository struct {
	db db
}

func NewInspectorRepository(db db) *InspectorRepository {
	return &InspectorRepository{db: db}
}

func (r *InspectorRepository) Create(ctx context.Context, inspector *domain.Inspector) (*domain.Inspector, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const q = `
		INSERT INTO inspectors (cpf, email, password_hash, role, state, city, created_at)
		VALUES (@cpf, @email, @password_hash, @role, @state, @city, @created_at)
		RETURNING ` + inspectorColumns

	args := pgx.NamedArgs{
		"cpf":           inspector.CPF,
		"email":         inspector.Email,
		"password_hash": inspector.PasswordHash,
		"role":          inspector.Role,
		"state":         inspector.State,
		"city":          inspector.City,
		"created_at":    inspector.CreatedAt,
	}

	created, err := scanInspector(r.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrInspectorExists
		}
		return nil, mapTransient(fmt.Errorf("insert inspector: %w", err))
	}
	return created, nil
}

func (r *InspectorRepository) FindByCPF(ctx context.Context, cpf string) (*domain.Inspector, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const q = `SELECT ` + inspectorColumns + ` FROM inspectors WHERE cpf = @cpf`

	inspector, err := scanInspector(r.db.QueryRow(ctx, q, pgx.NamedArgs{"cpf": cpf}))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInspectorNotFound
	}
	if err != nil {
		return nil, mapTransient(fmt.Errorf("find inspector: %w", err))
	}
	return inspector, nil
}

func (r *InspectorRepository) FindByEmail(ctx context.Context, email string) (*domain.Inspector, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const q = `SELECT ` + inspectorColumns + ` FROM inspectors WHERE email = @email`

	inspector, err := scanInspector(r.db.QueryRow(ctx, q, pgx.NamedArgs{"email": email}))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInspectorNotFound
	}
	if err != nil {
		return nil, mapTransient(fmt.Errorf("find inspector: %w", err))
	}
	return inspector, nil
}

func scanInspector(row pgx.Row) (*domain.Inspector, error) {
	var i domain.Inspector
	if err := row.Scan(&i.CPF, &i.Email, &i.PasswordHash, &i.Role, &i.State, &i.City, &i.CreatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}
