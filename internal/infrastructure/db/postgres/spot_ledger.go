package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. The ledger runs over the pool for plain reads and over a
// transaction inside an evaluation scope.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Every ledger call carries its own timeout so no operation blocks
// indefinitely against the backend.
const defaultTimeout = 5 * time.Second

const recordColumns = "id, plate, street_id, state, entry_time, exit_time"

// SpotLedger is the Postgres implementation of ports.SpotLedger.
type SpotLedger struct {
	db db
}

func NewSpotLedger(db db) *SpotLedger {
	return &SpotLedger{db: db}
}

func (l *SpotLedger) FindActiveByStreet(ctx context.Context, streetID int64, now time.Time) ([]domain.ParkingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const q = `
		SELECT ` + recordColumns + `
		FROM parking_records
		WHERE street_id = @street_id AND state = 'paid' AND exit_time > @now
		ORDER BY entry_time`

	rows, err := l.db.Query(ctx, q, pgx.NamedArgs{"street_id": streetID, "now": now})
	if err != nil {
		return nil, mapTransient(fmt.Errorf("ledger: find active by street: %w", err))
	}
	defer rows.Close()

	var records []domain.ParkingRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("ledger: find active by street: scan: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, mapTransient(fmt.Errorf("ledger: find active by street: %w", err))
	}
	return records, nil
}

func (l *SpotLedger) FindActiveByPlate(ctx context.Context, plate string, now time.Time) (*domain.ParkingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const q = `
		SELECT ` + recordColumns + `
		FROM parking_records
		WHERE plate = @plate AND state = 'paid' AND exit_time > @now
		LIMIT 1`

	rec, err := scanRecord(l.db.QueryRow(ctx, q, pgx.NamedArgs{"plate": plate, "now": now}))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapTransient(fmt.Errorf("ledger: find active by plate: %w", err))
	}
	return rec, nil
}

func (l *SpotLedger) FindLatestByPlate(ctx context.Context, plate string) (*domain.ParkingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Open pending records sort first (NULL exit time), then the most
	// recently valid paid record; id breaks remaining ties.
	const q = `
		SELECT ` + recordColumns + `
		FROM parking_records
		WHERE plate = @plate
		ORDER BY exit_time DESC NULLS FIRST, id DESC
		LIMIT 1`

	rec, err := scanRecord(l.db.QueryRow(ctx, q, pgx.NamedArgs{"plate": plate}))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapTransient(fmt.Errorf("ledger: find latest by plate: %w", err))
	}
	return rec, nil
}

func (l *SpotLedger) Create(ctx context.Context, rec domain.ParkingRecord) (*domain.ParkingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const q = `
		INSERT INTO parking_records (plate, street_id, state, entry_time, exit_time)
		VALUES (@plate, @street_id, @state, @entry_time, @exit_time)
		RETURNING ` + recordColumns

	args := pgx.NamedArgs{
		"plate":      rec.Plate,
		"street_id":  rec.StreetID,
		"state":      string(rec.State),
		"entry_time": rec.EntryTime,
		"exit_time":  rec.ExitTime, // nil becomes NULL
	}

	created, err := scanRecord(l.db.QueryRow(ctx, q, args))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicatePending
		}
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: street %d does not exist", domain.ErrConstraint, rec.StreetID)
		}
		return nil, mapTransient(fmt.Errorf("ledger: create record: %w", err))
	}
	return created, nil
}

func (l *SpotLedger) ReassignStreet(ctx context.Context, recordID, newStreetID int64) (*domain.ParkingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// The state predicate re-validates the record immediately before the
	// write: a record that expired or was closed concurrently is not moved.
	const q = `
		UPDATE parking_records
		SET street_id = @street_id
		WHERE id = @id AND state = 'paid'
		RETURNING ` + recordColumns

	rec, err := scanRecord(l.db.QueryRow(ctx, q, pgx.NamedArgs{"id": recordID, "street_id": newStreetID}))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: street %d does not exist", domain.ErrConstraint, newStreetID)
		}
		return nil, mapTransient(fmt.Errorf("ledger: reassign street: %w", err))
	}
	return rec, nil
}

func scanRecord(row pgx.Row) (*domain.ParkingRecord, error) {
	var rec domain.ParkingRecord
	var state string
	if err := row.Scan(&rec.ID, &rec.Plate, &rec.StreetID, &state, &rec.EntryTime, &rec.ExitTime); err != nil {
		return nil, err
	}
	rec.State = domain.RecordState(state)
	return &rec, nil
}
