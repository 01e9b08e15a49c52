package ports

import (
	"context"
	"time"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
)

// SpotLedger is the authoritative store of parking records. All mutations go
// through the enforcement coordinator; expiry is derived on read, never swept.
type SpotLedger interface {
	// FindActiveByStreet returns all records active on streetID at now,
	// ordered by entry time. Empty slice when none.
	FindActiveByStreet(ctx context.Context, streetID int64, now time.Time) ([]domain.ParkingRecord, error)

	// FindActiveByPlate returns the plate's active record at now, or nil
	// when none. At most one active record exists per plate.
	FindActiveByPlate(ctx context.Context, plate string, now time.Time) (*domain.ParkingRecord, error)

	// FindLatestByPlate returns the plate's most recent record regardless of
	// validity (exit time descending, open pending records first, then id
	// descending), or nil when the plate has never been seen.
	FindLatestByPlate(ctx context.Context, plate string) (*domain.ParkingRecord, error)

	// Create inserts a new record and returns it with its assigned id.
	// Returns domain.ErrDuplicatePending when an open pending record already
	// exists for the plate, domain.ErrConstraint when the street does not exist.
	Create(ctx context.Context, rec domain.ParkingRecord) (*domain.ParkingRecord, error)

	// ReassignStreet moves an existing active record to a new street.
	// Returns domain.ErrRecordNotFound when the record no longer exists or
	// is no longer in the paid state.
	ReassignStreet(ctx context.Context, recordID, newStreetID int64) (*domain.ParkingRecord, error)
}

// LedgerTxRunner executes fn against a SpotLedger bound to a single database
// transaction. The read-classify-write sequence of an evaluation runs inside
// one such scope so a concurrent writer cannot invalidate the decision basis.
type LedgerTxRunner interface {
	InTx(ctx context.Context, fn func(SpotLedger) error) error
}
