package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrInspectorNotFound = errors.New("inspector not found")
	ErrInspectorExists   = errors.New("inspector already exists")

	ErrStreetNotFound = errors.New("street not found")
	ErrStreetExists   = errors.New("street already exists")

	ErrRecordNotFound = errors.New("parking record not found")
	ErrNoActiveSpots  = errors.New("no active spots on street")

	// ErrDuplicatePending is returned when opening a pending record loses a
	// race against another open pending record for the same plate.
	ErrDuplicatePending = errors.New("pending record already open for plate")

	// ErrConstraint marks a ledger write rejected by a referential or
	// uniqueness rule. Indicates a data-integrity bug; never retried.
	ErrConstraint = errors.New("ledger constraint violated")

	// ErrLedgerUnavailable marks a timeout or connection failure against the
	// ledger backend. The coordinator may retry once with a fresh transaction.
	ErrLedgerUnavailable = errors.New("ledger unavailable")
)
