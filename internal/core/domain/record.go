package domain

import "time"

// RecordState is the explicit lifecycle state stored on a parking record.
type RecordState string

const (
	// StatePaid marks a record registered by the vehicle owner with a paid
	// validity window (exit time always set).
	StatePaid RecordState = "paid"
	// StatePending marks a record opened by an inspection when no active
	// record existed. It has no exit time and starts the grace countdown.
	StatePending RecordState = "pending"
)

// ParkingRecord is one occupancy observation for a plate.
type ParkingRecord struct {
	ID        int64       `json:"id"`
	Plate     string      `json:"plate"`
	StreetID  int64       `json:"street_id"`
	State     RecordState `json:"state"`
	EntryTime time.Time   `json:"entry_time"`
	// ExitTime is the paid-until instant. Set if and only if State is paid.
	ExitTime *time.Time `json:"exit_time,omitempty"`
}

// ActiveAt reports whether the record grants valid parking at the given
// instant. Pending records are never active.
func (r *ParkingRecord) ActiveAt(now time.Time) bool {
	return r.State == StatePaid && r.ExitTime != nil && r.ExitTime.After(now)
}

// Street is a named enforcement zone. Immutable once created.
type Street struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
