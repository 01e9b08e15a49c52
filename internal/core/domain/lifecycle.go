package domain

import "time"

// Classification is the outcome of evaluating a plate's parking status on a
// street at a single instant.
type Classification string

const (
	// ClassValidHere: an active record exists on the queried street.
	ClassValidHere Classification = "valid_here"
	// ClassValidElsewhere: an active record exists on a different street.
	// The caller must reassign the record to the queried street.
	ClassValidElsewhere Classification = "valid_elsewhere"
	// ClassPendingGrace: the latest record is pending and the grace window
	// is still open. Citation denied.
	ClassPendingGrace Classification = "pending_grace"
	// ClassGraceExpired: the latest record is pending and the grace window
	// has closed. Citation authorized.
	ClassGraceExpired Classification = "grace_expired"
	// ClassFirstObservation: no active record and no open pending record.
	// The caller must open a new pending record.
	ClassFirstObservation Classification = "first_observation"
)

// DefaultGracePeriod is the window the owner has to register a spot after a
// pending record is opened.
const DefaultGracePeriod = 15 * time.Minute

// Evaluation is the result of a lifecycle decision.
type Evaluation struct {
	Classification Classification
	// Record is the record the decision was based on. Nil for
	// ClassFirstObservation, where no relevant record exists yet.
	Record *ParkingRecord
	// GraceDeadline is the instant the grace window closes. Set for
	// ClassPendingGrace and ClassGraceExpired.
	GraceDeadline time.Time
}

// CitationAuthorized reports whether an inspector may issue a citation for
// this outcome. Only an expired grace window authorizes one.
func (e Evaluation) CitationAuthorized() bool {
	return e.Classification == ClassGraceExpired
}

// EvaluateLifecycle classifies a plate's status on streetID at instant now.
//
// active is the plate's currently active record, if any; latest is the most
// recent record regardless of validity, consulted only when active is nil.
// Precedence is strict: active-here, active-elsewhere, pending-in-grace,
// pending-expired, first-observation. An active record always wins over any
// pending state. The grace window holds at exactly entryTime+grace and
// expires strictly after it.
//
// The function is pure: now must be sampled exactly once per request so a
// single decision cannot straddle the grace boundary.
func EvaluateLifecycle(active, latest *ParkingRecord, streetID int64, now time.Time, grace time.Duration) Evaluation {
	if active != nil {
		if active.StreetID == streetID {
			return Evaluation{Classification: ClassValidHere, Record: active}
		}
		return Evaluation{Classification: ClassValidElsewhere, Record: active}
	}

	if latest != nil && latest.State == StatePending {
		deadline := latest.EntryTime.Add(grace)
		if now.After(deadline) {
			return Evaluation{Classification: ClassGraceExpired, Record: latest, GraceDeadline: deadline}
		}
		return Evaluation{Classification: ClassPendingGrace, Record: latest, GraceDeadline: deadline}
	}

	return Evaluation{Classification: ClassFirstObservation}
}
