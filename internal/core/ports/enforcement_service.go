package ports

import (
	"context"
	"time"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
)

// ListActiveInput carries the parameters for listing active spots on a street.
type ListActiveInput struct {
	InspectorCPF string
	StreetName   string
}

// SpotView is the inspector-facing projection of an active parking record.
type SpotView struct {
	ID        int64
	Plate     string
	EntryTime time.Time
	ExitTime  *time.Time
}

// EvaluateInput carries the parameters for one inspection decision.
type EvaluateInput struct {
	InspectorCPF string
	Plate        string
	StreetName   string
}

// EvaluateResult is the tagged outcome of one inspection. Record carries the
// possibly just-mutated record (reassigned street or freshly opened pending
// record); nil only when the classification produced no record to show.
type EvaluateResult struct {
	Classification     domain.Classification
	Record             *domain.ParkingRecord
	GraceDeadline      time.Time
	CitationAuthorized bool
}

// EnforcementService orchestrates inspection requests end-to-end.
type EnforcementService interface {
	ListActiveOnStreet(ctx context.Context, input ListActiveInput) ([]SpotView, error)
	Evaluate(ctx context.Context, input EvaluateInput) (*EvaluateResult, error)
}
