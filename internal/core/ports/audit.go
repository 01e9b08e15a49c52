package ports

import (
	"context"
	"time"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
)

// AuditEvent records one enforcement decision for the append-only audit log.
type AuditEvent struct {
	InspectorCPF   string
	Plate          string
	StreetID       int64
	RecordID       int64 // 0 when the decision produced no record
	Classification domain.Classification
	OccurredAt     time.Time
}

// AuditTrail persists enforcement decisions. Writes are best-effort and must
// never influence the inspector-facing decision.
type AuditTrail interface {
	Record(ctx context.Context, event AuditEvent) error
}
