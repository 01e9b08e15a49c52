package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

// AuditTrail appends enforcement decisions to the enforcement_events table.
type AuditTrail struct {
	db db
}

func NewAuditTrail(db db) *AuditTrail {
	return &AuditTrail{db: db}
}

func (t *AuditTrail) Record(ctx context.Context, ev ports.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	const q = `
		INSERT INTO enforcement_events (inspector_cpf, plate, street_id, record_id, classification, occurred_at)
		VALUES (@inspector_cpf, @plate, @street_id, @record_id, @classification, @occurred_at)`

	var recordID *int64
	if ev.RecordID != 0 {
		recordID = &ev.RecordID
	}

	args := pgx.NamedArgs{
		"inspector_cpf":  ev.InspectorCPF,
		"plate":          ev.Plate,
		"street_id":      ev.StreetID,
		"record_id":      recordID,
		"classification": string(ev.Classification),
		"occurred_at":    ev.OccurredAt,
	}

	if _, err := t.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("record enforcement event: %w", err)
	}
	return nil
}
