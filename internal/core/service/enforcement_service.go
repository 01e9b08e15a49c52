package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zonaazul/enforcement-system/internal/core/domain"
	"github.com/zonaazul/enforcement-system/internal/core/ports"
)

// StreetCache abstracts the street-name lookup cache (Redis). Streets are
// immutable once created, so cached entries never go stale. Cache failures
// degrade to repository lookups.
type StreetCache interface {
	Get(ctx context.Context, name string) (int64, bool, error)
	Set(ctx context.Context, name string, id int64) error
}

// AuditSink accepts enforcement decisions for asynchronous persistence.
type AuditSink interface {
	Enqueue(event ports.AuditEvent)
}

type enforcementService struct {
	ledger     ports.SpotLedger
	tx         ports.LedgerTxRunner
	streets    ports.StreetRepository
	inspectors ports.InspectorRepository
	cache      StreetCache
	audit      AuditSink
	clock      domain.Clock
	grace      time.Duration
	log        zerolog.Logger
}

// NewEnforcementService returns an EnforcementService implementation.
// grace <= 0 falls back to domain.DefaultGracePeriod.
func NewEnforcementService(
	ledger ports.SpotLedger,
	tx ports.LedgerTxRunner,
	streets ports.StreetRepository,
	inspectors ports.InspectorRepository,
	cache StreetCache,
	audit AuditSink,
	clock domain.Clock,
	grace time.Duration,
	log zerolog.Logger,
) ports.EnforcementService {
	if grace <= 0 {
		grace = domain.DefaultGracePeriod
	}
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &enforcementService{
		ledger:     ledger,
		tx:         tx,
		streets:    streets,
		inspectors: inspectors,
		cache:      cache,
		audit:      audit,
		clock:      clock,
		grace:      grace,
		log:        log,
	}
}

// ListActiveOnStreet returns the active spots on the named street.
func (s *enforcementService) ListActiveOnStreet(ctx context.Context, in ports.ListActiveInput) ([]ports.SpotView, error) {
	if in.InspectorCPF == "" || in.StreetName == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.inspectors.FindByCPF(ctx, in.InspectorCPF); err != nil {
		return nil, err
	}

	street, err := s.resolveStreet(ctx, in.StreetName)
	if err != nil {
		return nil, err
	}

	records, err := s.ledger.FindActiveByStreet(ctx, street.ID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("list active spots: %w", err)
	}
	if len(records) == 0 {
		return nil, domain.ErrNoActiveSpots
	}

	views := make([]ports.SpotView, len(records))
	for i, r := range records {
		views[i] = ports.SpotView{
			ID:        r.ID,
			Plate:     r.Plate,
			EntryTime: r.EntryTime,
			ExitTime:  r.ExitTime,
		}
	}
	return views, nil
}

// Evaluate runs one inspection decision end-to-end: resolve the street,
// classify the plate inside a single ledger transaction, apply the one
// mutation the classification implies, and report the outcome.
func (s *enforcementService) Evaluate(ctx context.Context, in ports.EvaluateInput) (*ports.EvaluateResult, error) {
	if in.InspectorCPF == "" || in.Plate == "" || in.StreetName == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.inspectors.FindByCPF(ctx, in.InspectorCPF); err != nil {
		return nil, err
	}

	street, err := s.resolveStreet(ctx, in.StreetName)
	if err != nil {
		return nil, err
	}

	// Sampled exactly once so the decision cannot straddle the grace boundary.
	now := s.clock.Now()

	result, err := s.evaluateTx(ctx, in.Plate, street.ID, now)
	if errors.Is(err, domain.ErrLedgerUnavailable) {
		// One retry with a fresh transaction; the classification is
		// recomputed from scratch against the current ledger state.
		s.log.Warn().
			Str("plate", in.Plate).
			Str("street", street.Name).
			Msg("ledger unavailable, retrying evaluation")
		result, err = s.evaluateTx(ctx, in.Plate, street.ID, now)
	}
	if err != nil {
		return nil, err
	}

	event := ports.AuditEvent{
		InspectorCPF:   in.InspectorCPF,
		Plate:          in.Plate,
		StreetID:       street.ID,
		Classification: result.Classification,
		OccurredAt:     now,
	}
	if result.Record != nil {
		event.RecordID = result.Record.ID
	}
	s.audit.Enqueue(event)

	s.log.Info().
		Str("plate", in.Plate).
		Str("street", street.Name).
		Str("classification", string(result.Classification)).
		Bool("citation_authorized", result.CitationAuthorized).
		Msg("inspection evaluated")

	return result, nil
}

// evaluateTx performs the read-classify-write sequence inside one transaction.
func (s *enforcementService) evaluateTx(ctx context.Context, plate string, streetID int64, now time.Time) (*ports.EvaluateResult, error) {
	var result *ports.EvaluateResult
	err := s.tx.InTx(ctx, func(led ports.SpotLedger) error {
		active, err := led.FindActiveByPlate(ctx, plate, now)
		if err != nil {
			return fmt.Errorf("evaluate: %w", err)
		}

		var latest *domain.ParkingRecord
		if active == nil {
			latest, err = led.FindLatestByPlate(ctx, plate)
			if err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}
		}

		eval := domain.EvaluateLifecycle(active, latest, streetID, now, s.grace)

		record := eval.Record
		deadline := eval.GraceDeadline
		switch eval.Classification {
		case domain.ClassValidElsewhere:
			// Move the record rather than creating a duplicate. Fails with
			// ErrRecordNotFound if a concurrent writer already closed it.
			record, err = led.ReassignStreet(ctx, eval.Record.ID, streetID)
			if err != nil {
				return fmt.Errorf("evaluate: reassign street: %w", err)
			}
		case domain.ClassFirstObservation:
			record, err = led.Create(ctx, domain.ParkingRecord{
				Plate:     plate,
				StreetID:  streetID,
				State:     domain.StatePending,
				EntryTime: now,
			})
			if err != nil {
				return fmt.Errorf("evaluate: open pending record: %w", err)
			}
			deadline = now.Add(s.grace)
		}

		result = &ports.EvaluateResult{
			Classification:     eval.Classification,
			Record:             record,
			GraceDeadline:      deadline,
			CitationAuthorized: eval.CitationAuthorized(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveStreet looks up a street by name, trying the cache first.
func (s *enforcementService) resolveStreet(ctx context.Context, name string) (*domain.Street, error) {
	if id, ok, err := s.cache.Get(ctx, name); err != nil {
		s.log.Warn().Err(err).Str("street", name).Msg("street cache read failed, falling back to repository")
	} else if ok {
		return &domain.Street{ID: id, Name: name}, nil
	}

	street, err := s.streets.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, name, street.ID); err != nil {
		s.log.Warn().Err(err).Str("street", name).Msg("failed to cache street id")
	}
	return street, nil
}
