package services

import (
	"context"
	"math"
	"time"

	"carbontrack/internal/carbon"
	apperrors "carbontrack/internal/errors"
	"carbontrack/internal/logger"
	"carbontrack/internal/metrics"
	"carbontrack/internal/models"
	"carbontrack/internal/repositories"
)

// EmissionConfig holds the accounting settings of the emission service.
type EmissionConfig struct {
	GoalKg               float64
	RecordRegistryFactor bool
	PersistenceTimeout   time.Duration
}

// emissionService runs the validate, compute, mutate, persist, derive
// pipeline for one request.
type emissionService struct {
	repo    repositories.EmissionRepository
	guests  *GuestLedgers
	audit   AuditServicer
	metrics metrics.Recorder
	cfg     EmissionConfig
	now     func() time.Time
}

// NewEmissionService creates a new EmissionServicer.
func NewEmissionService(
	repo repositories.EmissionRepository,
	guests *GuestLedgers,
	audit AuditServicer,
	recorder metrics.Recorder,
	cfg EmissionConfig,
) EmissionServicer {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &emissionService{
		repo:    repo,
		guests:  guests,
		audit:   audit,
		metrics: recorder,
		cfg:     cfg,
		now:     time.Now,
	}
}

func (s *emissionService) ledgerOptions() []carbon.LedgerOption {
	return []carbon.LedgerOption{carbon.WithRegistryFactor(s.cfg.RecordRegistryFactor)}
}

func (s *emissionService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.PersistenceTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.cfg.PersistenceTimeout)
}

func (s *emissionService) persistenceFailed(operation, userID string, err error) error {
	s.metrics.RecordPersistenceFailure(operation)
	logger.Get().Errorw("emission persistence failed",
		"operation", operation,
		"user_id", userID,
		"error", err,
	)
	return apperrors.Wrap(apperrors.ErrPersistenceFailed, err)
}

// loadLedger returns the session's current ledger. Users without stored
// records get the default ledger, which is seeded on first load.
func (s *emissionService) loadLedger(ctx context.Context, session Session) (*carbon.Ledger, error) {
	if !session.Authenticated() {
		if session.GuestID == "" {
			return nil, apperrors.ErrUnauthorized
		}
		return s.guests.Load(session.GuestID), nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.repo.LoadRecords(ctx, session.UserID)
	if err != nil {
		return nil, s.persistenceFailed("load", session.UserID, err)
	}
	if len(rows) > 0 {
		return carbon.NewLedger(models.ToCarbonRecords(rows), s.ledgerOptions()...), nil
	}

	ledger := carbon.NewDefaultLedger(s.ledgerOptions()...)
	records := ledger.Records()
	seed := make([]models.EmissionRecord, len(records))
	for i, r := range records {
		seed[i] = models.NewEmissionRecord(session.UserID, i, r)
	}
	if err := s.repo.SeedRecords(ctx, seed); err != nil {
		return nil, s.persistenceFailed("seed", session.UserID, err)
	}
	return ledger, nil
}

func (s *emissionService) snapshot(l *carbon.Ledger) carbon.Snapshot {
	return carbon.TakeSnapshot(l, s.cfg.GoalKg, s.now())
}

// Snapshot returns the current dashboard view for the session.
func (s *emissionService) Snapshot(ctx context.Context, session Session) (*carbon.Snapshot, error) {
	ledger, err := s.loadLedger(ctx, session)
	if err != nil {
		return nil, err
	}
	snap := s.snapshot(ledger)
	return &snap, nil
}

// Submit converts amount into emissions and adds them to category. Nothing
// is changed when validation or persistence fails.
func (s *emissionService) Submit(ctx context.Context, session Session, category string, amount float64) (*SubmitResult, error) {
	if !isFinite(amount) || amount <= 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if !carbon.IsKnown(category) {
		return nil, apperrors.ErrUnknownCategory
	}

	current, err := s.loadLedger(ctx, session)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	record, added := next.Upsert(category, amount)
	if !isFinite(added) || !isFinite(record.Emissions) || !isFinite(next.Total()) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "Amount is too large")
	}

	if session.Authenticated() {
		row := models.NewEmissionRecord(session.UserID, next.Position(category), record)
		pctx, cancel := s.withTimeout(ctx)
		err := s.repo.UpsertRecord(pctx, &row)
		cancel()
		if err != nil {
			return nil, s.persistenceFailed("upsert", session.UserID, err)
		}
		s.audit.Log(session.UserID, AuditCalculateEmission, "emission_record", category, session.IPAddress, map[string]interface{}{
			"amount":    amount,
			"added_kg":  added,
			"emissions": record.Emissions,
		})
	} else {
		s.guests.Store(session.GuestID, next)
	}

	s.metrics.RecordCalculation(category, added)

	return &SubmitResult{
		AddedKg:  added,
		Record:   record,
		Snapshot: s.snapshot(next),
	}, nil
}

// Reset zeroes every category of the session's ledger.
func (s *emissionService) Reset(ctx context.Context, session Session) (*carbon.Snapshot, error) {
	current, err := s.loadLedger(ctx, session)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	next.Reset()

	if session.Authenticated() {
		pctx, cancel := s.withTimeout(ctx)
		err := s.repo.ResetAll(pctx, session.UserID)
		cancel()
		if err != nil {
			return nil, s.persistenceFailed("reset", session.UserID, err)
		}
		s.audit.Log(session.UserID, AuditResetEmissions, "emission_record", "", session.IPAddress, map[string]interface{}{
			"previous_total": current.Total(),
		})
	} else {
		s.guests.Store(session.GuestID, next)
	}

	s.metrics.RecordReset()

	snap := s.snapshot(next)
	return &snap, nil
}

// Recommendations returns the advice for the session's current ledger.
func (s *emissionService) Recommendations(ctx context.Context, session Session) ([]carbon.Advice, error) {
	ledger, err := s.loadLedger(ctx, session)
	if err != nil {
		return nil, err
	}
	return carbon.Recommend(ledger.Records()), nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
