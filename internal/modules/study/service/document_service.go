package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"studybuddy/internal/modules/study/domain"
	studyout "studybuddy/internal/modules/study/port/out"
	"studybuddy/internal/platform/clock"
	apperrors "studybuddy/internal/platform/errors"
	"studybuddy/internal/platform/id"
)

// DocumentService owns the single in-memory Document. Every mutation is
// applied to a copy, written to the slot, and only then committed.
type DocumentService struct {
	mu    sync.Mutex
	clock clock.Clock
	idGen id.Generator
	slot  studyout.Slot
	loc   *time.Location
	log   *zap.SugaredLogger
	doc   domain.Document
}

func NewDocumentService(clock clock.Clock, idGen id.Generator, slot studyout.Slot, loc *time.Location, log *zap.SugaredLogger) *DocumentService {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &DocumentService{
		clock: clock,
		idGen: idGen,
		slot:  slot,
		loc:   loc,
		log:   log,
		doc:   domain.NewDocument(),
	}
}

// Load replaces the in-memory document with the slot contents. An empty slot
// or unparseable contents fall back to an empty document; only slot I/O
// failures are returned as errors.
func (s *DocumentService) Load(ctx context.Context) (domain.LoadStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.slot.Read(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrSlotEmpty) {
			s.doc = domain.NewDocument()
			s.log.Debugw("slot empty, starting fresh")
			return domain.LoadStatusFirstRun, nil
		}
		return "", err
	}
	doc, err := domain.DecodeStored(raw)
	if err != nil {
		s.doc = domain.NewDocument()
		s.log.Warnw("stored document unreadable, using defaults", "error", err)
		return domain.LoadStatusCorrupt, nil
	}
	s.doc = doc
	s.log.Debugw("document loaded", "plans", len(doc.Plans), "sessions", len(doc.Sessions), "streak", doc.Streak)
	return domain.LoadStatusLoaded, nil
}

func (s *DocumentService) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx, s.doc)
}

func (s *DocumentService) Snapshot() domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

func (s *DocumentService) Today() domain.Date {
	return domain.DateOf(s.clock.Now(), s.loc)
}

func (s *DocumentService) Location() *time.Location {
	return s.loc
}

func (s *DocumentService) CreatePlan(ctx context.Context, subject string, duration float64, difficulty domain.Difficulty) (domain.Plan, error) {
	plan := domain.Plan{
		ID:         s.idGen.New(),
		Subject:    subject,
		Duration:   duration,
		Difficulty: difficulty,
		CreatedAt:  s.clock.Now(),
	}
	var created domain.Plan
	err := s.mutate(ctx, func(doc *domain.Document) (bool, error) {
		if err := doc.AddPlan(plan); err != nil {
			return false, err
		}
		created = doc.Plans[len(doc.Plans)-1]
		return true, nil
	})
	if err != nil {
		return domain.Plan{}, err
	}
	s.log.Debugw("plan created", "id", created.ID, "subject", created.Subject)
	return created, nil
}

func (s *DocumentService) CompletePlan(ctx context.Context, planID string) (domain.Plan, bool, error) {
	now := s.clock.Now()
	var (
		plan  domain.Plan
		found bool
	)
	err := s.mutate(ctx, func(doc *domain.Document) (bool, error) {
		plan, found = doc.CompletePlan(planID, now)
		return found, nil
	})
	if err != nil {
		return domain.Plan{}, false, err
	}
	if !found {
		s.log.Debugw("complete plan: unknown id ignored", "id", planID)
	}
	return plan, found, nil
}

func (s *DocumentService) RecordSession(ctx context.Context, minutes int) (domain.Session, error) {
	now := s.clock.Now()
	today := domain.DateOf(now, s.loc)
	var session domain.Session
	err := s.mutate(ctx, func(doc *domain.Document) (bool, error) {
		recorded, err := doc.RecordSession(minutes, now, today)
		if err != nil {
			return false, err
		}
		session = recorded
		return true, nil
	})
	if err != nil {
		return domain.Session{}, err
	}
	s.log.Infow("session recorded", "minutes", minutes, "date", today.String())
	return session, nil
}

// Import replaces the document wholesale with the decoded payload. Decode
// failures leave the current document untouched.
func (s *DocumentService) Import(ctx context.Context, raw []byte) (domain.Document, error) {
	doc, err := domain.DecodeSnapshot(raw)
	if err != nil {
		return domain.Document{}, err
	}
	err = s.mutate(ctx, func(current *domain.Document) (bool, error) {
		*current = doc
		return true, nil
	})
	if err != nil {
		return domain.Document{}, err
	}
	s.log.Infow("document imported", "plans", len(doc.Plans), "sessions", len(doc.Sessions))
	return doc.Clone(), nil
}

func (s *DocumentService) Export(_ context.Context) ([]byte, error) {
	return domain.EncodeSnapshot(s.Snapshot())
}

func (s *DocumentService) mutate(ctx context.Context, fn func(doc *domain.Document) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.Clone()
	changed, err := fn(&next)
	if err != nil || !changed {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.doc = next
	return nil
}

func (s *DocumentService) persist(ctx context.Context, doc domain.Document) error {
	payload, err := domain.EncodeSnapshot(doc)
	if err != nil {
		return err
	}
	if err := s.slot.Write(ctx, payload); err != nil {
		s.log.Errorw("persist document failed", "error", err)
		return fmt.Errorf("persist document: %w", err)
	}
	return nil
}
