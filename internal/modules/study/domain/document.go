package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	apperrors "studybuddy/internal/platform/errors"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Validate() error {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return nil
	default:
		return fmt.Errorf("%w: unsupported difficulty %q", apperrors.ErrValidation, string(d))
	}
}

type Plan struct {
	ID          string     `json:"id"`
	Subject     string     `json:"subject"`
	Duration    float64    `json:"duration"`
	Difficulty  Difficulty `json:"difficulty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (p Plan) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: plan id is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: subject is required", apperrors.ErrValidation)
	}
	if !(p.Duration > 0) || math.IsInf(p.Duration, 0) {
		return fmt.Errorf("%w: duration must be a positive number of hours", apperrors.ErrValidation)
	}
	if err := p.Difficulty.Validate(); err != nil {
		return err
	}
	if p.Completed != (p.CompletedAt != nil) {
		return fmt.Errorf("%w: completedAt must be set exactly when the plan is completed", apperrors.ErrValidation)
	}
	return nil
}

type Session struct {
	Date      Date      `json:"date"`
	Duration  int       `json:"duration"`
	Timestamp time.Time `json:"timestamp"`
}

// Document is the persisted root. Plans keep creation order and Sessions
// keep chronological order; sessions are never edited once appended.
type Document struct {
	Streak        int       `json:"streak"`
	TotalHours    float64   `json:"totalHours"`
	LastStudyDate Date      `json:"lastStudyDate"`
	Plans         []Plan    `json:"plans"`
	Sessions      []Session `json:"sessions"`
}

func NewDocument() Document {
	return Document{Plans: []Plan{}, Sessions: []Session{}}
}

// Clone returns a deep copy so callers never share the mutable root.
func (d Document) Clone() Document {
	out := d
	out.Plans = make([]Plan, len(d.Plans))
	for i, p := range d.Plans {
		if p.CompletedAt != nil {
			at := *p.CompletedAt
			p.CompletedAt = &at
		}
		out.Plans[i] = p
	}
	out.Sessions = append(make([]Session, 0, len(d.Sessions)), d.Sessions...)
	return out
}

func (d *Document) AddPlan(p Plan) error {
	p.Subject = strings.TrimSpace(p.Subject)
	if err := p.Validate(); err != nil {
		return err
	}
	for _, existing := range d.Plans {
		if existing.ID == p.ID {
			return fmt.Errorf("%w: duplicate plan id %s", apperrors.ErrValidation, p.ID)
		}
	}
	d.Plans = append(d.Plans, p)
	return nil
}

// CompletePlan marks the plan done and reports whether id matched.
// A plan completed earlier keeps its original completion stamp.
func (d *Document) CompletePlan(id string, at time.Time) (Plan, bool) {
	for i := range d.Plans {
		if d.Plans[i].ID != id {
			continue
		}
		if !d.Plans[i].Completed {
			stamp := at
			d.Plans[i].Completed = true
			d.Plans[i].CompletedAt = &stamp
		}
		return d.Plans[i], true
	}
	return Plan{}, false
}

// RecordSession appends a session of minutes at instant at, observed on
// calendar day today, and advances totals and the streak.
func (d *Document) RecordSession(minutes int, at time.Time, today Date) (Session, error) {
	if minutes <= 0 {
		return Session{}, fmt.Errorf("%w: session duration must be positive minutes", apperrors.ErrValidation)
	}
	session := Session{Date: today, Duration: minutes, Timestamp: at}
	d.Sessions = append(d.Sessions, session)
	d.TotalHours = RoundHours(d.TotalHours + float64(minutes)/60)

	next := AdvanceStreak(Streak{Count: d.Streak, LastStudyDate: d.LastStudyDate}, today)
	d.Streak = next.Count
	d.LastStudyDate = next.LastStudyDate
	return session, nil
}

func (d Document) CompletedPlans() int {
	n := 0
	for _, p := range d.Plans {
		if p.Completed {
			n++
		}
	}
	return n
}

// RoundHours rounds to two decimal places.
func RoundHours(v float64) float64 {
	return math.Round(v*100) / 100
}
