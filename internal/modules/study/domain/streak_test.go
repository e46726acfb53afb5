package domain_test

import (
	"testing"
	"time"

	"studybuddy/internal/modules/study/domain"
)

func TestAdvanceStreak(t *testing.T) {
	t.Parallel()
	today := domain.NewDate(2026, 3, 10)
	cases := []struct {
		name  string
		in    domain.Streak
		count int
	}{
		{name: "first session ever", in: domain.Streak{}, count: 1},
		{name: "same day", in: domain.Streak{Count: 4, LastStudyDate: today}, count: 4},
		{name: "consecutive day", in: domain.Streak{Count: 4, LastStudyDate: today.AddDays(-1)}, count: 5},
		{name: "missed one day", in: domain.Streak{Count: 4, LastStudyDate: today.AddDays(-2)}, count: 1},
		{name: "long gap", in: domain.Streak{Count: 30, LastStudyDate: today.AddDays(-90)}, count: 1},
		{name: "clock moved backwards", in: domain.Streak{Count: 3, LastStudyDate: today.AddDays(2)}, count: 3},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := domain.AdvanceStreak(tc.in, today)
			if got.Count != tc.count {
				t.Fatalf("expected count %d, got %d", tc.count, got.Count)
			}
			if !got.LastStudyDate.Equal(today) {
				t.Fatalf("expected last study date %s, got %s", today, got.LastStudyDate)
			}
		})
	}
}

func TestAdvanceStreakAcrossDaylightSavingChange(t *testing.T) {
	t.Parallel()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 2026-03-08 is the spring-forward day in New York; it has 23 hours.
	before := domain.DateOf(time.Date(2026, 3, 7, 23, 30, 0, 0, loc), loc)
	after := domain.DateOf(time.Date(2026, 3, 8, 23, 30, 0, 0, loc), loc)
	if days := before.DaysUntil(after); days != 1 {
		t.Fatalf("expected one calendar day across the transition, got %d", days)
	}
	got := domain.AdvanceStreak(domain.Streak{Count: 2, LastStudyDate: before}, after)
	if got.Count != 3 {
		t.Fatalf("expected streak to extend across DST, got %d", got.Count)
	}
}

func TestDateOfUsesObserverLocation(t *testing.T) {
	t.Parallel()
	instant := time.Date(2026, 5, 1, 2, 0, 0, 0, time.UTC)
	west := time.FixedZone("UTC-5", -5*3600)
	if got := domain.DateOf(instant, west).String(); got != "2026-04-30" {
		t.Fatalf("expected 2026-04-30 in UTC-5, got %s", got)
	}
	if got := domain.DateOf(instant, nil).String(); got != "2026-05-01" {
		t.Fatalf("expected UTC fallback 2026-05-01, got %s", got)
	}
}

func TestParseDateAcceptsLegacyLayouts(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"2026-02-03", "Tue Feb 03 2026", "2026-02-03T18:04:05Z"} {
		d, err := domain.ParseDate(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if d.String() != "2026-02-03" {
			t.Fatalf("parse %q: expected 2026-02-03, got %s", raw, d)
		}
	}
	if _, err := domain.ParseDate("tomorrow"); err == nil {
		t.Fatalf("expected error for unrecognized date")
	}
	for _, raw := range []string{"0001-01-01", "0999-12-31"} {
		if _, err := domain.ParseDate(raw); err == nil {
			t.Fatalf("expected %q to be rejected instead of reading as no date", raw)
		}
	}
}
