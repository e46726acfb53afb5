package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"studybuddy/internal/modules/analytics/domain"
	analyticsdto "studybuddy/internal/modules/analytics/dto"
	"studybuddy/internal/modules/analytics/usecase"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

type staticSource struct {
	ds    domain.Dataset
	err   error
	calls int
}

func (s *staticSource) Dataset(context.Context) (domain.Dataset, error) {
	s.calls++
	return s.ds, s.err
}

func TestReportAggregatesDataset(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	source := &staticSource{ds: domain.Dataset{
		Streak:     2,
		TotalHours: 2.25,
		Plans:      []domain.PlanRecord{{Completed: true}, {Completed: false}},
		Sessions: []domain.SessionRecord{
			{Day: "2026-03-09", Minutes: 30, At: now.AddDate(0, 0, -1)},
			{Day: "2026-03-10", Minutes: 45, At: now.Add(-2 * time.Hour)},
			{Day: "2026-03-10", Minutes: 60, At: now.Add(-time.Hour)},
		},
	}}
	uc := usecase.NewInteractor(source, fixedClock{now: now}, time.UTC)

	report, err := uc.Report(context.Background())
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Streak != 2 || report.TotalHours != 2.25 || report.CompletionRate != 50 {
		t.Fatalf("unexpected headline numbers: %+v", report)
	}
	if !report.AverageSessionMinutes.HasData || report.AverageSessionMinutes.Minutes != 45 {
		t.Fatalf("unexpected average: %+v", report.AverageSessionMinutes)
	}
	if report.MostProductiveWeekday.Weekday != "Tuesday" {
		t.Fatalf("expected Tuesday, got %+v", report.MostProductiveWeekday)
	}
	bars := report.Last7Days.Bars
	if len(bars) != 7 || bars[5].Minutes != 30 || bars[6].Minutes != 105 {
		t.Fatalf("unexpected histogram: %+v", bars)
	}
	if report.Last7Days.Ceiling != 105 {
		t.Fatalf("expected ceiling 105, got %d", report.Last7Days.Ceiling)
	}
	if source.calls != 1 {
		t.Fatalf("report must read the dataset once, got %d", source.calls)
	}
}

func TestMetricsWithoutSessions(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(&staticSource{}, fixedClock{now: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}, time.UTC)
	ctx := context.Background()

	weekday, err := uc.MostProductiveWeekday(ctx)
	if err != nil || weekday.HasData || weekday.Weekday != analyticsdto.NotEnoughData {
		t.Fatalf("expected not enough data, got %+v, %v", weekday, err)
	}
	avg, err := uc.AverageSessionMinutes(ctx)
	if err != nil || avg.HasData {
		t.Fatalf("expected no average, got %+v, %v", avg, err)
	}
	rate, err := uc.CompletionRate(ctx)
	if err != nil || rate != 0 {
		t.Fatalf("expected 0%% completion, got %d, %v", rate, err)
	}
	h, err := uc.Last7Days(ctx)
	if err != nil || len(h.Bars) != 7 || h.Ceiling != domain.ChartFloor {
		t.Fatalf("expected empty week at floor ceiling, got %+v, %v", h, err)
	}
}

func TestHistogramUsesConfiguredLocation(t *testing.T) {
	t.Parallel()
	// 03:00 UTC on the 11th is still the 10th five hours west.
	now := time.Date(2026, 3, 11, 3, 0, 0, 0, time.UTC)
	west := time.FixedZone("UTC-5", -5*3600)
	source := &staticSource{ds: domain.Dataset{Sessions: []domain.SessionRecord{{Day: "2026-03-10", Minutes: 20, At: now}}}}
	h, err := usecase.NewInteractor(source, fixedClock{now: now}, west).Last7Days(context.Background())
	if err != nil {
		t.Fatalf("last 7 days: %v", err)
	}
	if h.Bars[6].Day != "2026-03-10" || h.Bars[6].Minutes != 20 {
		t.Fatalf("expected today's bar keyed in local time, got %+v", h.Bars[6])
	}
}

func TestSourceErrorsPropagate(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	uc := usecase.NewInteractor(&staticSource{err: boom}, fixedClock{}, time.UTC)
	if _, err := uc.Report(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}
