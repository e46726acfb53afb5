package domain_test

import (
	"testing"
	"time"

	"studybuddy/internal/modules/analytics/domain"
)

func session(day string, minutes int, at time.Time) domain.SessionRecord {
	return domain.SessionRecord{Day: day, Minutes: minutes, At: at}
}

func TestMetricsForThreeSessions(t *testing.T) {
	t.Parallel()
	tue := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sessions := []domain.SessionRecord{
		session("2026-03-10", 30, tue),
		session("2026-03-10", 45, tue.Add(2*time.Hour)),
		session("2026-03-10", 60, tue.Add(4*time.Hour)),
	}
	avg, ok := domain.AverageSessionMinutes(sessions)
	if !ok || avg != 45 {
		t.Fatalf("expected average 45, got %d (%v)", avg, ok)
	}
	day, ok := domain.MostProductiveWeekday(sessions, time.UTC)
	if !ok || day != time.Tuesday {
		t.Fatalf("expected Tuesday, got %s (%v)", day, ok)
	}
	h := domain.Last7Days(sessions, tue)
	if len(h.Bars) != 7 {
		t.Fatalf("expected 7 bars, got %d", len(h.Bars))
	}
	lastBar := h.Bars[6]
	if lastBar.Day != "2026-03-10" || lastBar.Minutes != 135 || lastBar.Label != "Tue" {
		t.Fatalf("unexpected bar for today: %+v", lastBar)
	}
	if h.Ceiling != 135 {
		t.Fatalf("expected ceiling to follow the tallest bar, got %d", h.Ceiling)
	}
}

func TestAverageWithoutSessions(t *testing.T) {
	t.Parallel()
	if _, ok := domain.AverageSessionMinutes(nil); ok {
		t.Fatalf("expected no data without sessions")
	}
	if _, ok := domain.MostProductiveWeekday(nil, time.UTC); ok {
		t.Fatalf("expected no weekday without sessions")
	}
}

func TestAverageRounds(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	avg, _ := domain.AverageSessionMinutes([]domain.SessionRecord{session("d", 10, at), session("d", 11, at)})
	if avg != 11 {
		t.Fatalf("expected 10.5 to round to 11, got %d", avg)
	}
}

func TestMostProductiveWeekdayTieBreak(t *testing.T) {
	t.Parallel()
	wed := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	mon := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	sessions := []domain.SessionRecord{
		session("2026-03-11", 40, wed),
		session("2026-03-09", 40, mon),
	}
	day, _ := domain.MostProductiveWeekday(sessions, time.UTC)
	if day != time.Wednesday {
		t.Fatalf("tie must go to the first weekday seen, got %s", day)
	}
	sessions = append(sessions, session("2026-03-09", 1, mon.Add(time.Hour)))
	if day, _ := domain.MostProductiveWeekday(sessions, time.UTC); day != time.Monday {
		t.Fatalf("expected Monday once it leads, got %s", day)
	}
}

func TestMostProductiveWeekdayUsesLocation(t *testing.T) {
	t.Parallel()
	// 02:00 UTC on a Tuesday is still Monday evening five hours west.
	at := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)
	west := time.FixedZone("UTC-5", -5*3600)
	day, _ := domain.MostProductiveWeekday([]domain.SessionRecord{session("2026-03-09", 30, at)}, west)
	if day != time.Monday {
		t.Fatalf("expected Monday in UTC-5, got %s", day)
	}
}

func TestCompletionRate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		plans []domain.PlanRecord
		want  int
	}{
		{plans: nil, want: 0},
		{plans: []domain.PlanRecord{{Completed: true}}, want: 100},
		{plans: []domain.PlanRecord{{Completed: true}, {}, {}}, want: 33},
		{plans: []domain.PlanRecord{{Completed: true}, {Completed: true}, {}}, want: 67},
	}
	for _, tc := range cases {
		if got := domain.CompletionRate(tc.plans); got != tc.want {
			t.Fatalf("CompletionRate(%v) = %d, want %d", tc.plans, got, tc.want)
		}
	}
}

func TestLast7DaysWindowAndFloor(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	sessions := []domain.SessionRecord{
		session("2026-03-03", 50, today.AddDate(0, 0, -7)),
		session("2026-03-04", 20, today.AddDate(0, 0, -6)),
		session("2026-03-08", 15, today.AddDate(0, 0, -2)),
	}
	h := domain.Last7Days(sessions, today)
	if h.Bars[0].Day != "2026-03-04" || h.Bars[6].Day != "2026-03-10" {
		t.Fatalf("unexpected window %s..%s", h.Bars[0].Day, h.Bars[6].Day)
	}
	if h.Bars[0].Minutes != 20 || h.Bars[4].Minutes != 15 {
		t.Fatalf("unexpected buckets: %+v", h.Bars)
	}
	total := 0
	for _, b := range h.Bars {
		total += b.Minutes
	}
	if total != 35 {
		t.Fatalf("sessions outside the window must be ignored, got %d minutes", total)
	}
	if h.Ceiling != domain.ChartFloor {
		t.Fatalf("expected ceiling floor %d, got %d", domain.ChartFloor, h.Ceiling)
	}
}

func TestThreeSessionsOnDistinctWeekdays(t *testing.T) {
	t.Parallel()
	today := time.Date(2026, 3, 12, 20, 0, 0, 0, time.UTC)
	sessions := []domain.SessionRecord{
		session("2026-03-09", 30, time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)),
		session("2026-03-10", 45, time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)),
		session("2026-03-12", 60, time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)),
	}
	if avg, _ := domain.AverageSessionMinutes(sessions); avg != 45 {
		t.Fatalf("expected average 45, got %d", avg)
	}
	want := map[string]int{"2026-03-09": 30, "2026-03-10": 45, "2026-03-11": 0, "2026-03-12": 60}
	for _, bar := range domain.Last7Days(sessions, today).Bars {
		if minutes, ok := want[bar.Day]; ok && bar.Minutes != minutes {
			t.Fatalf("bucket %s: expected %d, got %d", bar.Day, minutes, bar.Minutes)
		}
	}
	if day, _ := domain.MostProductiveWeekday(sessions, time.UTC); day != time.Thursday {
		t.Fatalf("expected Thursday, got %s", day)
	}
}
