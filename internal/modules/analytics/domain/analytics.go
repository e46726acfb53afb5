package domain

import (
	"math"
	"time"
)

// ChartFloor is the smallest bar chart ceiling, in minutes, so a quiet week
// still draws short bars instead of stretching them to full height.
const ChartFloor = 60

const dayLayout = "2006-01-02"

type PlanRecord struct {
	Completed bool
}

// SessionRecord is one logged session. Day is the calendar date key
// (YYYY-MM-DD) and At the instant it was recorded.
type SessionRecord struct {
	Day     string
	Minutes int
	At      time.Time
}

type Dataset struct {
	Streak     int
	TotalHours float64
	Plans      []PlanRecord
	Sessions   []SessionRecord
}

type Bar struct {
	Day     string
	Label   string
	Minutes int
}

type Histogram struct {
	Bars    []Bar
	Ceiling int
}

// CompletionRate is the rounded percentage of completed plans, 0 without plans.
func CompletionRate(plans []PlanRecord) int {
	if len(plans) == 0 {
		return 0
	}
	done := 0
	for _, p := range plans {
		if p.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(plans)) * 100))
}

func AverageSessionMinutes(sessions []SessionRecord) (int, bool) {
	if len(sessions) == 0 {
		return 0, false
	}
	total := 0
	for _, s := range sessions {
		total += s.Minutes
	}
	return int(math.Round(float64(total) / float64(len(sessions)))), true
}

// MostProductiveWeekday sums minutes per weekday of each session instant in
// loc. Ties go to the weekday that appeared first in session order.
func MostProductiveWeekday(sessions []SessionRecord, loc *time.Location) (time.Weekday, bool) {
	if len(sessions) == 0 {
		return time.Sunday, false
	}
	if loc == nil {
		loc = time.UTC
	}
	totals := map[time.Weekday]int{}
	var order []time.Weekday
	for _, s := range sessions {
		day := s.At.In(loc).Weekday()
		if _, seen := totals[day]; !seen {
			order = append(order, day)
		}
		totals[day] += s.Minutes
	}
	best := order[0]
	for _, day := range order[1:] {
		if totals[day] > totals[best] {
			best = day
		}
	}
	return best, true
}

// Last7Days buckets session minutes by Day for the seven calendar days
// ending on today's date, oldest first.
func Last7Days(sessions []SessionRecord, today time.Time) Histogram {
	y, m, d := today.Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	byDay := map[string]int{}
	for _, s := range sessions {
		byDay[s.Day] += s.Minutes
	}

	h := Histogram{Bars: make([]Bar, 0, 7), Ceiling: ChartFloor}
	for offset := 6; offset >= 0; offset-- {
		day := end.AddDate(0, 0, -offset)
		key := day.Format(dayLayout)
		bar := Bar{Day: key, Label: day.Format("Mon"), Minutes: byDay[key]}
		if bar.Minutes > h.Ceiling {
			h.Ceiling = bar.Minutes
		}
		h.Bars = append(h.Bars, bar)
	}
	return h
}
