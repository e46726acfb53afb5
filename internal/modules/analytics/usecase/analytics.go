package usecase

import (
	"context"
	"time"

	"studybuddy/internal/modules/analytics/domain"
	analyticsdto "studybuddy/internal/modules/analytics/dto"
	analyticsin "studybuddy/internal/modules/analytics/port/in"
	analyticsout "studybuddy/internal/modules/analytics/port/out"
	"studybuddy/internal/platform/clock"
)

// Interactor recomputes every metric from a fresh dataset on each call, so
// there is no cache to invalidate after a mutation.
type Interactor struct {
	source analyticsout.DatasetSource
	clock  clock.Clock
	loc    *time.Location
}

func NewInteractor(source analyticsout.DatasetSource, clock clock.Clock, loc *time.Location) analyticsin.Usecase {
	if loc == nil {
		loc = time.Local
	}
	return &Interactor{source: source, clock: clock, loc: loc}
}

func (i *Interactor) CompletionRate(ctx context.Context) (int, error) {
	ds, err := i.source.Dataset(ctx)
	if err != nil {
		return 0, err
	}
	return domain.CompletionRate(ds.Plans), nil
}

func (i *Interactor) AverageSessionMinutes(ctx context.Context) (analyticsdto.AverageOutput, error) {
	ds, err := i.source.Dataset(ctx)
	if err != nil {
		return analyticsdto.AverageOutput{}, err
	}
	return average(ds), nil
}

func (i *Interactor) MostProductiveWeekday(ctx context.Context) (analyticsdto.WeekdayOutput, error) {
	ds, err := i.source.Dataset(ctx)
	if err != nil {
		return analyticsdto.WeekdayOutput{}, err
	}
	return i.weekday(ds), nil
}

func (i *Interactor) Last7Days(ctx context.Context) (analyticsdto.HistogramOutput, error) {
	ds, err := i.source.Dataset(ctx)
	if err != nil {
		return analyticsdto.HistogramOutput{}, err
	}
	return i.histogram(ds), nil
}

func (i *Interactor) Report(ctx context.Context) (analyticsdto.ReportOutput, error) {
	ds, err := i.source.Dataset(ctx)
	if err != nil {
		return analyticsdto.ReportOutput{}, err
	}
	return analyticsdto.ReportOutput{
		Streak:                ds.Streak,
		TotalHours:            ds.TotalHours,
		CompletionRate:        domain.CompletionRate(ds.Plans),
		AverageSessionMinutes: average(ds),
		MostProductiveWeekday: i.weekday(ds),
		Last7Days:             i.histogram(ds),
	}, nil
}

func average(ds domain.Dataset) analyticsdto.AverageOutput {
	minutes, ok := domain.AverageSessionMinutes(ds.Sessions)
	return analyticsdto.AverageOutput{Minutes: minutes, HasData: ok}
}

func (i *Interactor) weekday(ds domain.Dataset) analyticsdto.WeekdayOutput {
	day, ok := domain.MostProductiveWeekday(ds.Sessions, i.loc)
	if !ok {
		return analyticsdto.WeekdayOutput{Weekday: analyticsdto.NotEnoughData}
	}
	return analyticsdto.WeekdayOutput{Weekday: day.String(), HasData: true}
}

func (i *Interactor) histogram(ds domain.Dataset) analyticsdto.HistogramOutput {
	h := domain.Last7Days(ds.Sessions, i.clock.Now().In(i.loc))
	out := analyticsdto.HistogramOutput{Bars: make([]analyticsdto.BarOutput, 0, len(h.Bars)), Ceiling: h.Ceiling}
	for _, b := range h.Bars {
		out.Bars = append(out.Bars, analyticsdto.BarOutput{Day: b.Day, Label: b.Label, Minutes: b.Minutes})
	}
	return out
}
