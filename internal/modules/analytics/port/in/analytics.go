package in

import (
	"context"

	"studybuddy/internal/modules/analytics/dto"
)

type Usecase interface {
	CompletionRate(ctx context.Context) (int, error)
	AverageSessionMinutes(ctx context.Context) (dto.AverageOutput, error)
	MostProductiveWeekday(ctx context.Context) (dto.WeekdayOutput, error)
	Last7Days(ctx context.Context) (dto.HistogramOutput, error)
	Report(ctx context.Context) (dto.ReportOutput, error)
}
