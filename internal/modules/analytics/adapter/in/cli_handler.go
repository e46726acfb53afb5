package in

import (
	"context"

	analyticsdto "studybuddy/internal/modules/analytics/dto"
	analyticsin "studybuddy/internal/modules/analytics/port/in"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Report(ctx context.Context) (analyticsdto.ReportOutput, error) {
	return h.usecase.Report(ctx)
}

func (h CLIHandler) Last7Days(ctx context.Context) (analyticsdto.HistogramOutput, error) {
	return h.usecase.Last7Days(ctx)
}
