package in

import (
	"context"

	studydto "studybuddy/internal/modules/study/dto"
	studyin "studybuddy/internal/modules/study/port/in"
)

type CLIHandler struct {
	usecase studyin.Usecase
}

func NewCLIHandler(usecase studyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context) (studydto.LoadOutput, error) {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) CreatePlan(ctx context.Context, subject string, hours float64, difficulty string) (studydto.PlanOutput, error) {
	return h.usecase.CreatePlan(ctx, studydto.CreatePlanInput{Subject: subject, Duration: hours, Difficulty: difficulty})
}

func (h CLIHandler) CompletePlan(ctx context.Context, id string) (studydto.CompletePlanOutput, error) {
	return h.usecase.CompletePlan(ctx, studydto.CompletePlanInput{ID: id})
}

func (h CLIHandler) ListPlans(ctx context.Context) ([]studydto.PlanOutput, error) {
	return h.usecase.ListPlans(ctx)
}

func (h CLIHandler) RecordSession(ctx context.Context, minutes int) (studydto.SessionOutput, error) {
	return h.usecase.RecordSession(ctx, studydto.RecordSessionInput{DurationMinutes: minutes})
}

func (h CLIHandler) Overview(ctx context.Context) (studydto.OverviewOutput, error) {
	return h.usecase.Overview(ctx)
}

func (h CLIHandler) Export(ctx context.Context, dir string) (studydto.ExportOutput, error) {
	return h.usecase.ExportSnapshot(ctx, studydto.ExportInput{Dir: dir})
}

func (h CLIHandler) Import(ctx context.Context, path string) (studydto.ImportOutput, error) {
	return h.usecase.ImportSnapshot(ctx, studydto.ImportInput{Path: path})
}
