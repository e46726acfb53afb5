package in

import (
	"context"

	"studybuddy/internal/modules/study/dto"
)

type Usecase interface {
	Load(ctx context.Context) (dto.LoadOutput, error)
	Save(ctx context.Context) error
	CreatePlan(ctx context.Context, input dto.CreatePlanInput) (dto.PlanOutput, error)
	CompletePlan(ctx context.Context, input dto.CompletePlanInput) (dto.CompletePlanOutput, error)
	ListPlans(ctx context.Context) ([]dto.PlanOutput, error)
	RecordSession(ctx context.Context, input dto.RecordSessionInput) (dto.SessionOutput, error)
	Overview(ctx context.Context) (dto.OverviewOutput, error)
	Document(ctx context.Context) (dto.DocumentOutput, error)
	ExportSnapshot(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	ImportSnapshot(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
}
