package usecase

import (
	"context"
	"fmt"

	"studybuddy/internal/modules/study/domain"
	studydto "studybuddy/internal/modules/study/dto"
	studyin "studybuddy/internal/modules/study/port/in"
	studyout "studybuddy/internal/modules/study/port/out"
	"studybuddy/internal/modules/study/service"
)

type Interactor struct {
	svc       *service.DocumentService
	artifacts studyout.ArtifactStore
}

func NewInteractor(svc *service.DocumentService, artifacts studyout.ArtifactStore) studyin.Usecase {
	return &Interactor{svc: svc, artifacts: artifacts}
}

func (i *Interactor) Load(ctx context.Context) (studydto.LoadOutput, error) {
	status, err := i.svc.Load(ctx)
	if err != nil {
		return studydto.LoadOutput{}, err
	}
	doc := i.svc.Snapshot()
	return studydto.LoadOutput{Status: string(status), Plans: len(doc.Plans), Sessions: len(doc.Sessions)}, nil
}

func (i *Interactor) Save(ctx context.Context) error {
	return i.svc.Save(ctx)
}

func (i *Interactor) CreatePlan(ctx context.Context, input studydto.CreatePlanInput) (studydto.PlanOutput, error) {
	plan, err := i.svc.CreatePlan(ctx, input.Subject, input.Duration, domain.Difficulty(input.Difficulty))
	if err != nil {
		return studydto.PlanOutput{}, err
	}
	return toPlanOutput(plan), nil
}

func (i *Interactor) CompletePlan(ctx context.Context, input studydto.CompletePlanInput) (studydto.CompletePlanOutput, error) {
	plan, found, err := i.svc.CompletePlan(ctx, input.ID)
	if err != nil {
		return studydto.CompletePlanOutput{}, err
	}
	if !found {
		return studydto.CompletePlanOutput{}, nil
	}
	return studydto.CompletePlanOutput{Found: true, Plan: toPlanOutput(plan)}, nil
}

func (i *Interactor) ListPlans(_ context.Context) ([]studydto.PlanOutput, error) {
	doc := i.svc.Snapshot()
	out := make([]studydto.PlanOutput, 0, len(doc.Plans))
	for _, p := range doc.Plans {
		out = append(out, toPlanOutput(p))
	}
	return out, nil
}

func (i *Interactor) RecordSession(ctx context.Context, input studydto.RecordSessionInput) (studydto.SessionOutput, error) {
	session, err := i.svc.RecordSession(ctx, input.DurationMinutes)
	if err != nil {
		return studydto.SessionOutput{}, err
	}
	return toSessionOutput(session), nil
}

func (i *Interactor) Overview(_ context.Context) (studydto.OverviewOutput, error) {
	doc := i.svc.Snapshot()
	return studydto.OverviewOutput{
		Streak:         doc.Streak,
		TotalHours:     doc.TotalHours,
		LastStudyDate:  doc.LastStudyDate.String(),
		PlanCount:      len(doc.Plans),
		CompletedPlans: doc.CompletedPlans(),
		SessionCount:   len(doc.Sessions),
	}, nil
}

func (i *Interactor) Document(_ context.Context) (studydto.DocumentOutput, error) {
	doc := i.svc.Snapshot()
	out := studydto.DocumentOutput{
		Streak:        doc.Streak,
		TotalHours:    doc.TotalHours,
		LastStudyDate: doc.LastStudyDate.String(),
		Plans:         make([]studydto.PlanOutput, 0, len(doc.Plans)),
		Sessions:      make([]studydto.SessionOutput, 0, len(doc.Sessions)),
	}
	for _, p := range doc.Plans {
		out.Plans = append(out.Plans, toPlanOutput(p))
	}
	for _, s := range doc.Sessions {
		out.Sessions = append(out.Sessions, toSessionOutput(s))
	}
	return out, nil
}

func (i *Interactor) ExportSnapshot(ctx context.Context, input studydto.ExportInput) (studydto.ExportOutput, error) {
	content, err := i.svc.Export(ctx)
	if err != nil {
		return studydto.ExportOutput{}, err
	}
	out := studydto.ExportOutput{
		FileName: ExportFileName(i.svc.Today()),
		Content:  content,
	}
	if input.Dir == "" {
		return out, nil
	}
	if i.artifacts == nil {
		return studydto.ExportOutput{}, fmt.Errorf("artifact store is not configured")
	}
	path, err := i.artifacts.Write(ctx, input.Dir, out.FileName, content)
	if err != nil {
		return studydto.ExportOutput{}, err
	}
	out.Path = path
	return out, nil
}

func (i *Interactor) ImportSnapshot(ctx context.Context, input studydto.ImportInput) (studydto.ImportOutput, error) {
	raw := input.Raw
	if len(raw) == 0 {
		if input.Path == "" {
			return studydto.ImportOutput{}, fmt.Errorf("import path or payload is required")
		}
		if i.artifacts == nil {
			return studydto.ImportOutput{}, fmt.Errorf("artifact store is not configured")
		}
		payload, err := i.artifacts.Read(ctx, input.Path)
		if err != nil {
			return studydto.ImportOutput{}, err
		}
		raw = payload
	}
	doc, err := i.svc.Import(ctx, raw)
	if err != nil {
		return studydto.ImportOutput{}, err
	}
	return studydto.ImportOutput{Plans: len(doc.Plans), Sessions: len(doc.Sessions), Streak: doc.Streak}, nil
}

// ExportFileName names the export artifact after the day it was taken.
func ExportFileName(today domain.Date) string {
	return fmt.Sprintf("study-data-%s.json", today.String())
}

func toPlanOutput(p domain.Plan) studydto.PlanOutput {
	return studydto.PlanOutput{
		ID:          p.ID,
		Subject:     p.Subject,
		Duration:    p.Duration,
		Difficulty:  string(p.Difficulty),
		Completed:   p.Completed,
		CreatedAt:   p.CreatedAt,
		CompletedAt: p.CompletedAt,
	}
}

func toSessionOutput(s domain.Session) studydto.SessionOutput {
	return studydto.SessionOutput{Date: s.Date.String(), Duration: s.Duration, Timestamp: s.Timestamp}
}
