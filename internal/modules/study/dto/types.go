package dto

import "time"

type LoadOutput struct {
	Status   string
	Sessions int
	Plans    int
}

type CreatePlanInput struct {
	Subject    string
	Duration   float64
	Difficulty string
}

type PlanOutput struct {
	ID          string
	Subject     string
	Duration    float64
	Difficulty  string
	Completed   bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

type CompletePlanInput struct {
	ID string
}

// CompletePlanOutput reports Found=false for unknown ids; that is not an error.
type CompletePlanOutput struct {
	Found bool
	Plan  PlanOutput
}

type RecordSessionInput struct {
	DurationMinutes int
}

type SessionOutput struct {
	Date      string
	Duration  int
	Timestamp time.Time
}

type OverviewOutput struct {
	Streak         int
	TotalHours     float64
	LastStudyDate  string
	PlanCount      int
	CompletedPlans int
	SessionCount   int
}

type DocumentOutput struct {
	Streak        int
	TotalHours    float64
	LastStudyDate string
	Plans         []PlanOutput
	Sessions      []SessionOutput
}

// ExportInput.Dir, when set, also writes the artifact to that directory.
type ExportInput struct {
	Dir string
}

type ExportOutput struct {
	FileName string
	Path     string
	Content  []byte
}

// ImportInput takes Raw when non-empty, otherwise reads the file at Path.
type ImportInput struct {
	Path string
	Raw  []byte
}

type ImportOutput struct {
	Plans    int
	Sessions int
	Streak   int
}
