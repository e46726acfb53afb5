package out

import (
	"context"

	studydto "studybuddy/internal/modules/study/dto"
	studyin "studybuddy/internal/modules/study/port/in"
	timerout "studybuddy/internal/modules/timer/port/out"
)

type StudySessionRecorder struct {
	study studyin.Usecase
}

func NewStudySessionRecorder(study studyin.Usecase) timerout.SessionRecorder {
	return &StudySessionRecorder{study: study}
}

func (a *StudySessionRecorder) RecordSession(ctx context.Context, minutes int) error {
	_, err := a.study.RecordSession(ctx, studydto.RecordSessionInput{DurationMinutes: minutes})
	return err
}
