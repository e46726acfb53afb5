package in

import (
	"context"

	"studybuddy/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.TimerOutput, error)
	Pause(ctx context.Context) (dto.TimerOutput, error)
	Reset(ctx context.Context) (dto.TimerOutput, error)
	Configure(ctx context.Context, input dto.ConfigureInput) (dto.TimerOutput, error)
	State(ctx context.Context) (dto.TimerOutput, error)
	Events() <-chan dto.TimerEvent
	Close() error
}
