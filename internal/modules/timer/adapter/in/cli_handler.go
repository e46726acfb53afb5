package in

import (
	"context"

	timerdto "studybuddy/internal/modules/timer/dto"
	timerin "studybuddy/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (timerdto.TimerOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (timerdto.TimerOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (timerdto.TimerOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Configure(ctx context.Context, minutes int) (timerdto.TimerOutput, error) {
	return h.usecase.Configure(ctx, timerdto.ConfigureInput{Minutes: minutes})
}

func (h CLIHandler) State(ctx context.Context) (timerdto.TimerOutput, error) {
	return h.usecase.State(ctx)
}

func (h CLIHandler) Events() <-chan timerdto.TimerEvent {
	return h.usecase.Events()
}

func (h CLIHandler) Close() error {
	return h.usecase.Close()
}
