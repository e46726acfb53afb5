package out

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	timerout "studybuddy/internal/modules/timer/port/out"
)

// BellNotifier rings the terminal bell on w and logs the completion. A nil
// writer only logs, which is what the TUI uses.
type BellNotifier struct {
	w   io.Writer
	log *zap.SugaredLogger
}

func NewBellNotifier(w io.Writer, log *zap.SugaredLogger) timerout.Notifier {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &BellNotifier{w: w, log: log}
}

func (n *BellNotifier) Notify(_ context.Context, minutes int) error {
	n.log.Infow("study session complete", "minutes", minutes)
	if n.w == nil {
		return nil
	}
	if _, err := fmt.Fprint(n.w, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}
