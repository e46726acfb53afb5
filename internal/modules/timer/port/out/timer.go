package out

import "context"

// SessionRecorder stores a finished countdown as a study session.
type SessionRecorder interface {
	RecordSession(ctx context.Context, minutes int) error
}

// Notifier tells the user a countdown finished.
type Notifier interface {
	Notify(ctx context.Context, minutes int) error
}
