package service

import (
	"context"
	"sync"
	"time"

	"studybuddy/internal/modules/timer/domain"
	"studybuddy/internal/platform/clock"
)

// Event is published after every applied tick. Completion is set on the
// tick that finished the countdown.
type Event struct {
	Snapshot   domain.Snapshot
	Completion *domain.Completion
}

// Runner schedules one Tick per interval while the timer runs. Every start
// opens a task with its own cancel func and generation number; pause, reset
// and completion cancel it, and a tick from a cancelled generation is
// dropped even if it already left the ticker.
type Runner struct {
	mu       sync.Mutex
	timer    *domain.Timer
	tickers  clock.TickerFactory
	interval time.Duration
	handler  func(Event)
	gen      uint64
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewRunner(timer *domain.Timer, tickers clock.TickerFactory, interval time.Duration) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{timer: timer, tickers: tickers, interval: interval}
}

// SetHandler installs the event callback. It runs on the tick goroutine.
func (r *Runner) SetHandler(fn func(Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handler = fn
}

// Start reports false when the timer was already running; no second task is
// scheduled in that case.
func (r *Runner) Start(ctx context.Context) (domain.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.timer.Start() {
		return r.timer.Snapshot(), false
	}
	r.gen++
	gen := r.gen
	taskCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	ticker := r.tickers.NewTicker(r.interval)
	r.wg.Add(1)
	go r.run(taskCtx, ticker, gen)
	return r.timer.Snapshot(), true
}

func (r *Runner) Pause() domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timer.Pause()
	r.stopLocked()
	return r.timer.Snapshot()
}

func (r *Runner) Reset() domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.timer.Reset()
	r.stopLocked()
	return r.timer.Snapshot()
}

func (r *Runner) Configure(minutes int) (domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.timer.Configure(minutes)
	return r.timer.Snapshot(), err
}

func (r *Runner) Snapshot() domain.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.Snapshot()
}

// Close cancels any scheduled task and waits for its goroutine to exit.
// A running countdown is left paused.
func (r *Runner) Close() {
	r.mu.Lock()
	r.timer.Pause()
	r.stopLocked()
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Runner) run(ctx context.Context, ticker clock.Ticker, gen uint64) {
	defer r.wg.Done()
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.abandon(gen)
			return
		case <-ticker.C():
			if !r.tick(gen) {
				return
			}
		}
	}
}

func (r *Runner) tick(gen uint64) bool {
	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		return false
	}
	done, completed := r.timer.Tick()
	ev := Event{Snapshot: r.timer.Snapshot()}
	if completed {
		ev.Completion = &done
		r.stopLocked()
	}
	handler := r.handler
	r.mu.Unlock()

	if handler != nil {
		handler(ev)
	}
	return !completed
}

// abandon pauses the timer when the caller's context ends the task, so the
// state never claims to run without a scheduled tick.
func (r *Runner) abandon(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return
	}
	r.timer.Pause()
	r.stopLocked()
}

func (r *Runner) stopLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.gen++
}
