package loop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wricardo/snakeysnake/game/engine"
)

// ErrStopped is returned for commands sent to a runner whose Run has returned
var ErrStopped = errors.New("runner stopped")

// DefaultPollInterval is how often the runner asks the engine whether a tick is due
const DefaultPollInterval = 5 * time.Millisecond

type commandKind int

const (
	cmdTurn commandKind = iota
	cmdPause
	cmdReset
)

type command struct {
	kind    commandKind
	side    engine.Side
	initial int
	reply   chan bool
}

// Runner owns one engine and is the only goroutine that mutates it. Input
// is queued as commands; every change publishes a fresh immutable snapshot.
type Runner struct {
	eng      engine.Engine
	clock    Clock
	poll     time.Duration
	commands chan command

	snapshot atomic.Pointer[engine.Snapshot]

	mu       sync.RWMutex
	handlers []func(engine.Snapshot)

	running atomic.Bool
	done    chan struct{}
}

// Option configures a Runner
type Option func(*Runner)

// WithClock sets the time source
func WithClock(c Clock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithPollInterval sets how often tick readiness is checked
func WithPollInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.poll = d
		}
	}
}

// WithSnapshotHandler registers a callback run after every publish
func WithSnapshotHandler(fn func(engine.Snapshot)) Option {
	return func(r *Runner) {
		r.handlers = append(r.handlers, fn)
	}
}

// NewRunner wraps eng. Callers must not touch eng directly once Run starts.
func NewRunner(eng engine.Engine, opts ...Option) *Runner {
	r := &Runner{
		eng:      eng,
		clock:    NewSystemClock(),
		poll:     DefaultPollInterval,
		commands: make(chan command, 64),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	snap := eng.Snapshot()
	r.snapshot.Store(&snap)
	return r
}

// Subscribe adds a snapshot callback. Callbacks run on the runner goroutine
// and must not block.
func (r *Runner) Subscribe(fn func(engine.Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, fn)
}

// Run drives the engine until ctx is cancelled
func (r *Runner) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return errors.New("runner already running")
	}
	defer close(r.done)
	defer r.running.Store(false)

	ticker := time.NewTicker(r.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-r.commands:
			ok := r.apply(cmd, r.clock.NowMillis())
			r.publish()
			cmd.reply <- ok
		case <-ticker.C:
			now := r.clock.NowMillis()
			if r.eng.IsUpdateDue(now) {
				r.eng.Tick(now)
				r.publish()
			}
		}
	}
}

func (r *Runner) apply(cmd command, now int64) bool {
	switch cmd.kind {
	case cmdTurn:
		return r.eng.RequestTurn(cmd.side, now)
	case cmdPause:
		return r.eng.RequestPauseToggle(now)
	case cmdReset:
		r.eng.ResetWithScore(cmd.initial, now)
		return true
	}
	return false
}

// publish stores a new snapshot and notifies handlers. The death flag is
// acknowledged here so exactly one snapshot carries it.
func (r *Runner) publish() {
	snap := r.eng.Snapshot()
	if snap.JustDied {
		r.eng.AcknowledgeDeath()
	}
	r.snapshot.Store(&snap)

	r.mu.RLock()
	handlers := r.handlers
	r.mu.RUnlock()
	for _, fn := range handlers {
		fn(snap)
	}
}

// send queues cmd and waits for the result. Commands sent before Run starts
// wait in the queue.
func (r *Runner) send(ctx context.Context, cmd command) (bool, error) {
	cmd.reply = make(chan bool, 1)
	select {
	case r.commands <- cmd:
	case <-r.done:
		return false, ErrStopped
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case ok := <-cmd.reply:
		return ok, nil
	case <-r.done:
		return false, ErrStopped
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// RequestTurn queues a turn (or start tap) and waits until it is applied
func (r *Runner) RequestTurn(ctx context.Context, side engine.Side) (bool, error) {
	return r.send(ctx, command{kind: cmdTurn, side: side})
}

// RequestPauseToggle queues a pause toggle and waits until it is applied
func (r *Runner) RequestPauseToggle(ctx context.Context) (bool, error) {
	return r.send(ctx, command{kind: cmdPause})
}

// Restart begins a new life carrying an initial score
func (r *Runner) Restart(ctx context.Context, initial int) error {
	_, err := r.send(ctx, command{kind: cmdReset, initial: initial})
	return err
}

// Snapshot returns the latest published snapshot
func (r *Runner) Snapshot() engine.Snapshot {
	return *r.snapshot.Load()
}

// Running reports whether Run is active
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Done is closed when Run returns
func (r *Runner) Done() <-chan struct{} {
	return r.done
}
