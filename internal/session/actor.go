// Package session ties calibration, recording and reporting into one aggregate.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
)

// ErrActorClosed is returned after Close.
var ErrActorClosed = errors.New("session actor closed")

// Actor owns a Session on a single goroutine so callers on other goroutines
// never mutate it concurrently. Commands are applied in arrival order.
type Actor struct {
	session *Session
	logger  *slog.Logger
	events  chan request
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

type request struct {
	cmd   Command
	reply chan response
}

type response struct {
	result Result
	err    error
}

// NewActor starts the event loop for s.
func NewActor(s *Session, logger *slog.Logger) *Actor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &Actor{
		session: s,
		logger:  logger,
		events:  make(chan request, 64),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go a.loop()
	return a
}

func (a *Actor) loop() {
	defer close(a.stopped)
	for {
		select {
		case <-a.done:
			return
		case req := <-a.events:
			req.reply <- a.handle(req.cmd)
		}
	}
}

func (a *Actor) handle(cmd Command) (resp response) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("session actor panic", "error", r, "stack", string(debug.Stack()))
			resp = response{err: fmt.Errorf("session actor panic: %v", r)}
		}
	}()
	if cmd == nil {
		return response{result: Result{Snapshot: a.session.Snapshot()}}
	}
	result, err := a.session.Apply(cmd)
	return response{result: result, err: err}
}

// Do applies cmd and waits for its result. A command is either applied and
// its result returned, or not applied and an error returned. Once queued, a
// command is waited for even if ctx is cancelled.
func (a *Actor) Do(ctx context.Context, cmd Command) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	reply := make(chan response, 1)
	select {
	case <-a.done:
		return Result{}, ErrActorClosed
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case a.events <- request{cmd: cmd, reply: reply}:
	}
	select {
	case resp := <-reply:
		return resp.result, resp.err
	case <-a.stopped:
		// The loop replies before it stops, so a handled request is already buffered.
		select {
		case resp := <-reply:
			return resp.result, resp.err
		default:
			return Result{}, ErrActorClosed
		}
	}
}

// Snapshot returns the current state as seen by the owning goroutine.
func (a *Actor) Snapshot(ctx context.Context) (Snapshot, error) {
	res, err := a.Do(ctx, nil)
	if err != nil {
		return Snapshot{}, err
	}
	return res.Snapshot, nil
}

// Close stops the loop. Pending requests fail with ErrActorClosed.
func (a *Actor) Close() {
	a.once.Do(func() {
		close(a.done)
	})
	<-a.stopped
}
