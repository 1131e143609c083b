// Package shutdown runs registered cleanup callbacks once, newest first, when
// the process is asked to stop.
package shutdown

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"
)

// DefaultTimeout bounds the callbacks run by WaitForSignal.
const DefaultTimeout = 10 * time.Second

type ShutdownCtx func(ctx context.Context) error

type Shutdown func() error

type ShutdownError struct {
	Errors []error
}

func (se *ShutdownError) Error() string {
	if len(se.Errors) == 1 {
		return fmt.Sprintf("shutdown err: %v", se.Errors[0])
	}

	return fmt.Sprintf("shutdown errors (%d): %v", len(se.Errors), se.Errors)
}

func (se *ShutdownError) Unwrap() []error { return se.Errors }

type Shutdowns struct {
	mu        sync.Mutex
	callbacks []ShutdownCtx
	done      bool
}

func New() *Shutdowns {
	return &Shutdowns{}
}

// Register adds callbacks that ignore the shutdown deadline. Registrations
// after shutdown has begun are dropped.
func (s *Shutdowns) Register(cbs ...Shutdown) {
	wrapped := make([]ShutdownCtx, 0, len(cbs))
	for _, cb := range cbs {
		wrapped = append(wrapped, func(context.Context) error { return cb() })
	}
	s.RegisterCtx(wrapped...)
}

func (s *Shutdowns) RegisterCtx(cbs ...ShutdownCtx) {
	if len(cbs) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	s.callbacks = append(s.callbacks, cbs...)
}

// Shutdown runs every callback in reverse registration order and collects
// their errors. Only the first call does any work.
func (s *Shutdowns) Shutdown(ctx context.Context) []error {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return nil
	}
	s.done = true
	cbs := s.callbacks
	s.callbacks = nil
	s.mu.Unlock()

	var errs []error
	for _, cb := range slices.Backward(cbs) {
		if err := cb(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// WaitForSignal blocks until SIGINT, SIGTERM or the end of ctx, then shuts
// down within timeout (DefaultTimeout when omitted).
func (s *Shutdowns) WaitForSignal(ctx context.Context, timeouts ...time.Duration) error {
	timeout := DefaultTimeout
	if len(timeouts) > 0 && timeouts[0] > 0 {
		timeout = timeouts[0]
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if errs := s.Shutdown(shutdownCtx); len(errs) > 0 {
		return &ShutdownError{Errors: errs}
	}
	return nil
}
