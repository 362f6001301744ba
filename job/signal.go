package job

import "sync/atomic"

// StopSignal is a one-way cooperative cancellation flag shared between the
// progress animation and the request lifecycle. The animation polls Stopped
// on every tick; both the success path and the user-stop path call Stop.
// A fresh signal is created per generation.
type StopSignal struct {
	done atomic.Bool
}

// NewStopSignal returns an unset signal.
func NewStopSignal() *StopSignal {
	return &StopSignal{}
}

// Stop marks the signal done. Idempotent.
func (s *StopSignal) Stop() {
	s.done.Store(true)
}

// Stopped reports whether Stop has been called.
func (s *StopSignal) Stopped() bool {
	return s.done.Load()
}
