package driver

import (
	"runtime/debug"
	"sync/atomic"

	"go.uber.org/zap"
)

// Supervisor wraps the per-frame step with panic recovery. A panic
// marks the supervisor broken and skips further steps until Reset
// rebuilds whatever state the step depends on; the loop itself keeps
// running, so the worst degradation is a static scene
type Supervisor struct {
	log    *zap.Logger
	step   func()
	reset  func()
	broken atomic.Bool
}

func NewSupervisor(log *zap.Logger, step, reset func()) *Supervisor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Supervisor{log: log, step: step, reset: reset}
}

// Run executes one step; returns false when the step was skipped or
// panicked
func (s *Supervisor) Run() (ok bool) {
	if s.broken.Load() {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			s.broken.Store(true)
			s.log.Error("frame step panicked",
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			ok = false
		}
	}()
	s.step()
	return true
}

// Recoverable reports whether a panic has been caught and Reset would
// resume stepping
func (s *Supervisor) Recoverable() bool {
	return s.broken.Load()
}

// Reset rebuilds the supervised state and resumes stepping
func (s *Supervisor) Reset() {
	if s.reset != nil {
		s.reset()
	}
	s.broken.Store(false)
}
