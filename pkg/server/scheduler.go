package server

import (
	"sync"
	"time"
)

// stepScheduler queues continuations for one request. The handler runs the
// submission's completion and drops whatever the completion schedules after
// it, since those windows only matter to a live page.
type stepScheduler struct {
	mu    sync.Mutex
	queue []func()
}

func (s *stepScheduler) After(_ time.Duration, fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
}

// step runs the oldest queued continuation and reports whether one ran.
func (s *stepScheduler) step() bool {
	s.mu.Lock()
	if len(s.queue) == 0 {
		s.mu.Unlock()
		return false
	}
	fn := s.queue[0]
	s.queue = s.queue[1:]
	s.mu.Unlock()

	fn()
	return true
}
