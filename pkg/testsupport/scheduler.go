package testsupport

import (
	"sort"
	"sync"
	"time"
)

// ManualScheduler queues continuations against a virtual clock that only
// moves when a test calls Advance.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []task
}

type task struct {
	at  time.Duration
	seq int
	fn  func()
}

// NewManualScheduler returns a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// After queues fn to run d after the current virtual time.
func (s *ManualScheduler) After(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.tasks = append(s.tasks, task{at: s.now + d, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by d, running due continuations in time
// order. Continuations scheduled while advancing run too if they fall due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		next, ok := s.popDue(target)
		if !ok {
			break
		}
		next.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// RunAll runs queued continuations until none remain.
func (s *ManualScheduler) RunAll() {
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 {
			s.mu.Unlock()
			return
		}
		s.sortLocked()
		next := s.tasks[0].at
		s.mu.Unlock()
		s.Advance(next - s.Now())
	}
}

// Pending reports how many continuations are queued.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Now returns the virtual time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *ManualScheduler) popDue(target time.Duration) (task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tasks) == 0 {
		return task{}, false
	}
	s.sortLocked()
	head := s.tasks[0]
	if head.at > target {
		return task{}, false
	}
	s.tasks = s.tasks[1:]
	s.now = head.at
	return head, true
}

func (s *ManualScheduler) sortLocked() {
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].at == s.tasks[j].at {
			return s.tasks[i].seq < s.tasks[j].seq
		}
		return s.tasks[i].at < s.tasks[j].at
	})
}
