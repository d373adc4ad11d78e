package engine

import (
	"sync"
	"time"
)

// TaskID identifies a scheduled task
type TaskID uint64

type task struct {
	id        TaskID
	gen       uint64
	deadline  time.Time
	remaining time.Duration
	timer     Timer
	fn        func()
}

// Scheduler is a pausable set of one-shot tasks.
// Every task runs with lock held. All methods must be called with lock held.
type Scheduler struct {
	clock  Clock
	lock   sync.Locker
	tasks  map[TaskID]*task
	nextID TaskID
	gen    uint64
	paused bool
}

// NewScheduler creates a scheduler whose callbacks serialize on lock
func NewScheduler(clock Clock, lock sync.Locker) *Scheduler {
	return &Scheduler{
		clock: clock,
		lock:  lock,
		tasks: make(map[TaskID]*task),
	}
}

// After schedules fn to run once d has elapsed on the scheduler's clock.
// While paused the delay is held and starts counting on Resume.
func (s *Scheduler) After(d time.Duration, fn func()) TaskID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	t := &task{id: s.nextID, fn: fn, remaining: d}
	s.tasks[t.id] = t
	if !s.paused {
		s.arm(t, d)
	}
	return t.id
}

// Cancel drops a pending task. Cancelling an unknown or finished task is a no-op.
func (s *Scheduler) Cancel(id TaskID) bool {
	t, ok := s.tasks[id]
	if !ok {
		return false
	}
	delete(s.tasks, id)
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

// CancelAll drops every pending task
func (s *Scheduler) CancelAll() {
	for id := range s.tasks {
		s.Cancel(id)
	}
}

// Pause freezes every pending task, remembering how long each had left
func (s *Scheduler) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	now := s.clock.Now()
	for _, t := range s.tasks {
		if t.timer == nil {
			continue
		}
		t.timer.Stop()
		t.timer = nil
		t.remaining = t.deadline.Sub(now)
		if t.remaining < 0 {
			t.remaining = 0
		}
	}
}

// Resume re-arms every frozen task with its remaining delay
func (s *Scheduler) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
	for _, t := range s.tasks {
		s.arm(t, t.remaining)
	}
}

// Paused reports whether the scheduler is suspended
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Len returns the number of pending tasks
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Remaining returns how long until a task fires
func (s *Scheduler) Remaining(id TaskID) (time.Duration, bool) {
	t, ok := s.tasks[id]
	if !ok {
		return 0, false
	}
	if s.paused || t.timer == nil {
		return t.remaining, true
	}
	left := t.deadline.Sub(s.clock.Now())
	if left < 0 {
		left = 0
	}
	return left, true
}

func (s *Scheduler) arm(t *task, d time.Duration) {
	s.gen++
	t.gen = s.gen
	t.deadline = s.clock.Now().Add(d)
	t.remaining = d
	id, gen := t.id, t.gen
	t.timer = s.clock.AfterFunc(d, func() { s.fire(id, gen) })
}

// fire runs a due task unless it was cancelled, paused or re-armed while
// the callback waited for the lock
func (s *Scheduler) fire(id TaskID, gen uint64) {
	s.lock.Lock()
	defer s.lock.Unlock()

	t, ok := s.tasks[id]
	if !ok || s.paused || t.gen != gen {
		return
	}
	delete(s.tasks, id)
	t.fn()
}
