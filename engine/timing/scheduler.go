// package timing provides a cooperative task scheduler. Recurring jobs
// (inertial spinning, tossing, key-frame playback) register callbacks as
// tasks; the owner of the main loop drives them by calling Tick once per
// frame. No task runs on its own goroutine, so callbacks may freely touch
// scene state without extra locking.
package timing

import (
	"sync"
	"time"
)

// Scheduler registers recurring tasks and fires the ones that are due each
// time Tick is called.
type Scheduler interface {
	// NewTask registers a new, initially inactive task that invokes fn each
	// time it fires.
	//
	// Parameters:
	//   - fn: the callback to invoke when the task fires
	//
	// Returns:
	//   - Task: the registered task handle
	NewTask(fn func()) Task

	// Tick fires every active task whose period has elapsed since it last
	// fired. Call once per frame from the main loop.
	//
	// Parameters:
	//   - now: the current time
	Tick(now time.Time)

	// TaskCount returns the number of registered (not necessarily active)
	// tasks.
	//
	// Returns:
	//   - int: the registered task count
	TaskCount() int
}

// Task is a recurring job handle. Tasks start inactive; Run arms them and
// Stop disarms them, any number of times. Cancel removes the task from its
// scheduler for good.
type Task interface {
	// Run arms the task to fire once per period. Calling Run on an active
	// task re-arms it with the new period and restarts the countdown.
	//
	// Parameters:
	//   - period: the interval between firings (clamped to at least 1ms)
	Run(period time.Duration)

	// Stop disarms the task. Safe to call on an inactive or cancelled task.
	Stop()

	// IsActive reports whether the task is currently armed.
	//
	// Returns:
	//   - bool: true if the task will fire on upcoming ticks
	IsActive() bool

	// Period returns the interval the task was last armed with.
	//
	// Returns:
	//   - time.Duration: the firing interval, zero if never armed
	Period() time.Duration

	// Cancel stops the task and unregisters it from its scheduler. A
	// cancelled task ignores further Run calls.
	Cancel()
}

var _ Scheduler = &schedulerImpl{}

type schedulerImpl struct {
	mu    *sync.Mutex
	tasks []*taskImpl
}

// NewScheduler creates an empty task scheduler.
//
// Returns:
//   - Scheduler: the new scheduler
func NewScheduler() Scheduler {
	return &schedulerImpl{
		mu: &sync.Mutex{},
	}
}

func (s *schedulerImpl) NewTask(fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &taskImpl{
		mu:        &sync.Mutex{},
		scheduler: s,
		fn:        fn,
	}
	s.tasks = append(s.tasks, t)
	return t
}

func (s *schedulerImpl) Tick(now time.Time) {
	s.mu.Lock()
	due := make([]*taskImpl, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.due(now) {
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	// Callbacks run outside the scheduler lock so they can register, arm or
	// cancel tasks.
	for _, t := range due {
		t.fire()
	}
}

func (s *schedulerImpl) TaskCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *schedulerImpl) remove(task *taskImpl) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t == task {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

var _ Task = &taskImpl{}

type taskImpl struct {
	mu        *sync.Mutex
	scheduler *schedulerImpl
	fn        func()

	active    bool
	cancelled bool
	period    time.Duration
	nextFire  time.Time
}

func (t *taskImpl) Run(period time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return
	}
	if period < time.Millisecond {
		period = time.Millisecond
	}
	t.active = true
	t.period = period
	t.nextFire = time.Time{}
}

func (t *taskImpl) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.active = false
}

func (t *taskImpl) IsActive() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *taskImpl) Period() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.period
}

func (t *taskImpl) Cancel() {
	t.mu.Lock()
	t.active = false
	t.cancelled = true
	s := t.scheduler
	t.mu.Unlock()
	if s != nil {
		s.remove(t)
	}
}

// due reports whether the task should fire at the given instant and, if so,
// advances its deadline.
func (t *taskImpl) due(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return false
	}
	if t.nextFire.IsZero() {
		// First tick after arming: fire immediately.
		t.nextFire = now.Add(t.period)
		return true
	}
	if now.Before(t.nextFire) {
		return false
	}
	t.nextFire = now.Add(t.period)
	return true
}

func (t *taskImpl) fire() {
	t.mu.Lock()
	fn := t.fn
	active := t.active
	t.mu.Unlock()
	if active && fn != nil {
		fn()
	}
}
