package services

import (
	"sync"
	"time"
)

// AutoSaver debounces form persistence per indicator code. Every dirty mark
// resets that code's countdown; when the interval elapses without further
// edits the persist callback fires exactly once. A manual flush persists
// immediately and cancels the pending timer.
type AutoSaver struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	interval time.Duration
	persist  func(code string)
}

func NewAutoSaver(interval time.Duration, persist func(code string)) *AutoSaver {
	return &AutoSaver{
		timers:   map[string]*time.Timer{},
		interval: interval,
		persist:  persist,
	}
}

// MarkDirty schedules (or reschedules) the debounced persist for code.
func (a *AutoSaver) MarkDirty(code string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.timers[code]; ok {
		t.Stop()
	}
	a.timers[code] = time.AfterFunc(a.interval, func() {
		a.mu.Lock()
		delete(a.timers, code)
		a.mu.Unlock()
		a.persist(code)
	})
}

// Flush cancels any pending timer for code and persists immediately.
func (a *AutoSaver) Flush(code string) {
	a.Cancel(code)
	a.persist(code)
}

// Cancel drops the pending timer for code without persisting.
func (a *AutoSaver) Cancel(code string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.timers[code]; ok {
		t.Stop()
		delete(a.timers, code)
	}
}

// Stop cancels every pending timer. Used on shutdown.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for code, t := range a.timers {
		t.Stop()
		delete(a.timers, code)
	}
}
