package entitlement

import (
	"sync"
	"time"
)

// Scheduler drives the one-second Advance tick of active sessions. Each
// tracked session owns exactly one goroutine; Stop cancels it, so a torn
// down session can never be mutated by a stale timer.
type Scheduler struct {
	svc      Service
	interval time.Duration

	mu      sync.Mutex
	cancels map[string]chan struct{}
}

// NewScheduler creates a scheduler ticking at the given interval. A zero
// interval falls back to DefaultTickInterval.
func NewScheduler(svc Service, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Scheduler{
		svc:      svc,
		interval: interval,
		cancels:  make(map[string]chan struct{}),
	}
}

// Track starts ticking the session. Tracking an already tracked session is
// a no-op.
func (s *Scheduler) Track(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cancels[sessionID]; ok {
		return
	}
	stop := make(chan struct{})
	s.cancels[sessionID] = stop

	go s.run(sessionID, stop)
}

func (s *Scheduler) run(sessionID string, stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, ok := s.svc.Advance(sessionID); !ok {
				// Session is gone; stop ticking it.
				s.untrack(sessionID)
				return
			}
		}
	}
}

// Stop cancels the session's timer. Unknown sessions are ignored.
func (s *Scheduler) Stop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stop, ok := s.cancels[sessionID]; ok {
		close(stop)
		delete(s.cancels, sessionID)
	}
}

// StopAll cancels every tracked timer. Used on shutdown.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, stop := range s.cancels {
		close(stop)
		delete(s.cancels, id)
	}
}

func (s *Scheduler) untrack(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cancels, sessionID)
}
