package utils

import (
	"sync"
	"time"

	"github.com/bots-empire/campaign-bot/internal/model"
)

// Spreader serves update handlers and keeps a per-window served counter,
// so bursts of updates can be seen in the logs and metrics.
type Spreader struct {
	mu sync.Mutex

	window      time.Duration
	windowStart time.Time
	served      int
}

func NewSpreader(window time.Duration) *Spreader {
	return &Spreader{
		window:      window,
		windowStart: time.Now(),
	}
}

func (s *Spreader) ServeHandler(handler model.Handler, situation *model.Situation, errFunc func(err error)) {
	s.trackServe()

	situation.StartTime = time.Now()
	if err := handler(situation); err != nil {
		errFunc(err)
	}
}

func (s *Spreader) trackServe() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if time.Since(s.windowStart) > s.window {
		s.windowStart = time.Now()
		s.served = 0
	}
	s.served++
}

// ServedInWindow reports how many handlers ran in the current window.
func (s *Spreader) ServedInWindow() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.served
}
