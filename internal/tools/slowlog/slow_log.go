// Package slowlog times the steps behind a page, mostly remote fetches and cache reads,
// so a slow page can be traced to the call that held it up.
package slowlog

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SlowStep is the duration from which a step is reported at warn level.
const SlowStep = 800 * time.Millisecond

// Logger times named page steps such as "browse.cars" or "detail.compose".
type Logger interface {
	Start(step string)
	Stop(step string) time.Duration
	Track(step string) func()
}

type stepTimer struct {
	mu      sync.Mutex
	log     *zerolog.Logger
	slow    time.Duration
	started map[string]time.Time
}

// Start restarts the step when it is already running.
func (s *stepTimer) Start(step string) {
	s.mu.Lock()
	s.started[step] = time.Now()
	s.mu.Unlock()
}

// Stop reports the step and returns its duration. A step that was never started yields zero.
func (s *stepTimer) Stop(step string) time.Duration {
	s.mu.Lock()
	start, ok := s.started[step]
	delete(s.started, step)
	s.mu.Unlock()

	if !ok {
		return 0
	}

	elapsed := time.Since(start)

	event := s.log.Debug()
	if elapsed >= s.slow {
		event = s.log.Warn().Bool("slow", true)
	}
	event.
		Str("step", step).
		Int64("elapsed_ms", elapsed.Milliseconds()).
		Msg("page step finished")

	return elapsed
}

func (s *stepTimer) Track(step string) func() {
	s.Start(step)
	return func() {
		s.Stop(step)
	}
}

func CreateLogger(log *zerolog.Logger) *stepTimer {
	logger := log.With().Str("label", "page_timing").Logger()
	return &stepTimer{
		log:     &logger,
		slow:    SlowStep,
		started: make(map[string]time.Time),
	}
}
