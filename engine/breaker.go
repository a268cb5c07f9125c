package engine

import (
	"sync"
	"time"

	"github.com/evdnx/gosb/metrics"
	"github.com/evdnx/gosb/types"
)

// Breaker tracks consecutive losing closes and pauses new opens once the
// streak reaches its threshold. The streak counter is not reset by entering
// a pause, only by a win, so persistent losses re-trigger the pause as soon
// as the window elapses.
type Breaker struct {
	mu        sync.Mutex
	threshold int
	pause     time.Duration

	losses     int
	pauseUntil time.Time
}

func NewBreaker(threshold int, pause time.Duration) *Breaker {
	return &Breaker{threshold: threshold, pause: pause}
}

// Record feeds one trade resolution into the streak.
func (b *Breaker) Record(result types.Result, now time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if result == types.Win {
		b.losses = 0
		return
	}
	b.losses++
	if b.losses >= b.threshold {
		b.pauseUntil = now.Add(b.pause)
	}
}

// Paused reports whether the open transition is currently blocked.
// Exit evaluation is never gated on this.
func (b *Breaker) Paused(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	paused := now.Before(b.pauseUntil)
	if paused {
		metrics.BreakerPaused.Set(1)
	} else {
		metrics.BreakerPaused.Set(0)
	}
	return paused
}

// Losses returns the current streak length.
func (b *Breaker) Losses() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.losses
}

// PauseUntil returns the end of the active pause window, zero if none was
// ever triggered.
func (b *Breaker) PauseUntil() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pauseUntil
}
