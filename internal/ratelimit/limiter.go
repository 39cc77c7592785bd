package ratelimit

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"sync"
	"time"

	"github.com/faideww/luckymon/internal/clock"
)

// Limiter hands out per-key cooldowns with a random length between min
// and max.
type Limiter struct {
	mu   sync.Mutex
	next map[string]time.Time
	min  time.Duration
	max  time.Duration
	clk  clock.Clock
	rng  *mrand.Rand
}

func NewLimiter(min, max time.Duration, clk clock.Clock) *Limiter {
	if clk == nil {
		clk = clock.Real{}
	}
	if max < min {
		max = min
	}

	seed := func() int64 {
		var b [8]byte
		if _, err := rand.Read(b[:]); err == nil {
			return int64(binary.LittleEndian.Uint64(b[:]))
		}
		return time.Now().UnixNano()
	}()

	return &Limiter{
		next: make(map[string]time.Time),
		min:  min,
		max:  max,
		clk:  clk,
		rng:  mrand.New(mrand.NewSource(seed)),
	}
}

// TryKey reports whether key may run now. When it may not, the remaining
// cooldown is returned.
func (l *Limiter) TryKey(key string) (bool, time.Duration) {
	now := l.clk.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if until, ok := l.next[key]; ok && now.Before(until) {
		return false, until.Sub(now)
	}

	l.next[key] = now.Add(l.nextCooldown())
	return true, 0
}

// Try applies the cooldown to one user within a command.
func (l *Limiter) Try(command, userId string) (bool, time.Duration) {
	return l.TryKey(command + ":" + userId)
}

func (l *Limiter) nextCooldown() time.Duration {
	if l.min == l.max {
		return l.min
	}
	span := l.max - l.min

	jitter := time.Duration(l.rng.Int63n(int64(span)))
	return l.min + jitter
}

func (l *Limiter) Reset(command, userId string) {
	l.mu.Lock()
	delete(l.next, command+":"+userId)
	l.mu.Unlock()
}
