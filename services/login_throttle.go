package services

import (
	"math"
	"sync"
	"time"
)

const ThrottleCooldownCapSeconds = 30

type throttleEntry struct {
	failCount     int
	cooldownUntil time.Time
}

// LoginThrottle slows down password guessing against the admin bot. Each failed
// attempt sets a cooldown of min(30, 2^failCount) seconds; a success resets it.
type LoginThrottle struct {
	mu      sync.Mutex
	entries map[int64]*throttleEntry
	now     func() time.Time
}

func NewLoginThrottle() *LoginThrottle {
	return &LoginThrottle{entries: make(map[int64]*throttleEntry), now: time.Now}
}

// WaitSeconds returns how many seconds the user must wait before trying again (0 if no cooldown).
func (t *LoginThrottle) WaitSeconds(userID int64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entries[userID]
	if e == nil {
		return 0
	}
	now := t.now()
	if now.Before(e.cooldownUntil) {
		return int(e.cooldownUntil.Sub(now).Seconds()) + 1 // round up
	}
	return 0
}

// RecordFailed increments the fail count and starts the next cooldown.
func (t *LoginThrottle) RecordFailed(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entries[userID]
	if e == nil {
		e = &throttleEntry{}
		t.entries[userID] = e
	}
	e.failCount++
	e.cooldownUntil = t.now().Add(time.Duration(CooldownSecondsForFailCount(e.failCount)) * time.Second)
}

// RecordSuccess forgets earlier failures for the user.
func (t *LoginThrottle) RecordSuccess(userID int64) {
	t.mu.Lock()
	delete(t.entries, userID)
	t.mu.Unlock()
}

// CooldownSecondsForFailCount returns min(30, 2^failCount).
func CooldownSecondsForFailCount(failCount int) int {
	s := int(math.Pow(2, float64(failCount)))
	if s > ThrottleCooldownCapSeconds {
		return ThrottleCooldownCapSeconds
	}
	return s
}
