package services

import (
	"testing"
	"time"
)

func TestCooldownSecondsForFailCount(t *testing.T) {
	tests := []struct {
		failCount int
		want      int
	}{
		{0, 1},   // 2^0=1
		{1, 2},   // 2^1=2
		{2, 4},   // 2^2=4
		{3, 8},   // 2^3=8
		{4, 16},  // 2^4=16
		{5, 30},  // 2^5=32 -> cap 30
		{6, 30},  // 2^6=64 -> cap 30
		{10, 30}, // cap 30
	}
	for _, tt := range tests {
		got := CooldownSecondsForFailCount(tt.failCount)
		if got != tt.want {
			t.Errorf("CooldownSecondsForFailCount(%d) = %d, want %d", tt.failCount, got, tt.want)
		}
	}
}

func TestLoginThrottle(t *testing.T) {
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	th := NewLoginThrottle()
	th.now = func() time.Time { return clock }
	const user int64 = 999999997

	if wait := th.WaitSeconds(user); wait != 0 {
		t.Fatalf("fresh user: wait = %d, want 0", wait)
	}

	// 1) Failed attempt sets a 2s cooldown
	th.RecordFailed(user)
	if wait := th.WaitSeconds(user); wait <= 0 || wait > 3 {
		t.Errorf("after one fail: wait = %d, want in (0, 3]", wait)
	}

	// 2) After the cooldown expires wait becomes 0
	clock = clock.Add(3 * time.Second)
	if wait := th.WaitSeconds(user); wait != 0 {
		t.Errorf("after cooldown expired: wait = %d, want 0", wait)
	}

	// 3) Cooldown caps at 30s
	for i := 0; i < 8; i++ {
		th.RecordFailed(user)
	}
	if wait := th.WaitSeconds(user); wait > 31 {
		t.Errorf("after many fails: wait = %d, want <= 31", wait)
	}

	// 4) Success resets
	th.RecordSuccess(user)
	if wait := th.WaitSeconds(user); wait != 0 {
		t.Errorf("after success: wait = %d, want 0", wait)
	}

	// Other users are unaffected
	if wait := th.WaitSeconds(user + 1); wait != 0 {
		t.Errorf("other user: wait = %d, want 0", wait)
	}
}
