package security

import (
	"fmt"
	"log/slog"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(1, 2, slog.Default())
	defer rl.Stop()

	// Burst of 2 allowed, third immediate request denied.
	if !rl.Allow("1.2.3.4") {
		t.Error("first request denied")
	}
	if !rl.Allow("1.2.3.4") {
		t.Error("second request denied (burst=2)")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third immediate request allowed")
	}

	// A different identifier has its own bucket.
	if !rl.Allow("5.6.7.8") {
		t.Error("independent identifier denied")
	}
}

func TestRateLimiterZeroRateDisables(t *testing.T) {
	rl := NewRateLimiter(0, 0, slog.Default())
	defer rl.Stop()

	for i := 0; i < 100; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatal("zero rate must disable limiting")
		}
	}
}

func TestRateLimiterNilSafe(t *testing.T) {
	var rl *RateLimiter
	if !rl.Allow("1.2.3.4") {
		t.Error("nil limiter must allow")
	}
}

func TestRateLimiterLRUEviction(t *testing.T) {
	rl := NewRateLimiterWithConfig(100, 100, 3, slog.Default())
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		rl.Allow(fmt.Sprintf("10.0.0.%d", i))
	}

	stats := rl.GetStats()
	if stats.CurrentEntries > 3 {
		t.Errorf("entries = %d, want <= 3", stats.CurrentEntries)
	}
	if stats.TotalEvictions != 2 {
		t.Errorf("evictions = %d, want 2", stats.TotalEvictions)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	rl := NewRateLimiter(10, 10, slog.Default())
	defer rl.Stop()

	rl.Allow("1.1.1.1")
	rl.Allow("2.2.2.2")

	time.Sleep(time.Millisecond)
	rl.Cleanup(0) // everything is idle relative to a zero max-idle

	if got := rl.GetStats().CurrentEntries; got != 0 {
		t.Errorf("entries after cleanup = %d, want 0", got)
	}
}
