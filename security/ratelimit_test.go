package security

import (
	"fmt"
	"log/slog"
	"testing"
	"time"
)

func TestNewRateLimiter(t *testing.T) {
	rl := NewRateLimiter(10, 20, nil)
	defer rl.Stop()

	if rl.rate != 10 {
		t.Errorf("rate = %d, want 10", rl.rate)
	}
	if rl.burst != 20 {
		t.Errorf("burst = %d, want 20", rl.burst)
	}
	if rl.logger == nil {
		t.Error("logger should not be nil")
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(10, 5, slog.Default())
	defer rl.Stop()

	identifier := "203.0.113.7"

	// Requests up to the burst should be allowed
	for i := 0; i < 5; i++ {
		if !rl.Allow(identifier) {
			t.Errorf("Allow() request %d should be allowed", i+1)
		}
	}

	// Next request should be rate limited
	if rl.Allow(identifier) {
		t.Error("Allow() should return false when rate limited")
	}
}

func TestRateLimiter_Allow_MultipleIdentifiers(t *testing.T) {
	rl := NewRateLimiter(10, 2, slog.Default())
	defer rl.Stop()

	// Exhaust limit for the first identifier
	for i := 0; i < 2; i++ {
		if !rl.Allow("203.0.113.1") {
			t.Errorf("Allow() request %d should be allowed", i+1)
		}
	}
	if rl.Allow("203.0.113.1") {
		t.Error("Allow() should return false when rate limited")
	}

	// A different identifier keeps its own bucket
	if !rl.Allow("203.0.113.2") {
		t.Error("Allow() should allow a fresh identifier")
	}
}

func TestRateLimiter_LRUEviction(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 10, 3, slog.Default())
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		rl.Allow(fmt.Sprintf("203.0.113.%d", i))
	}

	stats := rl.GetStats()
	if stats.CurrentEntries != 3 {
		t.Errorf("CurrentEntries = %d, want 3 after eviction", stats.CurrentEntries)
	}
	if stats.TotalEvictions != 2 {
		t.Errorf("TotalEvictions = %d, want 2", stats.TotalEvictions)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(10, 5, slog.Default())
	defer rl.Stop()

	rl.Allow("203.0.113.1")
	rl.Allow("203.0.113.2")

	// Nothing is idle yet
	rl.Cleanup(time.Minute)
	if got := rl.GetStats().CurrentEntries; got != 2 {
		t.Errorf("CurrentEntries = %d, want 2 before idle window passes", got)
	}

	// Everything is idle relative to a zero window
	rl.Cleanup(0)
	if got := rl.GetStats().CurrentEntries; got != 0 {
		t.Errorf("CurrentEntries = %d, want 0 after cleanup", got)
	}
}

func TestRateLimiter_GetStats_MemoryPressure(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 10, 4, slog.Default())
	defer rl.Stop()

	rl.Allow("203.0.113.1")
	rl.Allow("203.0.113.2")

	stats := rl.GetStats()
	if stats.MemoryPressure != 50 {
		t.Errorf("MemoryPressure = %v, want 50", stats.MemoryPressure)
	}
}
