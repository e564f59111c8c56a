package services

import (
	"testing"
	"time"
)

func TestSessionExpiresAfterInactivity(t *testing.T) {
	reg := NewSessionRegistry(30 * time.Minute)
	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return clock }

	reg.Start("u1")
	if !reg.Active("u1") {
		t.Fatal("fresh session should be active")
	}

	clock = clock.Add(29 * time.Minute)
	if !reg.Touch("u1") {
		t.Fatal("touch inside the window should succeed")
	}

	// Touch reset the window; another 29 minutes is still fine.
	clock = clock.Add(29 * time.Minute)
	if !reg.Touch("u1") {
		t.Fatal("touch after reset should succeed")
	}

	clock = clock.Add(31 * time.Minute)
	if reg.Touch("u1") {
		t.Fatal("session should have expired after 31 idle minutes")
	}
	if reg.Active("u1") {
		t.Fatal("expired session must not report active")
	}
}

func TestSessionEndAndUnknownUser(t *testing.T) {
	reg := NewSessionRegistry(0) // falls back to the default timeout
	reg.Start("u1")
	reg.End("u1")
	if reg.Touch("u1") {
		t.Fatal("ended session should not touch")
	}
	if reg.Touch("nobody") {
		t.Fatal("unknown user should not touch")
	}
}
