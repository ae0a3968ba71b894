package engine

import "testing"

func TestCooldownTracker(t *testing.T) {
	cds := NewCooldownTracker()

	if cds.IsOnCooldown("fireball", 0) {
		t.Fatalf("unseen ability must not be on cooldown")
	}

	cds.SetOnCooldown("fireball", 8, 10)
	if !cds.IsOnCooldown("fireball", 17.9) {
		t.Fatalf("expected fireball on cooldown before 18s")
	}
	if cds.IsOnCooldown("fireball", 18) {
		t.Fatalf("expected fireball ready at exactly 18s")
	}
	if got := cds.Remaining("fireball", 12); got != 6 {
		t.Fatalf("expected 6s remaining, got %v", got)
	}
	if got := cds.Remaining("fireball", 20); got != 0 {
		t.Fatalf("expected 0s remaining after expiry, got %v", got)
	}

	cds.Reset()
	if cds.IsOnCooldown("fireball", 10.1) {
		t.Fatalf("expected reset to clear all cooldowns")
	}
}
