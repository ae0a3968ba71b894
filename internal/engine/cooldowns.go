package engine

// CooldownTracker maps ability id to the simulated time it becomes
// available again. Cooldowns never persist across battles; a fresh
// tracker (or Reset) accompanies every simulation.
type CooldownTracker struct {
	readyAt map[string]float64
}

func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{readyAt: make(map[string]float64)}
}

func (t *CooldownTracker) SetOnCooldown(abilityID string, duration, now float64) {
	t.readyAt[abilityID] = now + duration
}

// IsOnCooldown reports whether the ability is unavailable at now. An
// ability the tracker has never seen is never on cooldown.
func (t *CooldownTracker) IsOnCooldown(abilityID string, now float64) bool {
	ready, ok := t.readyAt[abilityID]
	return ok && now < ready
}

// Remaining returns the seconds until the ability is available, zero if ready.
func (t *CooldownTracker) Remaining(abilityID string, now float64) float64 {
	ready, ok := t.readyAt[abilityID]
	if !ok || now >= ready {
		return 0
	}
	return ready - now
}

func (t *CooldownTracker) Reset() {
	t.readyAt = make(map[string]float64)
}
