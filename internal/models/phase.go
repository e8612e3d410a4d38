package models

// Phase is where "now" falls relative to the shift. It is derived on every tick, never stored.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhasePreShift  Phase = "pre-shift"
	PhaseActive    Phase = "active"
	PhaseJustEnded Phase = "just-ended"
	PhaseCooldown  Phase = "cooldown"
	PhaseExpired   Phase = "expired"
)

// Ended reports whether the shift is over
func (p Phase) Ended() bool {
	return p == PhaseJustEnded || p == PhaseCooldown || p == PhaseExpired
}
