package lifecycle

import "fmt"

// Phase is the lifecycle phase of the current load cycle.
type Phase int

const (
	// PhaseIdle means no completion has started for the current source.
	PhaseIdle Phase = iota
	// PhaseAwaitingDecode means a completion started and waits for decode
	// readiness.
	PhaseAwaitingDecode
	// PhaseSettled means the completion fired. It is terminal for the
	// recorded source.
	PhaseSettled
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingDecode:
		return "awaiting_decode"
	case PhaseSettled:
		return "settled"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// LoadState is the per-instance load record. It only changes through
// BeginLoad, Settle and Reset.
type LoadState struct {
	Phase Phase
	// Marker is the last source a completion was started for. It is only
	// meaningful when Marked is set.
	Marker string
	Marked bool
	// Cycle counts the completions started. The decode continuation of a
	// completion carries the value BeginLoad returned.
	Cycle int
}

// BeginLoad starts a completion for src. It returns ok=false, leaving s
// unchanged, when a completion was already started for src. Otherwise the
// marker is recorded immediately, before any asynchronous work.
func BeginLoad(s LoadState, src string) (next LoadState, ok bool) {
	if s.Marked && s.Marker == src {
		return s, false
	}
	return LoadState{Phase: PhaseAwaitingDecode, Marker: src, Marked: true, Cycle: s.Cycle + 1}, true
}

// Reset returns the idle record for a newly bound element. Cycle keeps
// counting so that continuations started for an earlier element never match
// a cycle of the new one.
func Reset(s LoadState) LoadState {
	return LoadState{Cycle: s.Cycle}
}

// Settle finishes the completion started as cycle and reports whether it
// fires. The current cycle moves to PhaseSettled. An older cycle, whose
// source was replaced while its decode was pending, still fires but leaves
// s untouched. Cycles s has never started, or a current cycle that already
// settled, do not fire.
func Settle(s LoadState, cycle int) (next LoadState, ok bool) {
	switch {
	case cycle <= 0 || cycle > s.Cycle:
		return s, false
	case cycle < s.Cycle:
		return s, true
	case s.Phase != PhaseAwaitingDecode:
		return s, false
	}
	s.Phase = PhaseSettled
	return s, true
}
