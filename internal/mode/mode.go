// Package mode implements a generic stack-based visual-mode tracker. Each
// appointment widget owns one Tracker; the tracker itself knows nothing about
// the widget's mode vocabulary.
package mode

// Kind identifies a mode. Callers define their own kinds; the tracker only
// compares them.
type Kind string

// Mode is a tagged mode value. Kind drives branching; DisplayText is what the
// widget renders for the mode (error modes carry their message here, so mode
// identity and presentation stay separate).
type Mode struct {
	Kind        Kind
	DisplayText string
}

// Tracker tracks the current mode of one widget plus a navigable history
// stack. The current mode is always the last element of the history; Back is
// the only operation that shrinks it.
type Tracker struct {
	history []Mode
}

// NewTracker returns a tracker whose current mode and single history entry
// are initial.
func NewTracker(initial Mode) *Tracker {
	return &Tracker{history: []Mode{initial}}
}

// Mode returns the current mode.
func (t *Tracker) Mode() Mode {
	return t.history[len(t.history)-1]
}

// Is reports whether the current mode has the given kind.
func (t *Tracker) Is(k Kind) bool {
	return t.Mode().Kind == k
}

// Transition makes m the current mode. If replace is true the top history
// entry is popped before m is pushed, so a later Back skips the replaced
// entry entirely. Replace is meant for in-flight modes (saving, canceling):
// backing out of a subsequent error returns to the mode that preceded the
// in-flight one.
func (t *Tracker) Transition(m Mode, replace bool) {
	if replace && len(t.history) > 0 {
		t.history = t.history[:len(t.history)-1]
	}
	t.history = append(t.history, m)
}

// Back pops the current mode and restores the previous one. Backing out of
// the initial mode is a no-op.
func (t *Tracker) Back() {
	if len(t.history) <= 1 {
		return
	}
	t.history = t.history[:len(t.history)-1]
}

// Depth returns the current history length.
func (t *Tracker) Depth() int {
	return len(t.history)
}
