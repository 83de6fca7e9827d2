package mode

import "testing"

func TestTracker_InitialMode(t *testing.T) {
	tr := NewTracker(Mode{Kind: "EMPTY"})

	if got := tr.Mode().Kind; got != "EMPTY" {
		t.Errorf("Mode().Kind = %q, want %q", got, "EMPTY")
	}
	if tr.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", tr.Depth())
	}
}

func TestTracker_TransitionPushes(t *testing.T) {
	tr := NewTracker(Mode{Kind: "EMPTY"})
	tr.Transition(Mode{Kind: "CREATE"}, false)

	if !tr.Is("CREATE") {
		t.Errorf("current mode = %q, want CREATE", tr.Mode().Kind)
	}
	if tr.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", tr.Depth())
	}
}

func TestTracker_BackRestoresPrevious(t *testing.T) {
	tr := NewTracker(Mode{Kind: "EMPTY"})
	tr.Transition(Mode{Kind: "CREATE"}, false)
	tr.Back()

	if !tr.Is("EMPTY") {
		t.Errorf("current mode = %q, want EMPTY", tr.Mode().Kind)
	}
	if tr.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", tr.Depth())
	}
}

func TestTracker_BackAtInitialIsNoop(t *testing.T) {
	tr := NewTracker(Mode{Kind: "EMPTY"})
	tr.Back()
	tr.Back()

	if !tr.Is("EMPTY") {
		t.Errorf("current mode = %q, want EMPTY", tr.Mode().Kind)
	}
	if tr.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", tr.Depth())
	}
}

// Replacing an in-flight mode means a later Back skips it: from an error mode
// the user lands on the mode that preceded the in-flight one, with its form
// input intact.
func TestTracker_ReplaceThenBackSkipsReplacedEntry(t *testing.T) {
	tr := NewTracker(Mode{Kind: "EMPTY"})
	tr.Transition(Mode{Kind: "CREATE"}, false)
	tr.Transition(Mode{Kind: "SAVING"}, true)

	if !tr.Is("SAVING") {
		t.Fatalf("current mode = %q, want SAVING", tr.Mode().Kind)
	}
	if tr.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2 after replace", tr.Depth())
	}

	tr.Back()
	if !tr.Is("EMPTY") {
		t.Errorf("after Back, mode = %q, want EMPTY (not CREATE)", tr.Mode().Kind)
	}
}

func TestTracker_ErrorAfterReplacedSaving(t *testing.T) {
	// EMPTY -> CREATE -> SAVING (replace) -> ERROR_SAVE (replace), then Back:
	// the user returns to CREATE, never to SAVING.
	tr := NewTracker(Mode{Kind: "EMPTY"})
	tr.Transition(Mode{Kind: "CREATE"}, false)
	tr.Transition(Mode{Kind: "SAVING"}, true)
	tr.Transition(Mode{Kind: "ERROR_SAVE", DisplayText: "could not save"}, true)

	if got := tr.Mode().DisplayText; got != "could not save" {
		t.Errorf("DisplayText = %q, want %q", got, "could not save")
	}

	tr.Back()
	if !tr.Is("CREATE") {
		t.Errorf("after Back, mode = %q, want CREATE", tr.Mode().Kind)
	}
}

func TestTracker_ConfirmThenBack(t *testing.T) {
	tr := NewTracker(Mode{Kind: "SHOW"})
	tr.Transition(Mode{Kind: "CONFIRM"}, false)
	tr.Back()

	if !tr.Is("SHOW") {
		t.Errorf("after Back, mode = %q, want SHOW", tr.Mode().Kind)
	}
}
