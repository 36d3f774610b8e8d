package state

import (
	"testing"
)

func TestMachine_InitialStatus(t *testing.T) {
	m := NewMachine()

	if m.Current() != StatusWaiting {
		t.Errorf("Expected initial status %s, got %s", StatusWaiting, m.Current())
	}
	if !m.Is(StatusWaiting) {
		t.Error("Is(StatusWaiting) should be true on a fresh machine")
	}
}

func TestMachine_AllowedTransition(t *testing.T) {
	m := NewMachine()

	if err := m.Transition(StatusPlaying); err != nil {
		t.Fatalf("waiting -> playing should be allowed, got: %v", err)
	}
	if m.Current() != StatusPlaying {
		t.Errorf("Expected status %s, got %s", StatusPlaying, m.Current())
	}

	if err := m.Transition(StatusWaiting); err != nil {
		t.Fatalf("playing -> waiting should be allowed, got: %v", err)
	}
}

func TestMachine_RestartWhilePlaying(t *testing.T) {
	m := NewMachine()
	m.Force(StatusPlaying)

	// 房主可以在一轮进行中直接重开一轮
	if err := m.Transition(StatusPlaying); err != nil {
		t.Errorf("playing -> playing should be allowed, got: %v", err)
	}
}

func TestMachine_BlockedTransition(t *testing.T) {
	m := NewMachine()

	err := m.Transition(StatusSetup)
	if err != ErrTransitionNotAllowed {
		t.Errorf("Expected ErrTransitionNotAllowed, got: %v", err)
	}
	if m.Current() != StatusWaiting {
		t.Errorf("Status should remain %s after a blocked transition, got %s", StatusWaiting, m.Current())
	}
}

func TestMachine_Force(t *testing.T) {
	m := NewMachine()
	m.Force(StatusPlaying)

	// requestReplay 在任何状态下都能回到 setup
	m.Force(StatusSetup)
	if m.Current() != StatusSetup {
		t.Errorf("Expected status %s after Force, got %s", StatusSetup, m.Current())
	}

	if err := m.Transition(StatusPlaying); err != nil {
		t.Errorf("setup -> playing should be allowed, got: %v", err)
	}
}
