package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionStart) {
		t.Error("zero frame should have no actions")
	}

	f.Set(ActionStart)
	f.Set(ActionLeft)
	if !f.Has(ActionStart) || !f.Has(ActionLeft) || len(f.Actions) != 2 {
		t.Errorf("frame = %v, expected Start and Left", f.Actions)
	}

	f.Clear()
	if f.Has(ActionStart) || len(f.Actions) != 0 {
		t.Error("Clear should remove all actions")
	}
}

func TestActionString(t *testing.T) {
	if ActionRestart.String() != "Restart" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}

func TestTickMillis(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TickMillis(); got < 16.6 || got > 16.7 {
		t.Errorf("TickMillis() = %f at 60 ticks/s", got)
	}
	cfg.TickRate = 0
	if got := cfg.TickMillis(); got < 16.6 || got > 16.7 {
		t.Errorf("TickMillis() = %f with zero tick rate, expected 60 ticks/s fallback", got)
	}
}
