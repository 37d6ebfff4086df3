package tide

import (
	"reflect"
	"testing"
	"time"
)

func TestBatch(t *testing.T) {
	a := func() Msg { return "a" }
	b := func() Msg { return "b" }

	if Batch() != nil {
		t.Error("Batch() should be nil")
	}
	if Batch(nil, nil) != nil {
		t.Error("Batch(nil, nil) should be nil")
	}
	if got := Batch(nil, a); got == nil || got() != "a" {
		t.Error("Batch with one command should return that command")
	}

	msg := Batch(a, nil, b)()
	batch, ok := msg.(BatchMsg)
	if !ok {
		t.Fatalf("Batch(a, nil, b)() = %T, want BatchMsg", msg)
	}
	if len(batch) != 2 {
		t.Fatalf("batch has %d commands, want 2", len(batch))
	}
	if batch[0]() != "a" || batch[1]() != "b" {
		t.Error("batch lost command order")
	}
}

func TestReservedCommands(t *testing.T) {
	tests := []struct {
		name string
		cmd  Cmd
		want Msg
	}{
		{"quit", Quit, QuitMsg{}},
		{"enter alt screen", EnterAltScreen, EnterAltScreenMsg{}},
		{"exit alt screen", ExitAltScreen, ExitAltScreenMsg{}},
		{"clear screen", ClearScreen, ClearScreenMsg{}},
	}
	for _, tt := range tests {
		if got := tt.cmd(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: got %#v, want %#v", tt.name, got, tt.want)
		}
	}
}

func TestTick(t *testing.T) {
	type tickMsg time.Time

	start := time.Now()
	msg := Tick(15*time.Millisecond, func(t time.Time) Msg {
		return tickMsg(t)
	})()

	fired, ok := msg.(tickMsg)
	if !ok {
		t.Fatalf("Tick returned %T", msg)
	}
	if time.Time(fired).Sub(start) < 15*time.Millisecond {
		t.Errorf("Tick fired after %s", time.Time(fired).Sub(start))
	}
}
