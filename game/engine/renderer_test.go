package engine

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		kind, direction string
		expected        Command
		wantErr         bool
	}{
		{"pause", "", Command{Kind: CommandPause}, false},
		{"RESUME", "", Command{Kind: CommandResume}, false},
		{"direction", "left", DirectionCommand(Left), false},
		{"right", "", DirectionCommand(Right), false},
		{"direction", "sideways", Command{}, true},
		{"jump", "", Command{}, true},
	}

	for _, tt := range tests {
		got, err := ParseCommand(tt.kind, tt.direction)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCommand(%q, %q): expected error", tt.kind, tt.direction)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCommand(%q, %q): unexpected error %v", tt.kind, tt.direction, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseCommand(%q, %q): expected %+v, got %+v", tt.kind, tt.direction, tt.expected, got)
		}
	}

	if _, err := ParseCommand("jump", ""); !errors.Is(err, ErrInvalidCommand) {
		t.Errorf("Expected ErrInvalidCommand, got %v", err)
	}
}

func TestMultiRenderer(t *testing.T) {
	a := &recordingRenderer{}
	b := &recordingRenderer{}
	multi := MultiRenderer{a, NopRenderer{}, b}

	multi.OnSquareAdded(Cell{1, 2}, SquareFood)
	multi.OnSquareRemoved(Cell{1, 2})
	multi.OnFoodExpiring(Cell{3, 4})
	multi.OnGameOver(Outcome{Reason: ReasonEnded})

	want := []string{"add (1,2) food", "remove (1,2)", "expire (3,4)"}
	for name, r := range map[string]*recordingRenderer{"a": a, "b": b} {
		if events := r.take(); !reflect.DeepEqual(events, want) {
			t.Errorf("%s: expected %v, got %v", name, want, events)
		}
		if len(r.outcomes) != 1 {
			t.Errorf("%s: expected game over to be forwarded", name)
		}
	}
}
