package controller

import "testing"

func TestParamStack(t *testing.T) {
	def := Params{MaxSpeed: 5}
	over := Params{MaxSpeed: 9}

	t.Run("default_active_when_empty", func(t *testing.T) {
		s := paramStack{def: def}
		if got := s.active(); got.MaxSpeed != 5 {
			t.Fatalf("expected default active, got max speed %v", got.MaxSpeed)
		}
	})

	t.Run("push_pop_restores_default", func(t *testing.T) {
		s := paramStack{def: def}
		s.push(over)
		if got := s.active(); got.MaxSpeed != 9 {
			t.Fatalf("expected override active, got %v", got.MaxSpeed)
		}
		if !s.pop() {
			t.Fatal("pop should succeed with one override pushed")
		}
		if got := s.active(); got.MaxSpeed != 5 {
			t.Fatalf("expected default restored, got %v", got.MaxSpeed)
		}
	})

	t.Run("pop_past_empty_is_noop", func(t *testing.T) {
		s := paramStack{def: def}
		if s.pop() {
			t.Fatal("pop on empty stack should report false")
		}
		if got := s.active(); got.MaxSpeed != 5 {
			t.Fatalf("default should survive empty pops, got %v", got.MaxSpeed)
		}
	})

	t.Run("copy_on_push", func(t *testing.T) {
		s := paramStack{def: def}
		p := Params{MaxSpeed: 3}
		s.push(p)
		p.MaxSpeed = 99
		if got := s.active(); got.MaxSpeed != 3 {
			t.Fatalf("pushed set should be a copy, got %v", got.MaxSpeed)
		}
	})

	t.Run("clear_drops_all_overrides", func(t *testing.T) {
		s := paramStack{def: def}
		s.push(over)
		s.push(Params{MaxSpeed: 12})
		s.clear()
		if s.depth() != 0 {
			t.Fatalf("expected empty stack, depth %d", s.depth())
		}
		if got := s.active(); got.MaxSpeed != 5 {
			t.Fatalf("expected default after clear, got %v", got.MaxSpeed)
		}
	})
}

func TestParseEnums(t *testing.T) {
	t.Run("movement_control", func(t *testing.T) {
		cases := []struct {
			in      string
			want    MovementControl
			wantErr bool
		}{
			{"none", MovementControlNone, false},
			{"horizontal", MovementControlHorizontal, false},
			{"vertical", MovementControlVertical, false},
			{"both", MovementControlBoth, false},
			{"", MovementControlBoth, false},
			{"diagonal", 0, true},
		}
		for _, c := range cases {
			got, err := ParseMovementControl(c.in)
			if c.wantErr != (err != nil) {
				t.Fatalf("ParseMovementControl(%q) err = %v, want err %v", c.in, err, c.wantErr)
			}
			if err == nil && got != c.want {
				t.Fatalf("ParseMovementControl(%q) = %v, want %v", c.in, got, c.want)
			}
		}
	})

	t.Run("movement_behaviour", func(t *testing.T) {
		if _, err := ParseMovementBehaviour("sometimes"); err == nil {
			t.Fatal("expected error for unknown behaviour")
		}
		got, err := ParseMovementBehaviour("cant_move_sliding")
		if err != nil || got != CantMoveSliding {
			t.Fatalf("got %v err %v", got, err)
		}
	})

	t.Run("jump_behaviour", func(t *testing.T) {
		if _, err := ParseJumpBehaviour("double"); err == nil {
			t.Fatal("expected error for unknown behaviour")
		}
		got, err := ParseJumpBehaviour("sliding")
		if err != nil || got != CanJumpSliding {
			t.Fatalf("got %v err %v", got, err)
		}
	})
}
