package components

import "testing"

func TestDirection(t *testing.T) {
	tests := []struct {
		d        Direction
		dx, dy   int
		opposite Direction
	}{
		{Up, 0, -1, Down},
		{Down, 0, 1, Up},
		{Left, -1, 0, Right},
		{Right, 1, 0, Left},
	}
	for _, tc := range tests {
		t.Run(tc.d.String(), func(t *testing.T) {
			dx, dy := tc.d.Delta()
			if dx != tc.dx || dy != tc.dy {
				t.Errorf("Delta = (%d,%d), want (%d,%d)", dx, dy, tc.dx, tc.dy)
			}
			if tc.d.Opposite() != tc.opposite {
				t.Errorf("Opposite = %s, want %s", tc.d.Opposite(), tc.opposite)
			}
			text, _ := tc.d.MarshalText()
			var back Direction
			if err := back.UnmarshalText(text); err != nil || back != tc.d {
				t.Errorf("text round trip gave %s, %v", back, err)
			}
		})
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Error("expected error for unknown direction")
	}
}
