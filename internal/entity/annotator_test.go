package entity

import "testing"

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
		{-5, 1},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}

	a := Annotator{XP: 1499}
	if got := a.Level(); got != 3 {
		t.Errorf("Level() = %d, want 3", got)
	}
}
