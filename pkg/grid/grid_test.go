package grid

import (
	"math"
	"slices"
	"strconv"
	"testing"
)

func TestCoordRoundTrip(t *testing.T) {
	g := New(3, 4)
	for pos := 1; pos <= g.Size(); pos++ {
		c := g.Coord(pos)
		if !g.InBounds(c.Row, c.Col) {
			t.Fatalf("Coord(%d) = %+v out of bounds", pos, c)
		}
		if got := g.Position(c.Row, c.Col); got != pos {
			t.Errorf("Position(Coord(%d)) = %d", pos, got)
		}
	}
}

func TestCoord(t *testing.T) {
	g := New(2, 3)
	tests := []struct {
		pos  int
		want Coord
	}{
		{1, Coord{0, 0}},
		{3, Coord{0, 2}},
		{4, Coord{1, 0}},
		{6, Coord{1, 2}},
	}
	for _, tt := range tests {
		if got := g.Coord(tt.pos); got != tt.want {
			t.Errorf("Coord(%d) = %+v, want %+v", tt.pos, got, tt.want)
		}
	}
}

func TestManhattan(t *testing.T) {
	g := New(3, 3)
	tests := []struct {
		a, b int
		want int
	}{
		{1, 1, 0},
		{1, 2, 1},
		{1, 9, 4},
		{3, 7, 4},
		{5, 2, 1},
	}
	for _, tt := range tests {
		if got := g.Manhattan(tt.a, tt.b); got != tt.want {
			t.Errorf("Manhattan(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := g.Manhattan(tt.b, tt.a); got != tt.want {
			t.Errorf("Manhattan(%d, %d) not symmetric: %d", tt.b, tt.a, got)
		}
	}
}

func TestNeighbors(t *testing.T) {
	tests := []struct {
		name string
		g    Grid
		pos  int
		want []int
	}{
		{"corner", New(3, 3), 1, []int{2, 4}},
		{"center", New(3, 3), 5, []int{2, 4, 6, 8}},
		{"edge", New(3, 3), 6, []int{3, 5, 9}},
		{"column", New(3, 1), 2, []int{1, 3}},
		{"single", New(1, 1), 1, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.g.Neighbors(tt.pos)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Neighbors(%d) = %v, want %v", tt.pos, got, tt.want)
			}
			for _, n := range got {
				if tt.g.Manhattan(tt.pos, n) != 1 {
					t.Errorf("neighbor %d not at distance 1", n)
				}
			}
		})
	}
}

func TestSizeAndContains(t *testing.T) {
	g := New(2, 2)
	if g.Size() != 4 {
		t.Errorf("Size() = %d, want 4", g.Size())
	}
	if g.Contains(0) || g.Contains(5) || !g.Contains(4) {
		t.Error("Contains bounds wrong")
	}
	if (Grid{}).Size() != 0 || (Grid{}).Valid() {
		t.Error("zero grid should be empty and invalid")
	}
	if New(-1, 3).Size() != 0 {
		t.Error("negative grid should have no positions")
	}
}

// wrappingDims returns dimensions whose 64-bit product wraps around to 3.
// They do not fit a 32-bit int, so the test is skipped there.
func wrappingDims(t *testing.T) (rows, cols int) {
	t.Helper()
	cols, err := strconv.Atoi("39463029637")
	if err != nil {
		t.Skip("needs 64-bit int")
	}
	return 467443687, cols
}

func TestValidRejectsOverflow(t *testing.T) {
	rows, cols := wrappingDims(t)
	tests := []struct {
		name string
		g    Grid
		want bool
	}{
		{"small", New(3, 4), true},
		{"max single row", New(1, math.MaxInt), true},
		{"product wraps negative", New(math.MaxInt/2+1, 2), false},
		{"product wraps to 3", New(rows, cols), false},
		{"both huge", New(math.MaxInt, math.MaxInt), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
			if !tt.want && tt.g.Size() != 0 {
				t.Errorf("Size() = %d for an invalid grid, want 0", tt.g.Size())
			}
		})
	}
}
