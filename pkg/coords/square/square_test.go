package square

import "testing"

func TestCoord4Distance(t *testing.T) {
	tests := []struct {
		a, b     Coord4
		expected int
	}{
		{New4(0, 0), New4(0, 0), 0},
		{New4(0, 0), New4(3, 0), 3},
		{New4(0, 0), New4(3, 4), 7},
		{New4(-2, -2), New4(2, 2), 8},
	}

	for _, tt := range tests {
		if got := tt.a.Distance(tt.b); got != tt.expected {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestCoord8Distance(t *testing.T) {
	tests := []struct {
		a, b     Coord8
		expected int
	}{
		{New8(0, 0), New8(0, 0), 0},
		{New8(0, 0), New8(3, 0), 3},
		// Diagonal moves shorten the path
		{New8(0, 0), New8(3, 4), 4},
		{New8(-2, -2), New8(2, 2), 4},
	}

	for _, tt := range tests {
		if got := tt.a.Distance(tt.b); got != tt.expected {
			t.Errorf("Distance(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestCoord4Neighbors(t *testing.T) {
	c := New4(5, 5)
	neighbors := c.Neighbors()

	if len(neighbors) != 4 {
		t.Fatalf("expected 4 neighbors, got %d", len(neighbors))
	}
	for _, n := range neighbors {
		if d := c.Distance(n); d != 1 {
			t.Errorf("neighbor %v at distance %d, want 1", n, d)
		}
	}
}

func TestCoord8Neighbors(t *testing.T) {
	c := New8(0, 0)
	neighbors := c.Neighbors()

	if len(neighbors) != 8 {
		t.Fatalf("expected 8 neighbors, got %d", len(neighbors))
	}
	seen := map[Coord8]bool{}
	for _, n := range neighbors {
		if d := c.Distance(n); d != 1 {
			t.Errorf("neighbor %v at distance %d, want 1", n, d)
		}
		if seen[n] {
			t.Errorf("duplicate neighbor %v", n)
		}
		seen[n] = true
	}
}

func TestAxisRoundTrip(t *testing.T) {
	c4 := New4(-3, 7)
	x, y := c4.AxisXY()
	if c4.FromAxisXY(x, y) != c4 {
		t.Errorf("Coord4 axis round trip failed for %v", c4)
	}

	c8 := New8(2, -9)
	x, y = c8.AxisXY()
	if c8.FromAxisXY(x, y) != c8 {
		t.Errorf("Coord8 axis round trip failed for %v", c8)
	}
}

func TestArithmetic(t *testing.T) {
	if got := New4(1, 2).Add(New4(3, -1)); got != New4(4, 1) {
		t.Errorf("Add = %v, want (4,1)", got)
	}
	if got := New8(1, 2).Sub(New8(3, -1)); got != New8(-2, 3) {
		t.Errorf("Sub = %v, want (-2,3)", got)
	}
}
