package fov

import (
	"testing"

	"tessera-server/pkg/coords/hex"
	"tessera-server/pkg/coords/square"
)

var allAlgorithms = []Algorithm{Shadowcasting, RayCasting, FloodFill, Bresenham}

func noWalls(square.Coord4) bool { return false }

func wallAt(cells ...square.Coord4) func(square.Coord4) bool {
	set := make(map[square.Coord4]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	return func(c square.Coord4) bool { return set[c] }
}

func TestViewerAlwaysVisible(t *testing.T) {
	viewer := square.New4(0, 0)
	for _, algo := range allAlgorithms {
		vm := New[square.Coord4](algo).CalculateFOV(viewer, 3, noWalls)
		if !vm.IsVisible(viewer) {
			t.Errorf("%s: viewer cell should be visible", algo)
		}
		if d, ok := vm.DistanceTo(viewer); !ok || d != 0 {
			t.Errorf("%s: viewer distance = %d, %v; want 0, true", algo, d, ok)
		}
	}
}

func TestRangeBound(t *testing.T) {
	viewer := square.New4(0, 0)
	for _, algo := range allAlgorithms {
		vm := New[square.Coord4](algo).CalculateFOV(viewer, 3, noWalls)
		for _, c := range vm.VisibleCoordinates() {
			// Nothing strictly beyond the range is ever visible.
			if viewer.Distance(c) > 3 {
				t.Errorf("%s: %v visible at distance %d beyond range 3", algo, c, viewer.Distance(c))
			}
		}
	}
}

func TestOpenFieldFullyVisible(t *testing.T) {
	viewer := square.New4(0, 0)
	for _, algo := range allAlgorithms {
		vm := New[square.Coord4](algo).CalculateFOV(viewer, 4, noWalls)
		// On an open field every cell within range along the axes is seen.
		for _, c := range []square.Coord4{
			square.New4(4, 0), square.New4(-4, 0),
			square.New4(0, 4), square.New4(0, -4),
			square.New4(2, 1), square.New4(-2, -2),
		} {
			if !vm.IsVisible(c) {
				t.Errorf("%s: open-field cell %v should be visible", algo, c)
			}
		}
	}
}

func TestWallCastsShadow(t *testing.T) {
	// Viewer at origin, a wall directly east. Cells strictly behind the
	// wall along that ray are hidden; the wall itself is seen.
	// Flood fill is excluded: it trades shadows for reachability and
	// legitimately walks around a lone wall.
	viewer := square.New4(0, 0)
	wall := square.New4(1, 0)
	blocks := wallAt(wall)

	for _, algo := range []Algorithm{Shadowcasting, RayCasting, Bresenham} {
		vm := New[square.Coord4](algo).CalculateFOV(viewer, 5, blocks)

		if !vm.IsVisible(wall) {
			t.Errorf("%s: the occluder itself should be visible", algo)
		}
		state, _ := vm.StateAt(wall)
		if !state.BlocksSight {
			t.Errorf("%s: occluder should be flagged as blocking", algo)
		}

		for _, hidden := range []square.Coord4{square.New4(3, 0), square.New4(4, 0), square.New4(5, 0)} {
			if vm.IsVisible(hidden) {
				t.Errorf("%s: %v behind the wall should be hidden", algo, hidden)
			}
		}
	}
}

func TestFloodFillStopsAtAnyBlocker(t *testing.T) {
	// Flood fill cannot see around corners at all: a full ring of walls
	// hides everything outside it.
	viewer := square.New4(0, 0)
	ring := wallAt(
		square.New4(1, 0), square.New4(-1, 0),
		square.New4(0, 1), square.New4(0, -1),
	)

	vm := New[square.Coord4](FloodFill).CalculateFOV(viewer, 5, ring)

	// The ring itself is visible, nothing beyond it.
	if !vm.IsVisible(square.New4(1, 0)) {
		t.Error("ring wall should be visible")
	}
	if vm.IsVisible(square.New4(2, 0)) || vm.IsVisible(square.New4(1, 1)) {
		t.Error("cells beyond the sealed ring should be hidden")
	}
}

func TestIncludeViewerOff(t *testing.T) {
	// The knob works uniformly: even algorithms that mark the viewer
	// cell during their own traversal drop it from the result.
	viewer := square.New4(0, 0)

	for _, algo := range allAlgorithms {
		vm := New[square.Coord4](algo).IncludeViewer(false).CalculateFOV(viewer, 2, noWalls)
		if vm.IsVisible(viewer) {
			t.Errorf("%s: viewer should be excluded with IncludeViewer(false)", algo)
		}
		if !vm.IsVisible(square.New4(1, 0)) {
			t.Errorf("%s: neighbors should still be visible", algo)
		}
	}
}

func TestLightLevelFalloff(t *testing.T) {
	viewer := square.New4(0, 0)
	vm := New[square.Coord4](Shadowcasting).CalculateFOV(viewer, 4, noWalls)

	near, _ := vm.StateAt(square.New4(1, 0))
	far, _ := vm.StateAt(square.New4(4, 0))

	if near.LightLevel <= far.LightLevel {
		t.Errorf("light should fall off with distance: near %f, far %f", near.LightLevel, far.LightLevel)
	}
	if far.LightLevel != 0 {
		t.Errorf("light at the range boundary = %f, want 0", far.LightLevel)
	}
}

func TestCoordinatesInRange(t *testing.T) {
	viewer := square.New4(0, 0)
	vm := New[square.Coord4](Shadowcasting).CalculateFOV(viewer, 4, noWalls)

	for _, c := range vm.CoordinatesInRange(2, 3) {
		d := viewer.Distance(c)
		if d < 2 || d > 3 {
			t.Errorf("%v at distance %d outside requested band [2,3]", c, d)
		}
	}
	// The band excludes the viewer.
	for _, c := range vm.CoordinatesInRange(1, 4) {
		if c == viewer {
			t.Error("band starting at 1 should exclude the viewer")
		}
	}
}

func TestLineOfSight(t *testing.T) {
	wall := square.New4(2, 0)
	blocks := wallAt(wall)

	for _, algo := range allAlgorithms {
		calc := New[square.Coord4](algo)

		if !calc.LineOfSight(square.New4(0, 0), square.New4(0, 5), blocks) {
			t.Errorf("%s: clear vertical line should be visible", algo)
		}
		if calc.LineOfSight(square.New4(0, 0), square.New4(4, 0), blocks) {
			t.Errorf("%s: line through a wall should be blocked", algo)
		}
		// The wall itself can be seen.
		if !calc.LineOfSight(square.New4(0, 0), wall, blocks) {
			t.Errorf("%s: the wall itself should be visible", algo)
		}
	}
}

func TestLineOfSightMatchesBresenhamField(t *testing.T) {
	viewer := square.New4(0, 0)
	blocks := wallAt(square.New4(1, 1), square.New4(2, 0), square.New4(0, 2))

	calc := New[square.Coord4](Bresenham)
	vm := calc.CalculateFOV(viewer, 4, blocks)

	for dx := -4; dx <= 4; dx++ {
		for dy := -4; dy <= 4; dy++ {
			c := square.New4(dx, dy)
			if viewer.Distance(c) > 4 {
				continue
			}
			los := calc.LineOfSight(viewer, c, blocks)
			if los != vm.IsVisible(c) {
				t.Errorf("LineOfSight(%v) = %v disagrees with field visibility %v", c, los, vm.IsVisible(c))
			}
		}
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name     string
		expected Algorithm
		ok       bool
	}{
		{"shadowcasting", Shadowcasting, true},
		{"", Shadowcasting, true},
		{"raycasting", RayCasting, true},
		{"floodfill", FloodFill, true},
		{"bresenham", Bresenham, true},
		{"magic", Shadowcasting, false},
	}

	for _, tt := range tests {
		got, ok := ParseAlgorithm(tt.name)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseAlgorithm(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestFOVOnHexGrid(t *testing.T) {
	// The calculators are generic over the coordinate lattice.
	viewer := hex.New(0, 0)
	vm := New[hex.Axial](FloodFill).CalculateFOV(viewer, 2,
		func(hex.Axial) bool { return false })

	if !vm.IsVisible(hex.New(2, 0)) {
		t.Error("hex at distance 2 should be visible")
	}
	for _, c := range vm.VisibleCoordinates() {
		if viewer.Distance(c) > 2 {
			t.Errorf("hex %v beyond range visible", c)
		}
	}
	// 1 + 6 + 12 cells within distance 2.
	if got := len(vm.VisibleCoordinates()); got != 19 {
		t.Errorf("visible hex count = %d, want 19", got)
	}
}
