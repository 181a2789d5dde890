package grid

import (
	"testing"

	"tessera-server/pkg/coords/hex"
	"tessera-server/pkg/coords/square"
)

func TestInsertGetRemove(t *testing.T) {
	g := New[square.Coord4, string](4, 4, 0, 0)

	c := square.New4(2, 3)
	if _, replaced := g.Insert(c, "torch"); replaced {
		t.Error("first insert should not report a replacement")
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Len())
	}

	if v, ok := g.Get(c); !ok || v != "torch" {
		t.Errorf("Get = %q, %v; want torch, true", v, ok)
	}

	if prev, replaced := g.Insert(c, "lantern"); !replaced || prev != "torch" {
		t.Errorf("Insert over occupied cell = %q, %v; want torch, true", prev, replaced)
	}
	if g.Len() != 1 {
		t.Errorf("Len after replace = %d, want 1", g.Len())
	}

	if v, ok := g.Remove(c); !ok || v != "lantern" {
		t.Errorf("Remove = %q, %v; want lantern, true", v, ok)
	}
	if g.Len() != 0 {
		t.Errorf("Len after remove = %d, want 0", g.Len())
	}
	if _, ok := g.Get(c); ok {
		t.Error("removed cell should be empty")
	}
	if _, ok := g.Remove(c); ok {
		t.Error("removing an empty cell should report false")
	}
}

func TestGetOutsideReturnsFalse(t *testing.T) {
	g := New[square.Coord4, int](3, 3, 0, 0)

	// Reads outside the area are a normal question with answer "no".
	if _, ok := g.Get(square.New4(10, 10)); ok {
		t.Error("Get outside the area should return false")
	}
	if _, ok := g.Get(square.New4(-1, 0)); ok {
		t.Error("Get at negative coordinate outside the area should return false")
	}
}

func TestInsertOutsidePanics(t *testing.T) {
	g := New[square.Coord4, int](3, 3, 0, 0)

	defer func() {
		if recover() == nil {
			t.Error("Insert outside the area should panic")
		}
	}()
	g.Insert(square.New4(3, 0), 1)
}

func TestRemoveOutsidePanics(t *testing.T) {
	g := New[square.Coord4, int](3, 3, 0, 0)

	defer func() {
		if recover() == nil {
			t.Error("Remove outside the area should panic")
		}
	}()
	g.Remove(square.New4(0, -1))
}

func TestNegativeOrigin(t *testing.T) {
	// The area may start at negative lattice coordinates.
	g := New[square.Coord4, int](5, 5, -2, -2)

	if !g.Contains(square.New4(-2, -2)) || !g.Contains(square.New4(2, 2)) {
		t.Error("corners of the shifted area should be inside")
	}
	if g.Contains(square.New4(3, 0)) {
		t.Error("cell beyond the shifted area should be outside")
	}

	g.Insert(square.New4(-2, 1), 42)
	if v, ok := g.Get(square.New4(-2, 1)); !ok || v != 42 {
		t.Errorf("Get at negative coordinate = %d, %v; want 42, true", v, ok)
	}
}

func TestForEachOrder(t *testing.T) {
	g := New[square.Coord4, int](3, 2, 0, 0)
	g.Insert(square.New4(2, 1), 1)
	g.Insert(square.New4(0, 0), 2)
	g.Insert(square.New4(1, 0), 3)

	var visited []square.Coord4
	g.ForEach(func(c square.Coord4, _ int) {
		visited = append(visited, c)
	})

	expected := []square.Coord4{square.New4(0, 0), square.New4(1, 0), square.New4(2, 1)}
	if len(visited) != len(expected) {
		t.Fatalf("visited %d cells, want %d", len(visited), len(expected))
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Errorf("visit order[%d] = %v, want %v", i, visited[i], expected[i])
		}
	}
}

func TestHexKeys(t *testing.T) {
	// Any planar coordinate type addresses the grid through its lattice.
	g := New[hex.Axial, bool](4, 4, -1, -1)

	g.Insert(hex.New(0, 0), true)
	g.Insert(hex.New(-1, 2), true)

	if v, ok := g.Get(hex.New(-1, 2)); !ok || !v {
		t.Error("hex cell should be retrievable")
	}
	if g.Len() != 2 {
		t.Errorf("Len = %d, want 2", g.Len())
	}
}

func TestNewPanicsOnBadDimensions(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New with zero width should panic")
		}
	}()
	New[square.Coord4, int](0, 3, 0, 0)
}
