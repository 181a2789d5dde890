package tilemap

import (
	"os"
	"testing"

	"tessera-server/pkg/coords/square"
	"tessera-server/pkg/coords/tri"
	"tessera-server/pkg/logger"
	"tessera-server/pkg/mapgen"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestSquareRoundTrip(t *testing.T) {
	original := mapgen.Dungeon[square.Coord4](20, 15, 42)

	doc := Encode(TopologySquare4, original, Square4Axes)
	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	parsed, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	restored, err := Decode(parsed, TopologySquare4, Square4FromAxes)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if restored.Start != original.Start {
		t.Errorf("start = %v, want %v", restored.Start, original.Start)
	}
	if restored.Seed != original.Seed {
		t.Errorf("seed = %d, want %d", restored.Seed, original.Seed)
	}
	for y := 0; y < 15; y++ {
		for x := 0; x < 20; x++ {
			c := square.New4(x, y)
			a, _ := original.Cells.Get(c)
			b, _ := restored.Cells.Get(c)
			if a != b {
				t.Fatalf("cell %v = %+v after round trip, want %+v", c, b, a)
			}
		}
	}
}

func TestTriangularRoundTrip(t *testing.T) {
	original := mapgen.Dungeon[tri.Coord](16, 12, 7)

	doc := Encode(TopologyTriangular, original, TriAxes)
	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	parsed, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	restored, err := Decode(parsed, TopologyTriangular, TriFromAxes)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if restored.Start != original.Start {
		t.Errorf("start = %v, want %v", restored.Start, original.Start)
	}
	matched := 0
	original.Cells.ForEach(func(c tri.Coord, cell mapgen.Cell) {
		got, ok := restored.Cells.Get(c)
		if !ok || got != cell {
			t.Fatalf("cell %v = %+v after round trip, want %+v", c, got, cell)
		}
		matched++
	})
	if matched != restored.Cells.Len() {
		t.Errorf("restored map has %d cells, want %d", restored.Cells.Len(), matched)
	}
}

func TestUnmarshalRejectsUnknownTopology(t *testing.T) {
	_, err := Unmarshal([]byte(`{"topology":"cubic","width":4,"height":4,"start":[0,0],"tiles":[]}`))
	if err == nil {
		t.Error("unknown topology tag should be rejected")
	}
}

func TestDecodeRejectsTopologyMismatch(t *testing.T) {
	original := mapgen.Dungeon[square.Coord4](10, 10, 1)
	doc := Encode(TopologySquare4, original, Square4Axes)

	if _, err := Decode(doc, TopologyHex, HexFromAxes); err == nil {
		t.Error("decoding a square document as hex should fail")
	}
}

func TestDecodeRejectsTileOutsideArea(t *testing.T) {
	doc := &Document{
		Topology: TopologySquare4,
		Width:    4,
		Height:   4,
		Start:    []int{0, 0},
		Tiles:    []Tile{{Axes: []int{7, 0}, Wall: false, Cost: 1}},
	}
	if _, err := Decode(doc, TopologySquare4, Square4FromAxes); err == nil {
		t.Error("tile outside the declared area should be rejected")
	}
}

func TestDecodeRejectsStartOutsideArea(t *testing.T) {
	doc := &Document{
		Topology: TopologySquare4,
		Width:    4,
		Height:   4,
		Start:    []int{9, 9},
		Tiles:    []Tile{{Axes: []int{0, 0}, Wall: false, Cost: 1}},
	}
	if _, err := Decode(doc, TopologySquare4, Square4FromAxes); err == nil {
		t.Error("start outside the declared area should be rejected")
	}
}

func TestTriFromAxesValidatesSum(t *testing.T) {
	if _, err := TriFromAxes([]int{1, 1, 1}); err == nil {
		t.Error("triangular axes with sum 3 should be rejected")
	}
	if _, err := TriFromAxes([]int{1, 0}); err == nil {
		t.Error("triangular axes need exactly 3 values")
	}
	if c, err := TriFromAxes([]int{1, 0, 0}); err != nil || c != tri.New(1, 0, 0) {
		t.Errorf("TriFromAxes(1,0,0) = %v, %v; want valid coordinate", c, err)
	}
}

func TestAxesCodecsRejectWrongArity(t *testing.T) {
	if _, err := HexFromAxes([]int{1}); err == nil {
		t.Error("hex axes need exactly 2 values")
	}
	if _, err := Square8FromAxes([]int{1, 2, 3}); err == nil {
		t.Error("square axes need exactly 2 values")
	}
	if _, err := IsoFromAxes(nil); err == nil {
		t.Error("isometric axes need exactly 2 values")
	}
}
