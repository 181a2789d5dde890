package convert

import (
	"testing"

	"tessera-server/pkg/coords/hex"
	"tessera-server/pkg/coords/iso"
	"tessera-server/pkg/coords/square"
)

func TestSquareIsoRoundTrip(t *testing.T) {
	// Exact conversions obey the round-trip law on every cell.
	for x := -5; x <= 5; x++ {
		for y := -5; y <= 5; y++ {
			c4 := square.New4(x, y)
			if back := IsoToSquare4(Square4ToIso(c4)); back != c4 {
				t.Fatalf("square4 round trip failed for %v: got %v", c4, back)
			}

			c8 := square.New8(x, y)
			if back := IsoToSquare8(Square8ToIso(c8)); back != c8 {
				t.Fatalf("square8 round trip failed for %v: got %v", c8, back)
			}

			d := iso.New(x, y)
			if back := Square4ToIso(IsoToSquare4(d)); back != d {
				t.Fatalf("iso round trip failed for %v: got %v", d, back)
			}
		}
	}
}

func TestHexToSquareKnownValues(t *testing.T) {
	tests := []struct {
		hex      hex.Axial
		expected square.Coord4
	}{
		{hex.New(0, 0), square.New4(0, 0)},
		{hex.New(3, 0), square.New4(3, 0)},
		{hex.New(0, 2), square.New4(1, 2)},
		{hex.New(2, 4), square.New4(4, 4)},
	}

	for _, tt := range tests {
		if got := HexToSquare4(tt.hex); got != tt.expected {
			t.Errorf("HexToSquare4(%v) = %v, want %v", tt.hex, got, tt.expected)
		}
	}
}

func TestSquareToHexKnownValues(t *testing.T) {
	tests := []struct {
		square   square.Coord4
		expected hex.Axial
	}{
		{square.New4(0, 0), hex.New(0, 0)},
		{square.New4(3, 0), hex.New(3, 0)},
		{square.New4(1, 2), hex.New(0, 2)},
	}

	for _, tt := range tests {
		if got := Square4ToHex(tt.square); got != tt.expected {
			t.Errorf("Square4ToHex(%v) = %v, want %v", tt.square, got, tt.expected)
		}
	}
}

func TestHexIsoGoesThroughSquare(t *testing.T) {
	a := hex.New(2, 4)
	direct := HexToIso(a)
	viaSquare := Square4ToIso(HexToSquare4(a))
	if direct != viaSquare {
		t.Errorf("HexToIso(%v) = %v, want %v", a, direct, viaSquare)
	}
}

func TestBatchMatchesScalar(t *testing.T) {
	src := []hex.Axial{
		hex.New(0, 0),
		hex.New(1, -1),
		hex.New(-2, 3),
		hex.New(4, 4),
	}

	batch := Batch(src, HexToSquare4)

	if len(batch) != len(src) {
		t.Fatalf("batch length %d, want %d", len(batch), len(src))
	}
	// Element-wise equal to scalar calls, same order.
	for i, a := range src {
		if batch[i] != HexToSquare4(a) {
			t.Errorf("batch[%d] = %v, want %v", i, batch[i], HexToSquare4(a))
		}
	}
}

func TestBatchNil(t *testing.T) {
	if got := Batch[hex.Axial, square.Coord4](nil, HexToSquare4); got != nil {
		t.Errorf("Batch(nil) = %v, want nil", got)
	}
	if got := Batch([]hex.Axial{}, HexToSquare4); len(got) != 0 {
		t.Errorf("Batch(empty) has length %d, want 0", len(got))
	}
}
