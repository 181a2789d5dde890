// Package tilemap определяет сериализуемый JSON-формат карты.
//
// Документ самодостаточен: тег топологии плюс целочисленные оси каждой
// клетки однозначно восстанавливают карту без внешнего контекста.
// Повреждённый или несогласованный документ - ошибка данных, поэтому
// декодирование возвращает error, а не паникует.
package tilemap

import (
	"encoding/json"
	"fmt"

	"tessera-server/pkg/coords"
	"tessera-server/pkg/coords/hex"
	"tessera-server/pkg/coords/iso"
	"tessera-server/pkg/coords/square"
	"tessera-server/pkg/coords/tri"
	"tessera-server/pkg/grid"
	"tessera-server/pkg/mapgen"
)

// Topology - тег топологии документа.
type Topology string

const (
	TopologyHex        Topology = "hex"
	TopologySquare4    Topology = "square4"
	TopologySquare8    Topology = "square8"
	TopologyTriangular Topology = "triangular"
	TopologyIsometric  Topology = "isometric"
)

// Valid сообщает, известен ли тег топологии.
func (t Topology) Valid() bool {
	switch t {
	case TopologyHex, TopologySquare4, TopologySquare8, TopologyTriangular, TopologyIsometric:
		return true
	}
	return false
}

// Tile - одна клетка документа. Axes - топологические оси клетки:
// две для всех топологий, кроме треугольной, у которой их три.
type Tile struct {
	Axes []int `json:"axes"`
	Wall bool  `json:"wall"`
	Cost int   `json:"cost,omitempty"`
}

// Document - сериализуемая карта.
type Document struct {
	Topology Topology `json:"topology"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Seed     int64    `json:"seed,omitempty"`
	Start    []int    `json:"start"`
	Tiles    []Tile   `json:"tiles"`
}

// Marshal сериализует документ в JSON.
func (d *Document) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// Unmarshal разбирает документ из JSON и проверяет тег топологии.
func Unmarshal(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("tilemap: decode document: %w", err)
	}
	if !d.Topology.Valid() {
		return nil, fmt.Errorf("tilemap: unknown topology %q", d.Topology)
	}
	return &d, nil
}

// Encode собирает документ из карты. axes извлекает топологические оси
// клетки; порядок обхода фиксирован порядком обхода решётки, поэтому
// кодирование детерминировано.
func Encode[C coords.Planar[C]](topology Topology, m *mapgen.Map[C], axes func(C) []int) *Document {
	doc := &Document{
		Topology: topology,
		Width:    m.Cells.Width(),
		Height:   m.Cells.Height(),
		Seed:     m.Seed,
		Start:    axes(m.Start),
		Tiles:    make([]Tile, 0, m.Cells.Len()),
	}
	m.Cells.ForEach(func(c C, cell mapgen.Cell) {
		doc.Tiles = append(doc.Tiles, Tile{
			Axes: axes(c),
			Wall: cell.Wall,
			Cost: cell.Cost,
		})
	})
	return doc
}

// Decode восстанавливает карту из документа. from разбирает оси клетки;
// клетка вне заявленной области документа - ошибка данных.
func Decode[C coords.Planar[C]](doc *Document, want Topology, from func([]int) (C, error)) (*mapgen.Map[C], error) {
	if doc.Topology != want {
		return nil, fmt.Errorf("tilemap: topology mismatch: document %q, expected %q", doc.Topology, want)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("tilemap: invalid dimensions %dx%d", doc.Width, doc.Height)
	}

	cells := grid.New[C, mapgen.Cell](doc.Width, doc.Height, 0, 0)
	for i, tile := range doc.Tiles {
		c, err := from(tile.Axes)
		if err != nil {
			return nil, fmt.Errorf("tilemap: tile %d: %w", i, err)
		}
		if !cells.Contains(c) {
			x, y := c.AxisXY()
			return nil, fmt.Errorf("tilemap: tile %d at (%d, %d) outside %dx%d area", i, x, y, doc.Width, doc.Height)
		}
		cells.Insert(c, mapgen.Cell{Wall: tile.Wall, Cost: tile.Cost})
	}

	start, err := from(doc.Start)
	if err != nil {
		return nil, fmt.Errorf("tilemap: start: %w", err)
	}
	if !cells.Contains(start) {
		return nil, fmt.Errorf("tilemap: start outside map area")
	}

	return &mapgen.Map[C]{Cells: cells, Start: start, Seed: doc.Seed}, nil
}

// --- Кодеки осей по топологиям ---

// HexAxes возвращает оси гекса: [q, r].
func HexAxes(a hex.Axial) []int { return []int{a.Q, a.R} }

// HexFromAxes разбирает оси гекса.
func HexFromAxes(axes []int) (hex.Axial, error) {
	if len(axes) != 2 {
		return hex.Axial{}, fmt.Errorf("hex axes: expected 2 values, got %d", len(axes))
	}
	return hex.Axial{Q: axes[0], R: axes[1]}, nil
}

// Square4Axes возвращает оси квадратной клетки: [x, y].
func Square4Axes(c square.Coord4) []int { return []int{c.X, c.Y} }

// Square4FromAxes разбирает оси 4-связной квадратной клетки.
func Square4FromAxes(axes []int) (square.Coord4, error) {
	if len(axes) != 2 {
		return square.Coord4{}, fmt.Errorf("square axes: expected 2 values, got %d", len(axes))
	}
	return square.Coord4{X: axes[0], Y: axes[1]}, nil
}

// Square8Axes возвращает оси 8-связной квадратной клетки: [x, y].
func Square8Axes(c square.Coord8) []int { return []int{c.X, c.Y} }

// Square8FromAxes разбирает оси 8-связной квадратной клетки.
func Square8FromAxes(axes []int) (square.Coord8, error) {
	if len(axes) != 2 {
		return square.Coord8{}, fmt.Errorf("square axes: expected 2 values, got %d", len(axes))
	}
	return square.Coord8{X: axes[0], Y: axes[1]}, nil
}

// TriAxes возвращает оси треугольной клетки: [a, b, c].
func TriAxes(c tri.Coord) []int { return []int{c.A, c.B, c.C} }

// TriFromAxes разбирает оси треугольной клетки с проверкой инварианта суммы.
func TriFromAxes(axes []int) (tri.Coord, error) {
	if len(axes) != 3 {
		return tri.Coord{}, fmt.Errorf("triangular axes: expected 3 values, got %d", len(axes))
	}
	sum := axes[0] + axes[1] + axes[2]
	if sum != 1 && sum != 2 {
		return tri.Coord{}, fmt.Errorf("triangular axes: sum %d, expected 1 or 2", sum)
	}
	return tri.Coord{A: axes[0], B: axes[1], C: axes[2]}, nil
}

// IsoAxes возвращает оси изометрической клетки: [x, y].
func IsoAxes(d iso.Diamond) []int { return []int{d.X, d.Y} }

// IsoFromAxes разбирает оси изометрической клетки.
func IsoFromAxes(axes []int) (iso.Diamond, error) {
	if len(axes) != 2 {
		return iso.Diamond{}, fmt.Errorf("isometric axes: expected 2 values, got %d", len(axes))
	}
	return iso.Diamond{X: axes[0], Y: axes[1]}, nil
}
