// Package mapgen генерирует карты уровней: подземелья из комнат
// с коридорами и открытую местность из шума.
//
// Генерация детерминирована: один и тот же сид всегда даёт одну и ту же
// карту. Результат - предикаты проходимости, непрозрачности и стоимости,
// готовые к передаче в поиск пути и поле зрения.
package mapgen

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"tessera-server/pkg/coords"
	"tessera-server/pkg/grid"
	"tessera-server/pkg/logger"
)

// Параметры генерации подземелья.
const (
	maxRooms = 8
	minSize  = 4
	maxSize  = 10
)

// Cell - содержимое одной клетки карты.
type Cell struct {
	// Wall - клетка непроходима и непрозрачна.
	Wall bool `json:"wall"`
	// Cost - стоимость входа в клетку для поиска пути, >= 1.
	Cost int `json:"cost"`
}

// Map - сгенерированная карта. За пределами области карта считается
// сплошной стеной: непроходимой и непрозрачной.
type Map[C coords.Planar[C]] struct {
	Cells *grid.Grid[C, Cell]
	// Start - гарантированно проходимая стартовая клетка.
	Start C
	Seed  int64
}

// Passable сообщает, проходима ли клетка.
func (m *Map[C]) Passable(c C) bool {
	cell, ok := m.Cells.Get(c)
	return ok && !cell.Wall
}

// BlocksSight сообщает, непрозрачна ли клетка.
func (m *Map[C]) BlocksSight(c C) bool {
	cell, ok := m.Cells.Get(c)
	return !ok || cell.Wall
}

// CostAt возвращает стоимость входа в клетку; для стен и клеток
// вне области возвращает 1 (поиск туда всё равно не ходит).
func (m *Map[C]) CostAt(c C) int {
	if cell, ok := m.Cells.Get(c); ok && cell.Cost >= 1 {
		return cell.Cost
	}
	return 1
}

// rect - комната подземелья на решётке осей.
type rect struct {
	x, y, w, h int
}

func (r rect) center() (int, int) {
	return r.x + r.w/2, r.y + r.h/2
}

func (r rect) intersects(other rect) bool {
	return r.x <= other.x+other.w && r.x+r.w >= other.x &&
		r.y <= other.y+other.h && r.y+r.h >= other.y
}

// Dungeon генерирует подземелье из комнат, соединённых Г-образными
// коридорами. Вся область изначально заполнена стеной, комнаты и
// коридоры вырезаются в ней.
func Dungeon[C coords.Planar[C]](width, height int, seed int64) *Map[C] {
	rng := rand.New(rand.NewSource(seed))

	cells := grid.New[C, Cell](width, height, 0, 0)
	var proto C

	// 1. Заполняем стенами.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells.Insert(proto.FromAxisXY(x, y), Cell{Wall: true, Cost: 1})
		}
	}

	// 2. Генерируем комнаты.
	var rooms []rect
	for i := 0; i < maxRooms; i++ {
		w := randRange(rng, minSize, maxSize)
		h := randRange(rng, minSize, maxSize)
		if w >= width-2 || h >= height-2 {
			continue
		}
		x := randRange(rng, 1, width-w-1)
		y := randRange(rng, 1, height-h-1)

		newRoom := rect{x: x, y: y, w: w, h: h}
		failed := false
		for _, other := range rooms {
			if newRoom.intersects(other) {
				failed = true
				break
			}
		}
		if failed {
			continue
		}

		carveRoom(cells, newRoom)

		// 3. Соединяем с предыдущей комнатой.
		if len(rooms) > 0 {
			prevX, prevY := rooms[len(rooms)-1].center()
			currX, currY := newRoom.center()

			if rng.Intn(2) == 0 {
				carveHCorridor(cells, prevX, currX, prevY)
				carveVCorridor(cells, prevY, currY, currX)
			} else {
				carveVCorridor(cells, prevY, currY, prevX)
				carveHCorridor(cells, prevX, currX, currY)
			}
		}
		rooms = append(rooms, newRoom)
	}

	// 4. Старт - центр первой комнаты.
	start := proto.FromAxisXY(width/2, height/2)
	if len(rooms) > 0 {
		cx, cy := rooms[0].center()
		start = proto.FromAxisXY(cx, cy)
	} else {
		// Вырожденный случай: область слишком мала для комнат.
		carveRoom(cells, rect{x: 0, y: 0, w: width - 1, h: height - 1})
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "mapgen",
		"kind":      "dungeon",
		"seed":      seed,
		"rooms":     len(rooms),
	}).Debug("Map generated")

	return &Map[C]{Cells: cells, Start: start, Seed: seed}
}

func carveRoom[C coords.Planar[C]](cells *grid.Grid[C, Cell], room rect) {
	var proto C
	for y := room.y + 1; y < room.y+room.h; y++ {
		for x := room.x + 1; x < room.x+room.w; x++ {
			cells.Insert(proto.FromAxisXY(x, y), Cell{Wall: false, Cost: 1})
		}
	}
}

func carveHCorridor[C coords.Planar[C]](cells *grid.Grid[C, Cell], x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		carveCell(cells, x, y)
	}
}

// carveVCorridor вырезает вертикальный коридор в два столбца: в треугольной
// топологии подъём по решётке возможен только зигзагом через соседний столбец.
func carveVCorridor[C coords.Planar[C]](cells *grid.Grid[C, Cell], y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		carveCell(cells, x, y)
		carveCell(cells, x+1, y)
	}
}

func carveCell[C coords.Planar[C]](cells *grid.Grid[C, Cell], x, y int) {
	var proto C
	if c := proto.FromAxisXY(x, y); cells.Contains(c) {
		cells.Insert(c, Cell{Wall: false, Cost: 1})
	}
}

func randRange(rng *rand.Rand, lo, hi int) int {
	return rng.Intn(hi-lo+1) + lo
}
