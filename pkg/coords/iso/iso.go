// Package iso реализует изометрическую (diamond) систему координат.
//
// Логически это та же квадратная сетка: (x, y) хранятся без изменений,
// а "ромбовидность" - чисто визуальная трансформация в экранные
// координаты. Поэтому метрика и соседи совпадают с 4-связным квадратом,
// а конвертация в квадратную топологию точна и обратима.
package iso

import (
	"math"

	"tessera-server/pkg/coords/pixel"
)

// Diamond - клетка изометрической сетки.
type Diamond struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// New создаёт изометрическую координату.
func New(x, y int) Diamond {
	return Diamond{X: x, Y: y}
}

// Distance возвращает манхэттенское расстояние по логической сетке.
// Визуальная проекция на метрику не влияет.
func (d Diamond) Distance(other Diamond) int {
	return abs(d.X-other.X) + abs(d.Y-other.Y)
}

// Neighbors возвращает четырёх соседей ромба (по логическим осям).
func (d Diamond) Neighbors() []Diamond {
	return []Diamond{
		{X: d.X + 1, Y: d.Y},
		{X: d.X - 1, Y: d.Y},
		{X: d.X, Y: d.Y + 1},
		{X: d.X, Y: d.Y - 1},
	}
}

// AxisXY представляет координату как точку решётки осей.
func (d Diamond) AxisXY() (int, int) {
	return d.X, d.Y
}

// FromAxisXY собирает координату из точки решётки осей.
func (Diamond) FromAxisXY(x, y int) Diamond {
	return Diamond{X: x, Y: y}
}

// Compare задаёт полный порядок по полям (сначала X, затем Y).
func (d Diamond) Compare(other Diamond) int {
	if d.X != other.X {
		if d.X < other.X {
			return -1
		}
		return 1
	}
	switch {
	case d.Y < other.Y:
		return -1
	case d.Y > other.Y:
		return 1
	}
	return 0
}

// ToScreen проецирует клетку в экранные координаты её центра.
// Стандартная diamond-трансформация: поворот на 45 градусов плюс
// сжатие вертикали вдвое.
func (d Diamond) ToScreen(tileSize float64) pixel.Point {
	return pixel.Point{
		X: float64(d.X-d.Y) * (tileSize / 2),
		Y: float64(d.X+d.Y) * (tileSize / 4),
	}
}

// FromScreen возвращает клетку, чей центр ближе всего к экранной точке.
func FromScreen(p pixel.Point, tileSize float64) Diamond {
	xn := p.X / (tileSize / 2)
	yn := p.Y / (tileSize / 4)
	// Обращаем систему: xn = x - y, yn = x + y.
	x := int(math.Round((xn + yn) / 2))
	y := int(math.Round((yn - xn) / 2))
	return Diamond{X: x, Y: y}
}

// TileCorners возвращает четыре угла ромба в экранных координатах
// по часовой стрелке: верх, право, низ, лево.
func (d Diamond) TileCorners(tileSize float64) [4]pixel.Point {
	center := d.ToScreen(tileSize)
	halfW := tileSize / 2
	halfH := tileSize / 4
	return [4]pixel.Point{
		{X: center.X, Y: center.Y - halfH},
		{X: center.X + halfW, Y: center.Y},
		{X: center.X, Y: center.Y + halfH},
		{X: center.X - halfW, Y: center.Y},
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
