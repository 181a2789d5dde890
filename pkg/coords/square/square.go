// Package square реализует квадратную систему координат.
//
// Связность - часть типа, а не данных: Coord4 (только ортогональные
// соседи, манхэттенская метрика) и Coord8 (с диагоналями, метрика
// Чебышёва) хранят одинаковую пару (x, y), но дают разные соседства
// и расстояния.
package square

// Coord4 - клетка квадратной сетки с 4-связностью.
type Coord4 struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// New4 создаёт 4-связную координату.
func New4(x, y int) Coord4 {
	return Coord4{X: x, Y: y}
}

// Distance возвращает манхэттенское расстояние: |dx| + |dy|.
func (c Coord4) Distance(other Coord4) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

// Neighbors возвращает четырёх ортогональных соседей:
// вправо, влево, вверх, вниз.
func (c Coord4) Neighbors() []Coord4 {
	return []Coord4{
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
	}
}

// AxisXY представляет координату как точку решётки осей.
func (c Coord4) AxisXY() (int, int) {
	return c.X, c.Y
}

// FromAxisXY собирает координату из точки решётки осей.
func (Coord4) FromAxisXY(x, y int) Coord4 {
	return Coord4{X: x, Y: y}
}

// Compare задаёт полный порядок по полям (сначала X, затем Y).
func (c Coord4) Compare(other Coord4) int {
	return comparePair(c.X, c.Y, other.X, other.Y)
}

// Add возвращает сумму координат.
func (c Coord4) Add(other Coord4) Coord4 {
	return Coord4{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub возвращает разность координат.
func (c Coord4) Sub(other Coord4) Coord4 {
	return Coord4{X: c.X - other.X, Y: c.Y - other.Y}
}

// Coord8 - клетка квадратной сетки с 8-связностью.
type Coord8 struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// New8 создаёт 8-связную координату.
func New8(x, y int) Coord8 {
	return Coord8{X: x, Y: y}
}

// Distance возвращает расстояние Чебышёва: max(|dx|, |dy|).
func (c Coord8) Distance(other Coord8) int {
	return max(abs(c.X-other.X), abs(c.Y-other.Y))
}

// Neighbors возвращает восемь соседей: сначала ортогональные,
// затем диагональные.
func (c Coord8) Neighbors() []Coord8 {
	return []Coord8{
		{X: c.X + 1, Y: c.Y},
		{X: c.X - 1, Y: c.Y},
		{X: c.X, Y: c.Y + 1},
		{X: c.X, Y: c.Y - 1},
		{X: c.X + 1, Y: c.Y + 1},
		{X: c.X - 1, Y: c.Y + 1},
		{X: c.X + 1, Y: c.Y - 1},
		{X: c.X - 1, Y: c.Y - 1},
	}
}

// AxisXY представляет координату как точку решётки осей.
func (c Coord8) AxisXY() (int, int) {
	return c.X, c.Y
}

// FromAxisXY собирает координату из точки решётки осей.
func (Coord8) FromAxisXY(x, y int) Coord8 {
	return Coord8{X: x, Y: y}
}

// Compare задаёт полный порядок по полям (сначала X, затем Y).
func (c Coord8) Compare(other Coord8) int {
	return comparePair(c.X, c.Y, other.X, other.Y)
}

// Add возвращает сумму координат.
func (c Coord8) Add(other Coord8) Coord8 {
	return Coord8{X: c.X + other.X, Y: c.Y + other.Y}
}

// Sub возвращает разность координат.
func (c Coord8) Sub(other Coord8) Coord8 {
	return Coord8{X: c.X - other.X, Y: c.Y - other.Y}
}

func comparePair(x1, y1, x2, y2 int) int {
	if x1 != x2 {
		if x1 < x2 {
			return -1
		}
		return 1
	}
	switch {
	case y1 < y2:
		return -1
	case y1 > y2:
		return 1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
