// Package tri реализует треугольную систему координат.
//
// Клетка задаётся тремя целыми осями (a, b, c) с инвариантом
// a+b+c ∈ {1, 2}: сумма 2 означает треугольник "вершиной вверх" (△),
// сумма 1 - "вершиной вниз" (▽). Из инварианта напрямую следуют
// соседства: у △ соседи получаются вычитанием единицы из одной оси,
// у ▽ - прибавлением.
package tri

import "fmt"

// Coord - треугольная координата. Создавайте её через New: нарушенный
// инвариант суммы осей - ошибка программирования, а не данных.
type Coord struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
}

// New создаёт треугольную координату.
// Паникует, если a+b+c не равно 1 или 2 (политика предусловий: невалидная
// координата не может появиться в корректной программе).
func New(a, b, c int) Coord {
	if s := a + b + c; s != 1 && s != 2 {
		panic(fmt.Sprintf("tri: invalid coordinate (%d,%d,%d): a+b+c must be 1 or 2, got %d", a, b, c, s))
	}
	return Coord{A: a, B: b, C: c}
}

// PointsUp сообщает, направлен ли треугольник вершиной вверх (a+b+c == 2).
func (t Coord) PointsUp() bool {
	return t.A+t.B+t.C == 2
}

// Distance возвращает минимальное число переходов через грани:
// сумму модулей разностей трёх осей.
func (t Coord) Distance(other Coord) int {
	return abs(t.A-other.A) + abs(t.B-other.B) + abs(t.C-other.C)
}

// Neighbors возвращает три треугольника, смежных по граням.
// Порядок фиксирован: ось A, ось B, ось C.
func (t Coord) Neighbors() []Coord {
	if t.PointsUp() {
		return []Coord{
			{A: t.A - 1, B: t.B, C: t.C},
			{A: t.A, B: t.B - 1, C: t.C},
			{A: t.A, B: t.B, C: t.C - 1},
		}
	}
	return []Coord{
		{A: t.A + 1, B: t.B, C: t.C},
		{A: t.A, B: t.B + 1, C: t.C},
		{A: t.A, B: t.B, C: t.C + 1},
	}
}

// AxisXY упаковывает координату в точку решётки осей: x = a - b, y = c.
// Ориентация уходит в чётность x+y (чётная сумма - △), поэтому отображение
// взаимно однозначно. Упаковка сохраняет смежность: все три соседа клетки
// лежат на решётке на манхэттенском расстоянии 1 (△ - слева, справа и снизу,
// ▽ - слева, справа и сверху).
func (t Coord) AxisXY() (int, int) {
	return t.A - t.B, t.C
}

// FromAxisXY обращает упаковку AxisXY.
func (Coord) FromAxisXY(x, y int) Coord {
	s := 2 - floorMod(x+y, 2)
	a := (x + s - y) / 2
	return Coord{A: a, B: a - x, C: y}
}

// Compare задаёт полный порядок по полям (A, затем B, затем C).
func (t Coord) Compare(other Coord) int {
	switch {
	case t.A != other.A:
		return sign(t.A - other.A)
	case t.B != other.B:
		return sign(t.B - other.B)
	default:
		return sign(t.C - other.C)
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
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

// floorDiv - целочисленное деление с округлением к минус бесконечности.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod - остаток, согласованный с floorDiv (всегда неотрицателен при b > 0).
func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
