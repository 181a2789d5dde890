// Package hex реализует гексагональную систему координат.
//
// Базовое представление - аксиальное (q, r) с неявной третьей кубической
// координатой s = -q-r. Offset-представление (col, row) с чётностью
// существует только как форма записи: все операции (соседи, расстояние)
// определены на аксиальной форме, конвертация между формами задаётся
// раскладкой Layout (ориентация + чётность).
//
// Формулы конвертаций и округления взяты из классического справочника
// Red Blob Games (https://www.redblobgames.com/grids/hexagons/).
package hex

import (
	"math"

	"tessera-server/pkg/coords/pixel"
)

// Orientation - ориентация гекса: вершиной вверх (Pointy) или гранью вверх (Flat).
type Orientation uint8

const (
	Pointy Orientation = iota
	Flat
)

// Parity - чётность offset-раскладки: сдвигаются нечётные или чётные ряды/столбцы.
type Parity uint8

const (
	Odd Parity = iota
	Even
)

// Layout - полная offset-раскладка: ориентация плюс чётность.
type Layout struct {
	Orientation Orientation
	Parity      Parity
}

// Axial - аксиальная гекс-координата. Инвариант s = -q-r поддерживается
// неявно: s не хранится и всегда согласована по построению.
type Axial struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// New создаёт аксиальную координату.
func New(q, r int) Axial {
	return Axial{Q: q, R: r}
}

// S возвращает неявную третью кубическую координату.
func (a Axial) S() int {
	return -a.Q - a.R
}

// Add возвращает сумму координат (векторное сложение).
func (a Axial) Add(other Axial) Axial {
	return Axial{Q: a.Q + other.Q, R: a.R + other.R}
}

// Sub возвращает разность координат.
func (a Axial) Sub(other Axial) Axial {
	return Axial{Q: a.Q - other.Q, R: a.R - other.R}
}

// Scale масштабирует координату на целый коэффициент.
func (a Axial) Scale(k int) Axial {
	return Axial{Q: a.Q * k, R: a.R * k}
}

// Distance возвращает кубическое расстояние: половину суммы модулей
// разностей трёх кубических координат.
func (a Axial) Distance(other Axial) int {
	dq := a.Q - other.Q
	dr := a.R - other.R
	ds := a.S() - other.S()
	return (abs(dq) + abs(dr) + abs(ds)) / 2
}

// Neighbors возвращает шесть смежных гексов, начиная с направления +q
// и далее против часовой стрелки.
func (a Axial) Neighbors() []Axial {
	return []Axial{
		{Q: a.Q + 1, R: a.R},
		{Q: a.Q + 1, R: a.R - 1},
		{Q: a.Q, R: a.R - 1},
		{Q: a.Q - 1, R: a.R},
		{Q: a.Q - 1, R: a.R + 1},
		{Q: a.Q, R: a.R + 1},
	}
}

// AxisXY представляет координату как точку решётки осей (q, r).
func (a Axial) AxisXY() (int, int) {
	return a.Q, a.R
}

// FromAxisXY собирает аксиальную координату из точки решётки осей.
func (Axial) FromAxisXY(x, y int) Axial {
	return Axial{Q: x, R: y}
}

// Compare задаёт полный порядок по полям (сначала Q, затем R).
func (a Axial) Compare(other Axial) int {
	if a.Q != other.Q {
		if a.Q < other.Q {
			return -1
		}
		return 1
	}
	switch {
	case a.R < other.R:
		return -1
	case a.R > other.R:
		return 1
	}
	return 0
}

// Offset - гекс-координата в offset-записи (col, row). Смысл записи зависит
// от раскладки, поэтому Offset сам по себе операций не имеет: для соседей
// и расстояний его переводят в Axial через ToAxial.
type Offset struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// ToOffset переводит аксиальную координату в offset-запись в заданной раскладке.
func (a Axial) ToOffset(l Layout) Offset {
	switch l.Orientation {
	case Pointy:
		if l.Parity == Odd {
			return Offset{Col: a.Q + (a.R-(a.R&1))/2, Row: a.R}
		}
		return Offset{Col: a.Q + (a.R+(a.R&1))/2, Row: a.R}
	default: // Flat
		if l.Parity == Odd {
			return Offset{Col: a.Q, Row: a.R + (a.Q-(a.Q&1))/2}
		}
		return Offset{Col: a.Q, Row: a.R + (a.Q+(a.Q&1))/2}
	}
}

// ToAxial переводит offset-запись обратно в аксиальную форму.
// Конвертации взаимно обратны для любой раскладки.
func (o Offset) ToAxial(l Layout) Axial {
	switch l.Orientation {
	case Pointy:
		if l.Parity == Odd {
			return Axial{Q: o.Col - (o.Row-(o.Row&1))/2, R: o.Row}
		}
		return Axial{Q: o.Col - (o.Row+(o.Row&1))/2, R: o.Row}
	default: // Flat
		if l.Parity == Odd {
			return Axial{Q: o.Col, R: o.Row - (o.Col-(o.Col&1))/2}
		}
		return Axial{Q: o.Col, R: o.Row - (o.Col+(o.Col&1))/2}
	}
}

// ToPixel возвращает пиксельный центр гекса при единичном размере стороны.
func (a Axial) ToPixel(orientation Orientation) pixel.Point {
	q := float64(a.Q)
	r := float64(a.R)
	if orientation == Pointy {
		return pixel.Point{
			X: math.Sqrt(3)*q + math.Sqrt(3)/2*r,
			Y: 3.0 / 2.0 * r,
		}
	}
	return pixel.Point{
		X: 3.0 / 2.0 * q,
		Y: math.Sqrt(3)/2*q + math.Sqrt(3)*r,
	}
}

// FromPixel возвращает ближайший гекс к точке пиксельной плоскости.
func FromPixel(p pixel.Point, orientation Orientation) Axial {
	var q, r float64
	if orientation == Pointy {
		q = math.Sqrt(3)/3*p.X - 1.0/3.0*p.Y
		r = 2.0 / 3.0 * p.Y
	} else {
		q = 2.0 / 3.0 * p.X
		r = -1.0/3.0*p.X + math.Sqrt(3)/3*p.Y
	}
	rq, rr := axialRound(q, r)
	return Axial{Q: rq, R: rr}
}

// axialRound округляет дробные аксиальные координаты до ближайшего гекса:
// округляем все три кубические координаты и чиним ту, что дала наибольшую
// погрешность, чтобы сохранить инвариант q+r+s = 0.
func axialRound(q, r float64) (int, int) {
	s := -q - r

	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)

	qDiff := math.Abs(rq - q)
	rDiff := math.Abs(rr - r)
	sDiff := math.Abs(rs - s)

	if qDiff > rDiff && qDiff > sDiff {
		rq = -rr - rs
	} else if rDiff > sDiff {
		rr = -rq - rs
	}

	return int(rq), int(rr)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
