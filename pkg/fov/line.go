package fov

import (
	"math"

	"tessera-server/pkg/coords"
)

const pi = math.Pi

func cosSin(angle float64) (float64, float64) {
	return math.Cos(angle), math.Sin(angle)
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}

// lineClear проходит целочисленную линию Брезенхэма по решётке осей
// от from к to и проверяет, что промежуточные клетки прозрачны.
// Сами концы не проверяются: стену видно, и из стены видно.
func lineClear[C coords.Planar[C]](from, to C, blocksSight func(C) bool) bool {
	x0, y0 := from.AxisXY()
	x1, y1 := to.AxisXY()

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}

	errTerm := dx - dy
	x, y := x0, y0

	for {
		if x == x1 && y == y1 {
			return true
		}
		// Промежуточные клетки; начальную пропускаем.
		if x != x0 || y != y0 {
			if blocksSight(from.FromAxisXY(x, y)) {
				return false
			}
		}

		e2 := 2 * errTerm
		if e2 > -dy {
			errTerm -= dy
			x += sx
		}
		if e2 < dx {
			errTerm += dx
			y += sy
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
