// Package grid реализует ограниченный контейнер клеток поверх решётки осей.
//
// Хранение плоское (один срез на всю область), адресация - через
// AxisXY координаты со сдвигом, поэтому отрицательные координаты
// полноценно поддерживаются.
//
// Политика границ асимметрична намеренно: запись за пределами области -
// ошибка программирования и паникует, чтение за пределами - нормальный
// вопрос с ответом "нет" (ok == false).
package grid

import (
	"fmt"

	"tessera-server/pkg/coords"
)

// Grid - прямоугольная область решётки осей со значениями типа T.
type Grid[C coords.Planar[C], T any] struct {
	cells    []T
	occupied []bool
	count    int

	width, height int
	minX, minY    int
}

// New создаёт пустую область width x height клеток, начинающуюся
// с точки решётки (minX, minY). Паникует при неположительных размерах.
func New[C coords.Planar[C], T any](width, height, minX, minY int) *Grid[C, T] {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid dimensions %dx%d", width, height))
	}
	return &Grid[C, T]{
		cells:    make([]T, width*height),
		occupied: make([]bool, width*height),
		width:    width,
		height:   height,
		minX:     minX,
		minY:     minY,
	}
}

// Width возвращает ширину области в клетках.
func (g *Grid[C, T]) Width() int { return g.width }

// Height возвращает высоту области в клетках.
func (g *Grid[C, T]) Height() int { return g.height }

// Bounds возвращает минимальную точку решётки области.
func (g *Grid[C, T]) Bounds() (minX, minY int) { return g.minX, g.minY }

// Len возвращает число занятых клеток.
func (g *Grid[C, T]) Len() int { return g.count }

// Contains сообщает, попадает ли координата в область.
func (g *Grid[C, T]) Contains(c C) bool {
	x, y := c.AxisXY()
	return x >= g.minX && x < g.minX+g.width &&
		y >= g.minY && y < g.minY+g.height
}

func (g *Grid[C, T]) index(c C) int {
	x, y := c.AxisXY()
	if x < g.minX || x >= g.minX+g.width || y < g.minY || y >= g.minY+g.height {
		panic(fmt.Sprintf("grid: coordinate (%d, %d) outside %dx%d area at (%d, %d)",
			x, y, g.width, g.height, g.minX, g.minY))
	}
	return (y-g.minY)*g.width + (x - g.minX)
}

// Insert записывает значение в клетку, возвращая прежнее значение,
// если клетка была занята. Паникует за пределами области.
func (g *Grid[C, T]) Insert(c C, value T) (prev T, replaced bool) {
	i := g.index(c)
	prev, replaced = g.cells[i], g.occupied[i]
	g.cells[i] = value
	if !g.occupied[i] {
		g.occupied[i] = true
		g.count++
	}
	return prev, replaced
}

// Remove очищает клетку и возвращает хранившееся значение.
// Паникует за пределами области.
func (g *Grid[C, T]) Remove(c C) (T, bool) {
	i := g.index(c)
	var zero T
	if !g.occupied[i] {
		return zero, false
	}
	value := g.cells[i]
	g.cells[i] = zero
	g.occupied[i] = false
	g.count--
	return value, true
}

// Get возвращает значение клетки. Для пустой клетки и для координаты
// вне области возвращает ok == false.
func (g *Grid[C, T]) Get(c C) (T, bool) {
	if !g.Contains(c) {
		var zero T
		return zero, false
	}
	i := g.index(c)
	return g.cells[i], g.occupied[i]
}

// ForEach обходит занятые клетки в порядке строк решётки (снизу вверх
// по y, слева направо по x).
func (g *Grid[C, T]) ForEach(fn func(C, T)) {
	var proto C
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := y*g.width + x
			if !g.occupied[i] {
				continue
			}
			fn(proto.FromAxisXY(g.minX+x, g.minY+y), g.cells[i])
		}
	}
}
