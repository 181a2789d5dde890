// Package pixel описывает точку на пиксельной плоскости.
//
// Плоскость служит общим "мостом" между топологиями: приближённые
// конвертации проецируют клетку в пиксельные координаты её центра и
// округляют до ближайшей клетки целевой топологии. Ось Y направлена вниз,
// как принято в экранных координатах.
package pixel

// Point - точка пиксельной плоскости.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// New создаёт точку из компонент.
func New(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add возвращает сумму двух точек (векторное сложение).
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub возвращает разность двух точек.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale масштабирует точку на коэффициент.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}
