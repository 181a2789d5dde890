// Package coords определяет общий контракт систем координат.
//
// Каждая топология (гекс, квадрат, треугольник, изометрия) реализует две
// примитивные операции: перечисление соседей и метрику расстояния. Всё
// остальное (поиск пути, видимость, освещение) строится только на них.
package coords

// Coord - контракт значения-координаты в конкретной топологии.
//
// Требования к Distance:
//   - симметричность: a.Distance(b) == b.Distance(a)
//   - ноль тогда и только тогда, когда координаты равны
//   - неравенство треугольника
//   - равенство минимальному числу переходов по Neighbors
//
// Обе операции тотальны и не паникуют на любых целых координатах.
type Coord[C any] interface {
	comparable

	// Distance возвращает расстояние до другой координаты в шагах сетки.
	Distance(other C) int

	// Neighbors возвращает все смежные координаты в фиксированном порядке.
	Neighbors() []C
}

// Planar - расширение контракта для алгоритмов, сканирующих целочисленную
// решётку осей (shadowcasting, линия Брезенхэма). Для квадратной и
// изометрической топологий решётка совпадает с геометрией клеток; для
// гекса и треугольника это скошенная плоскость осей (документированное
// приближение, см. DESIGN.md).
type Planar[C any] interface {
	Coord[C]

	// AxisXY возвращает координату как точку целочисленной решётки осей.
	AxisXY() (x, y int)

	// FromAxisXY собирает координату той же топологии из точки решётки.
	// Приёмник используется только как носитель типа.
	FromAxisXY(x, y int) C
}
