// Package fov вычисляет поле зрения и освещение поверх контракта координат.
//
// Четыре взаимозаменяемых алгоритма за одним интерфейсом: выбор делается
// при создании калькулятора и не меняется между вызовами. Сами вызовы
// не имеют состояния: каждый CalculateFOV - идемпотентное чистое
// вычисление над предикатом непрозрачности.
//
// Общий контракт всех алгоритмов:
//   - клетка строго дальше range никогда не видима;
//   - клетка наблюдателя видима всегда;
//   - сам окклюдер может быть видим (стену видно), но клетки строго за
//     ним вдоль луча - нет. На острых углах алгоритмы вправе расходиться:
//     это задокументированная разница в точности, а не дефект.
package fov

import (
	"container/list"

	"tessera-server/pkg/coords"
)

// Algorithm - стратегия вычисления поля зрения.
type Algorithm uint8

const (
	// Shadowcasting - рекурсивное сканирование октантов. Эталонный,
	// самый точный алгоритм: тени симметричны и не "протекают".
	Shadowcasting Algorithm = iota
	// RayCasting - дискретные лучи от наблюдателя. Быстрее, но у углов
	// стен рядом с наблюдателем видимость может просачиваться.
	RayCasting
	// FloodFill - заливка в ширину, останавливающаяся на окклюдерах.
	// Самый дешёвый и самый грубый: любая преграда полностью глушит обзор.
	FloodFill
	// Bresenham - целочисленная линия от наблюдателя к каждой клетке
	// в радиусе. Дёшев и для точечных проверок, и для полного поля.
	Bresenham
)

// String возвращает имя алгоритма для логов и протокола.
func (a Algorithm) String() string {
	switch a {
	case Shadowcasting:
		return "shadowcasting"
	case RayCasting:
		return "raycasting"
	case FloodFill:
		return "floodfill"
	case Bresenham:
		return "bresenham"
	default:
		return "unknown"
	}
}

// ParseAlgorithm разбирает имя алгоритма из протокола.
func ParseAlgorithm(name string) (Algorithm, bool) {
	switch name {
	case "shadowcasting", "":
		return Shadowcasting, true
	case "raycasting":
		return RayCasting, true
	case "floodfill":
		return FloodFill, true
	case "bresenham":
		return Bresenham, true
	}
	return Shadowcasting, false
}

// State - состояние видимости одной клетки.
type State struct {
	// Visible - видна ли клетка.
	Visible bool
	// Distance - расстояние от наблюдателя в метрике топологии.
	Distance int
	// LightLevel - уровень освещённости от наблюдателя: 1.0 вплотную,
	// линейно спадает к границе радиуса.
	LightLevel float64
	// BlocksSight - клетка сама является окклюдером (видимая стена).
	BlocksSight bool
}

// VisibilityMap - результат одного вычисления поля зрения.
// Создаётся заново каждым вызовом CalculateFOV, общего изменяемого
// состояния между вызовами нет.
type VisibilityMap[C comparable] struct {
	states    map[C]State
	viewer    C
	viewRange int
}

func newVisibilityMap[C comparable](viewer C, viewRange int) *VisibilityMap[C] {
	return &VisibilityMap[C]{
		states:    make(map[C]State),
		viewer:    viewer,
		viewRange: viewRange,
	}
}

// Viewer возвращает наблюдателя этого вычисления.
func (m *VisibilityMap[C]) Viewer() C { return m.viewer }

// Range возвращает радиус этого вычисления.
func (m *VisibilityMap[C]) Range() int { return m.viewRange }

// IsVisible сообщает, видна ли клетка.
func (m *VisibilityMap[C]) IsVisible(c C) bool {
	return m.states[c].Visible
}

// StateAt возвращает состояние клетки, если она попала в результат.
func (m *VisibilityMap[C]) StateAt(c C) (State, bool) {
	s, ok := m.states[c]
	return s, ok
}

// DistanceTo возвращает записанное расстояние до видимой клетки.
func (m *VisibilityMap[C]) DistanceTo(c C) (int, bool) {
	s, ok := m.states[c]
	if !ok || !s.Visible {
		return 0, false
	}
	return s.Distance, true
}

// VisibleCoordinates возвращает все видимые клетки.
func (m *VisibilityMap[C]) VisibleCoordinates() []C {
	result := make([]C, 0, len(m.states))
	for c, s := range m.states {
		if s.Visible {
			result = append(result, c)
		}
	}
	return result
}

// CoordinatesInRange возвращает видимые клетки с расстоянием
// в отрезке [minDist, maxDist].
func (m *VisibilityMap[C]) CoordinatesInRange(minDist, maxDist int) []C {
	var result []C
	for c, s := range m.states {
		if s.Visible && s.Distance >= minDist && s.Distance <= maxDist {
			result = append(result, c)
		}
	}
	return result
}

func (m *VisibilityMap[C]) setState(c C, s State) {
	m.states[c] = s
}

// Calculator вычисляет поле зрения выбранным алгоритмом.
type Calculator[C coords.Planar[C]] struct {
	algorithm     Algorithm
	includeViewer bool
}

// New создаёт калькулятор с заданным алгоритмом.
func New[C coords.Planar[C]](algorithm Algorithm) *Calculator[C] {
	return &Calculator[C]{
		algorithm:     algorithm,
		includeViewer: true,
	}
}

// Algorithm возвращает выбранный при создании алгоритм.
func (c *Calculator[C]) Algorithm() Algorithm { return c.algorithm }

// IncludeViewer управляет включением клетки наблюдателя в результат.
// По умолчанию она включена.
func (c *Calculator[C]) IncludeViewer(include bool) *Calculator[C] {
	c.includeViewer = include
	return c
}

// CalculateFOV вычисляет множество видимых клеток из viewer в радиусе
// maxRange. blocksSight(c) должен возвращать true для непрозрачных клеток;
// предикат обязан быть чистым - он вызывается неопределённо много раз.
func (c *Calculator[C]) CalculateFOV(viewer C, maxRange int, blocksSight func(C) bool) *VisibilityMap[C] {
	vm := newVisibilityMap(viewer, maxRange)
	if maxRange < 0 {
		maxRange = 0
	}

	switch c.algorithm {
	case Shadowcasting:
		shadowcast(viewer, maxRange, blocksSight, vm)
	case RayCasting:
		rayCast(viewer, maxRange, blocksSight, vm)
	case FloodFill:
		floodFill(viewer, maxRange, blocksSight, vm)
	case Bresenham:
		bresenhamField(viewer, maxRange, blocksSight, vm)
	}

	// Клетку наблюдателя алгоритмы отмечают каждый по-своему, поэтому
	// флаг применяется поверх результата: либо принудительная отметка,
	// либо удаление.
	if c.includeViewer {
		vm.setState(viewer, State{Visible: true, Distance: 0, LightLevel: 1.0, BlocksSight: blocksSight(viewer)})
	} else {
		delete(vm.states, viewer)
	}

	return vm
}

// LineOfSight - прямая парная проверка видимости, не требующая полного
// вычисления поля. Для Bresenham и Shadowcasting это проход целочисленной
// линии; для остальных алгоритмов - вычисление поля радиусом до цели,
// чтобы ответ совпадал с полнополевым результатом того же алгоритма.
func (c *Calculator[C]) LineOfSight(from, to C, blocksSight func(C) bool) bool {
	if from == to {
		return true
	}
	switch c.algorithm {
	case Bresenham, Shadowcasting:
		return lineClear(from, to, blocksSight)
	default:
		return c.CalculateFOV(from, from.Distance(to), blocksSight).IsVisible(to)
	}
}

// mark записывает клетку в карту видимости, если она в радиусе.
func mark[C coords.Planar[C]](vm *VisibilityMap[C], viewer, c C, maxRange int, blocksSight func(C) bool) {
	d := viewer.Distance(c)
	if d > maxRange {
		return
	}
	light := 1.0
	if maxRange > 0 {
		light = 1.0 - float64(d)/float64(maxRange)
		if light < 0 {
			light = 0
		}
	}
	vm.setState(c, State{
		Visible:     true,
		Distance:    d,
		LightLevel:  light,
		BlocksSight: blocksSight(c),
	})
}

// floodFill - заливка в ширину: распространение прекращается на окклюдерах
// и на глубине maxRange. Окклюдер сам помечается видимым, но дальше
// обзор через него не идёт.
func floodFill[C coords.Planar[C]](viewer C, maxRange int, blocksSight func(C) bool, vm *VisibilityMap[C]) {
	type entry struct {
		coord C
		depth int
	}

	visited := map[C]struct{}{viewer: {}}
	queue := list.New()
	queue.PushBack(entry{coord: viewer, depth: 0})

	for queue.Len() > 0 {
		front := queue.Remove(queue.Front()).(entry)

		mark(vm, viewer, front.coord, maxRange, blocksSight)

		if front.depth >= maxRange || blocksSight(front.coord) {
			continue
		}
		for _, next := range front.coord.Neighbors() {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue.PushBack(entry{coord: next, depth: front.depth + 1})
		}
	}
}

// rayCast пускает дискретные лучи по окружности решётки осей. Каждый луч
// идёт до окклюдера или границы радиуса; окклюдер помечается видимым,
// клетки за ним по этому лучу - нет.
func rayCast[C coords.Planar[C]](viewer C, maxRange int, blocksSight func(C) bool, vm *VisibilityMap[C]) {
	vx, vy := viewer.AxisXY()

	const rayCount = 360
	for i := 0; i < rayCount; i++ {
		angle := float64(i) * (2 * pi / rayCount)
		castRay(viewer, vx, vy, angle, maxRange, blocksSight, vm)
	}
}

func castRay[C coords.Planar[C]](viewer C, vx, vy int, angle float64, maxRange int, blocksSight func(C) bool, vm *VisibilityMap[C]) {
	dirX, dirY := cosSin(angle)

	var prev C
	havePrev := false
	// Шаг в полклетки, чтобы луч не перепрыгивал клетки на диагоналях.
	// Длина с запасом: метрика сама отсечёт клетки за радиусом.
	limit := float64(maxRange) * 2
	for t := 0.5; t <= limit; t += 0.5 {
		x := vx + roundToInt(dirX*t)
		y := vy + roundToInt(dirY*t)
		c := viewer.FromAxisXY(x, y)
		if havePrev && c == prev {
			continue
		}
		prev, havePrev = c, true

		if viewer.Distance(c) > maxRange {
			return
		}
		mark(vm, viewer, c, maxRange, blocksSight)
		if blocksSight(c) {
			return
		}
	}
}

// bresenhamField проверяет линию от наблюдателя до каждой клетки в радиусе.
// Кандидаты собираются окном решётки осей с запасом, фактическая граница -
// метрика топологии.
func bresenhamField[C coords.Planar[C]](viewer C, maxRange int, blocksSight func(C) bool, vm *VisibilityMap[C]) {
	vx, vy := viewer.AxisXY()

	// Окно 2*maxRange+1 по каждой оси покрывает все клетки с метрикой
	// до maxRange в любой из поддерживаемых топологий.
	window := 2*maxRange + 1
	for dy := -window; dy <= window; dy++ {
		for dx := -window; dx <= window; dx++ {
			c := viewer.FromAxisXY(vx+dx, vy+dy)
			if viewer.Distance(c) > maxRange {
				continue
			}
			if lineClear(viewer, c, blocksSight) {
				mark(vm, viewer, c, maxRange, blocksSight)
			}
		}
	}
}
