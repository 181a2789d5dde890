// Package pathfind реализует поиск пути A* поверх контракта координат.
//
// Алгоритм не знает ничего о топологии: ему достаточно соседей и метрики
// из coords.Coord. Проходимость и стоимость клеток поставляет вызывающий
// код в виде предикатов; предикаты должны быть чистыми - поиск вправе
// вызывать их многократно для одной и той же клетки.
//
// Отсутствие пути - нормальный исход, а не ошибка: все функции возвращают
// ok == false и никогда не паникуют.
package pathfind

import (
	"container/heap"

	"tessera-server/pkg/coords"
)

// AStar ищет самый дешёвый путь от start к goal.
//
// cost(c) - неотрицательная стоимость входа в клетку c. Эвристикой служит
// метрика топологии, поэтому при cost >= 1 на шаг найденный путь
// гарантированно оптимален; при стоимостях меньше единицы эвристика
// перестаёт быть допустимой и гарантия оптимальности не действует.
//
// Путь включает стартовую клетку; стоимость - сумма cost по всем клеткам
// пути, кроме стартовой. Разрешение ничьих между равными по стоимости
// путями детерминировано: среди равных приоритетов очередь ведёт себя
// как FIFO (порядок вставки).
func AStar[C coords.Coord[C]](start, goal C, isPassable func(C) bool, cost func(C) int) (path []C, totalCost int, ok bool) {
	path, totalCost, _, ok = search(start, []C{goal}, isPassable,
		func(_, to C) int { return cost(to) }, -1)
	return path, totalCost, ok
}

// AStarAdvanced - тот же поиск, но стоимость и проходимость берутся из
// конфигурации, а разведанная область жёстко ограничена cfg.MaxDistance:
// клетки дальше лимита от старта не рассматриваются вовсе. Если цель
// недостижима в пределах лимита, возвращается ok == false.
func AStarAdvanced[C coords.Coord[C]](start, goal C, cfg *Config[C]) (path []C, totalCost int, ok bool) {
	path, totalCost, _, ok = search(start, []C{goal}, cfg.IsPassable,
		func(_, to C) int { return cfg.CostAt(to) }, cfg.MaxDistance)
	return path, totalCost, ok
}

// AStarMultiGoal ведёт один поиск сразу к нескольким целям и завершается,
// как только достигнута любая из них. Эвристика - минимальное расстояние
// до какой-либо цели, поэтому поиск не расходует работу на повторные
// запуски, когда цели делят общий подход.
//
// Возвращает достигнутую цель третьим значением.
func AStarMultiGoal[C coords.Coord[C]](start C, goals []C, isPassable func(C) bool, cost func(C) int) (path []C, totalCost int, reached C, ok bool) {
	return search(start, goals, isPassable,
		func(_, to C) int { return cost(to) }, -1)
}

// AStarWithEdgeCosts обобщает стоимость входа до стоимости направленного
// ребра edgeCost(from, to). Нужен, когда цена шага зависит от направления:
// классический случай - диагонали на 8-связной квадратной сетке дороже
// ортогональных ходов. Для допустимости эвристики edgeCost должен быть
// неотрицателен.
func AStarWithEdgeCosts[C coords.Coord[C]](start, goal C, isPassable func(C) bool, edgeCost func(from, to C) int) (path []C, totalCost int, ok bool) {
	path, totalCost, _, ok = search(start, []C{goal}, isPassable, edgeCost, -1)
	return path, totalCost, ok
}

// search - общее ядро всех вариантов A*.
// maxDistance < 0 означает отсутствие лимита разведки.
func search[C coords.Coord[C]](start C, goals []C, isPassable func(C) bool, stepCost func(from, to C) int, maxDistance int) ([]C, int, C, bool) {
	var zero C
	if len(goals) == 0 {
		return nil, 0, zero, false
	}

	goalSet := make(map[C]struct{}, len(goals))
	for _, g := range goals {
		goalSet[g] = struct{}{}
	}

	// Эвристика: минимальное расстояние до какой-либо из целей.
	// Метрика топологии никогда не завышает число оставшихся шагов.
	h := func(c C) int {
		best := c.Distance(goals[0])
		for _, g := range goals[1:] {
			if d := c.Distance(g); d < best {
				best = d
			}
		}
		return best
	}

	open := &frontier[C]{}
	gScore := map[C]int{start: 0}
	cameFrom := map[C]C{}
	closed := map[C]struct{}{}

	var seq uint64
	push := func(c C, g int) {
		heap.Push(open, &frontierItem[C]{coord: c, g: g, f: g + h(c), seq: seq})
		seq++
	}
	push(start, 0)

	for open.Len() > 0 {
		item := heap.Pop(open).(*frontierItem[C])
		current := item.coord

		// Устаревшие дубликаты из кучи отбрасываем.
		if _, done := closed[current]; done {
			continue
		}
		closed[current] = struct{}{}

		if _, isGoal := goalSet[current]; isGoal {
			return reconstruct(cameFrom, start, current), gScore[current], current, true
		}

		for _, next := range current.Neighbors() {
			if _, done := closed[next]; done {
				continue
			}
			if !isPassable(next) {
				continue
			}
			if maxDistance >= 0 && start.Distance(next) > maxDistance {
				continue
			}
			g := gScore[current] + stepCost(current, next)
			if old, seen := gScore[next]; seen && old <= g {
				continue
			}
			gScore[next] = g
			cameFrom[next] = current
			push(next, g)
		}
	}

	return nil, 0, zero, false
}

func reconstruct[C comparable](cameFrom map[C]C, start, goal C) []C {
	path := []C{goal}
	for current := goal; current != start; {
		current = cameFrom[current]
		path = append(path, current)
	}
	// Разворачиваем: восстановление шло от цели к старту.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// frontierItem - запись открытого множества.
type frontierItem[C comparable] struct {
	coord C
	g, f  int
	seq   uint64
}

// frontier - мин-куча по f = g + h. Среди равных f побеждает меньший
// порядковый номер вставки: это и даёт детерминированное FIFO-разрешение
// ничьих между равными по стоимости путями.
type frontier[C comparable] []*frontierItem[C]

func (f frontier[C]) Len() int { return len(f) }

func (f frontier[C]) Less(i, j int) bool {
	if f[i].f != f[j].f {
		return f[i].f < f[j].f
	}
	return f[i].seq < f[j].seq
}

func (f frontier[C]) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier[C]) Push(x any) {
	*f = append(*f, x.(*frontierItem[C]))
}

func (f *frontier[C]) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}
