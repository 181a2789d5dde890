package fov

import (
	"tessera-server/pkg/coords"
)

// Мультипликаторы для трансформации координат в 8 октантов
var octantMultipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// shadowcast - рекурсивный shadowcasting по восьми октантам решётки осей.
// Сканирование идёт по решётке, а граница поля - метрика топологии:
// на квадратных и изометрических сетках обход точен, на гексах и
// треугольниках решётка осей служит приближением геометрии.
func shadowcast[C coords.Planar[C]](viewer C, maxRange int, blocksSight func(C) bool, vm *VisibilityMap[C]) {
	vx, vy := viewer.AxisXY()

	for i := 0; i < 8; i++ {
		castLight(viewer, vx, vy, 1, 1.0, 0.0, maxRange,
			octantMultipliers[0][i], octantMultipliers[1][i],
			octantMultipliers[2][i], octantMultipliers[3][i],
			blocksSight, vm)
	}
}

// castLight сканирует один октант. start и end - наклоны границ
// светового сектора; при встрече стены сектор сужается, а тень за ней
// обрабатывается рекурсивным запуском следующего ряда.
func castLight[C coords.Planar[C]](viewer C, vx, vy, row int, start, end float64, maxRange, xx, xy, yx, yy int, blocksSight func(C) bool, vm *VisibilityMap[C]) {
	if start < end {
		return
	}

	for j := row; j <= maxRange; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}
			dy = -j

			// Расчет наклонов (Slopes)
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			// Трансформация координат решётки в глобальные
			x := vx + dx*xx + dy*xy
			y := vy + dx*yx + dy*yy
			c := viewer.FromAxisXY(x, y)

			// Границу поля задаёт метрика топологии, не решётка.
			if viewer.Distance(c) <= maxRange {
				mark(vm, viewer, c, maxRange, blocksSight)
			}

			// Логика теней
			if blocked {
				// Мы идем вдоль стены...
				if blocksSight(c) {
					newStart = rSlope
					continue
				}
				// Стена кончилась, началась пустота
				blocked = false
				start = newStart
			} else if blocksSight(c) && j < maxRange {
				// Мы шли по пустоте и наткнулись на стену
				blocked = true
				castLight(viewer, vx, vy, j+1, start, lSlope, maxRange,
					xx, xy, yx, yy, blocksSight, vm)
				newStart = rSlope
			}
		}

		if blocked {
			break
		}
	}
}
