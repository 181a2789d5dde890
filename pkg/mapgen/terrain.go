package mapgen

import (
	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/sirupsen/logrus"

	"tessera-server/pkg/coords"
	"tessera-server/pkg/grid"
	"tessera-server/pkg/logger"
)

// Параметры шума открытой местности.
const (
	terrainFreq   = 0.09
	costFreq      = 0.17
	wallThreshold = 0.55
)

// Terrain генерирует открытую местность из двух слоёв симплекс-шума:
// первый решает, где скалы (стены), второй задаёт стоимость местности
// от 1 до 5. Для одного сида слои независимы.
func Terrain[C coords.Planar[C]](width, height int, seed int64) *Map[C] {
	elevation := opensimplex.NewNormalized(seed)
	roughness := opensimplex.NewNormalized(seed + 1)

	cells := grid.New[C, Cell](width, height, 0, 0)
	var proto C

	walls := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			e := elevation.Eval2(float64(x)*terrainFreq, float64(y)*terrainFreq)
			if e > wallThreshold {
				cells.Insert(proto.FromAxisXY(x, y), Cell{Wall: true, Cost: 1})
				walls++
				continue
			}
			r := roughness.Eval2(float64(x)*costFreq, float64(y)*costFreq)
			cost := 1 + int(r*4.999)
			cells.Insert(proto.FromAxisXY(x, y), Cell{Wall: false, Cost: cost})
		}
	}

	m := &Map[C]{Cells: cells, Seed: seed}
	m.Start = findOpen(cells, width, height)

	logger.Log.WithFields(logrus.Fields{
		"component": "mapgen",
		"kind":      "terrain",
		"seed":      seed,
		"walls":     walls,
	}).Debug("Map generated")

	return m
}

// findOpen ищет проходимую клетку, начиная от центра области по
// расширяющимся кольцам. Если свободных клеток нет вовсе, центр
// принудительно вырезается.
func findOpen[C coords.Planar[C]](cells *grid.Grid[C, Cell], width, height int) C {
	var proto C
	cx, cy := width/2, height/2

	maxRing := max(width, height)
	for ring := 0; ring <= maxRing; ring++ {
		for dy := -ring; dy <= ring; dy++ {
			for dx := -ring; dx <= ring; dx++ {
				if absInt(dx) != ring && absInt(dy) != ring {
					continue
				}
				c := proto.FromAxisXY(cx+dx, cy+dy)
				if cell, ok := cells.Get(c); ok && !cell.Wall {
					return c
				}
			}
		}
	}

	center := proto.FromAxisXY(cx, cy)
	cells.Insert(center, Cell{Wall: false, Cost: 1})
	return center
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
