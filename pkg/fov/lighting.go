package fov

import (
	"tessera-server/pkg/coords"
)

// RGB - цвет света, каждый канал в [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// White - нейтральный белый свет.
var White = RGB{R: 1, G: 1, B: 1}

// LightSource - точечный источник света.
type LightSource[C any] struct {
	// Position - клетка источника.
	Position C
	// Radius - радиус действия в метрике топологии. Источник с
	// нулевым или отрицательным радиусом ничего не освещает.
	Radius int
	// Intensity - яркость в центре, обычно в [0, 1].
	Intensity float64
	// Color - цвет света.
	Color RGB
	// Penetrating - свет проникает сквозь окклюдеры (магическое
	// свечение); обычный свет отбрасывает тени по полю зрения.
	Penetrating bool
}

// NewLightSource создаёт белый непроникающий источник.
func NewLightSource[C any](pos C, radius int, intensity float64) LightSource[C] {
	return LightSource[C]{
		Position:  pos,
		Radius:    radius,
		Intensity: intensity,
		Color:     White,
	}
}

// WithColor задаёт цвет источника.
func (l LightSource[C]) WithColor(r, g, b float64) LightSource[C] {
	l.Color = RGB{R: r, G: g, B: b}
	return l
}

// WithPenetrating включает проникновение света сквозь окклюдеры.
func (l LightSource[C]) WithPenetrating(penetrating bool) LightSource[C] {
	l.Penetrating = penetrating
	return l
}

// Light - накопленная освещённость одной клетки.
// Вклады источников складываются, каждый канал ограничен 1.0 сверху.
type Light struct {
	Intensity float64 `json:"intensity"`
	R         float64 `json:"r"`
	G         float64 `json:"g"`
	B         float64 `json:"b"`
}

// LightingCalculator накапливает свет от набора источников.
// Тени считаются полем зрения источника: клетка освещена непроникающим
// источником, только если она видна из его позиции.
type LightingCalculator[C coords.Planar[C]] struct {
	sources []LightSource[C]
	fov     *Calculator[C]
}

// NewLightingCalculator создаёт калькулятор освещения.
// Тени по умолчанию строятся shadowcasting-ом.
func NewLightingCalculator[C coords.Planar[C]]() *LightingCalculator[C] {
	return &LightingCalculator[C]{
		fov: New[C](Shadowcasting),
	}
}

// AddSource добавляет источник света.
func (lc *LightingCalculator[C]) AddSource(source LightSource[C]) *LightingCalculator[C] {
	lc.sources = append(lc.sources, source)
	return lc
}

// Sources возвращает добавленные источники.
func (lc *LightingCalculator[C]) Sources() []LightSource[C] {
	return lc.sources
}

// CalculateLighting вычисляет карту освещённости от всех источников.
// Спад линейный: вклад intensity * (1 - d/radius), на границе радиуса
// вклад нулевой. Вклады источников аддитивны, интенсивность и каждый
// цветовой канал ограничены 1.0.
func (lc *LightingCalculator[C]) CalculateLighting(blocksSight func(C) bool) map[C]Light {
	result := make(map[C]Light)

	for _, src := range lc.sources {
		if src.Radius <= 0 {
			continue
		}

		pred := blocksSight
		if src.Penetrating {
			pred = func(C) bool { return false }
		}

		vm := lc.fov.CalculateFOV(src.Position, src.Radius, pred)
		for _, c := range vm.VisibleCoordinates() {
			d := src.Position.Distance(c)
			falloff := 1.0 - float64(d)/float64(src.Radius)
			if falloff <= 0 {
				continue
			}
			contrib := src.Intensity * falloff

			acc := result[c]
			acc.Intensity = clamp1(acc.Intensity + contrib)
			acc.R = clamp1(acc.R + contrib*src.Color.R)
			acc.G = clamp1(acc.G + contrib*src.Color.G)
			acc.B = clamp1(acc.B + contrib*src.Color.B)
			result[c] = acc
		}
	}

	return result
}

func clamp1(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}
