// Package convert содержит конвертации между топологиями.
//
// Конвертации делятся на два класса с разными гарантиями:
//
//   - Точные (Square ↔ Iso): между топологиями существует взаимно
//     однозначное соответствие клеток, выполняется закон кругового
//     обхода convert(convert(x)) == x. Реализуются чистой арифметикой,
//     без таблиц и округлений.
//   - Приближённые (Hex ↔ Square, Hex ↔ Iso): точного соответствия нет,
//     клетка проецируется геометрически "наилучшим образом". Обратная
//     конвертация не обязана вернуть исходную клетку - это свойство
//     данных, а не ошибка.
//
// Конвертация никогда не завершается неудачей: обе разновидности -
// тотальные функции.
package convert

import (
	"tessera-server/pkg/coords/hex"
	"tessera-server/pkg/coords/iso"
	"tessera-server/pkg/coords/square"
)

// --- Точные конвертации: Square ↔ Iso ---

// Square4ToIso точно переводит 4-связную квадратную клетку в изометрическую.
// Изометрия - визуальная трансформация той же логической сетки,
// поэтому оси переносятся без изменений.
func Square4ToIso(c square.Coord4) iso.Diamond {
	return iso.Diamond{X: c.X, Y: c.Y}
}

// Square8ToIso точно переводит 8-связную квадратную клетку в изометрическую.
func Square8ToIso(c square.Coord8) iso.Diamond {
	return iso.Diamond{X: c.X, Y: c.Y}
}

// IsoToSquare4 точно переводит изометрическую клетку в 4-связную квадратную.
func IsoToSquare4(d iso.Diamond) square.Coord4 {
	return square.Coord4{X: d.X, Y: d.Y}
}

// IsoToSquare8 точно переводит изометрическую клетку в 8-связную квадратную.
func IsoToSquare8(d iso.Diamond) square.Coord8 {
	return square.Coord8{X: d.X, Y: d.Y}
}

// --- Приближённые конвертации: Hex ↔ Square ↔ Iso ---

// HexToSquare4 приближённо проецирует гекс на квадратную сетку,
// компенсируя сдвиг рядов аксиальной системы.
func HexToSquare4(a hex.Axial) square.Coord4 {
	return square.Coord4{X: a.Q + a.R/2, Y: a.R}
}

// HexToSquare8 приближённо проецирует гекс на 8-связную квадратную сетку.
func HexToSquare8(a hex.Axial) square.Coord8 {
	return square.Coord8{X: a.Q + a.R/2, Y: a.R}
}

// Square4ToHex приближённо проецирует квадратную клетку на гекс-сетку.
func Square4ToHex(c square.Coord4) hex.Axial {
	return hex.Axial{Q: c.X - c.Y/2, R: c.Y}
}

// Square8ToHex приближённо проецирует 8-связную квадратную клетку на гекс-сетку.
func Square8ToHex(c square.Coord8) hex.Axial {
	return hex.Axial{Q: c.X - c.Y/2, R: c.Y}
}

// HexToIso приближённо переводит гекс в изометрию через квадратную сетку.
func HexToIso(a hex.Axial) iso.Diamond {
	return Square4ToIso(HexToSquare4(a))
}

// IsoToHex приближённо переводит изометрическую клетку в гекс через квадратную сетку.
func IsoToHex(d iso.Diamond) hex.Axial {
	return Square4ToHex(IsoToSquare4(d))
}

// --- Пакетные варианты ---

// Batch применяет скалярную конвертацию к последовательности координат.
// Результат имеет ту же длину и тот же порядок, что вход, и поэлементно
// совпадает с одиночными вызовами fn - пакетный вариант существует как
// контракт производительности, а не семантики.
func Batch[S, D any](src []S, fn func(S) D) []D {
	if src == nil {
		return nil
	}
	dst := make([]D, len(src))
	for i, c := range src {
		dst[i] = fn(c)
	}
	return dst
}
