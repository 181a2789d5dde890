package api

import (
	"encoding/json"

	"tessera-server/pkg/tilemap"
)

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientRequest это корневой объект для всех сообщений от клиента к серверу.
type ClientRequest struct {
	// ID запроса для корреляции ответа. Сервер возвращает его как есть.
	ID string `json:"id,omitempty"`

	// Action название операции: GENERATE, PATH, FOV, LOS, LIGHTING,
	// MAP, LIST, SAVE, LOAD.
	Action string `json:"action"`

	// Payload JSON-объект с данными операции. Структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// GeneratePayload создаёт (или пересоздаёт) именованную карту.
type GeneratePayload struct {
	Name     string `json:"name"`
	Topology string `json:"topology"` // hex, square4, square8, triangular, isometric
	Kind     string `json:"kind"`     // dungeon | terrain
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	// Seed зерно генерации; 0 - выбрать случайно.
	Seed int64 `json:"seed,omitempty"`
}

// PathPayload запрашивает поиск пути на именованной карте.
// Координаты передаются осями топологии карты (две или, для
// треугольной, три компоненты).
type PathPayload struct {
	Map  string `json:"map"`
	From []int  `json:"from"`
	To   []int  `json:"to"`
	// MaxDistance ограничивает разведку; 0 или меньше - без лимита.
	MaxDistance int `json:"maxDistance,omitempty"`
}

// FOVPayload запрашивает поле зрения.
type FOVPayload struct {
	Map    string `json:"map"`
	Viewer []int  `json:"viewer"`
	Range  int    `json:"range"`
	// Algorithm: shadowcasting (по умолчанию), raycasting, floodfill, bresenham.
	Algorithm string `json:"algorithm,omitempty"`
}

// LOSPayload запрашивает парную проверку прямой видимости.
type LOSPayload struct {
	Map       string `json:"map"`
	From      []int  `json:"from"`
	To        []int  `json:"to"`
	Algorithm string `json:"algorithm,omitempty"`
}

// LightSourceView описывает один источник света в запросе освещения.
type LightSourceView struct {
	Position  []int   `json:"position"`
	Radius    int     `json:"radius"`
	Intensity float64 `json:"intensity"`
	// R, G, B цвет света в [0, 1]; нулевой цвет трактуется как белый.
	R float64 `json:"r,omitempty"`
	G float64 `json:"g,omitempty"`
	B float64 `json:"b,omitempty"`
	// Penetrating свет проникает сквозь стены.
	Penetrating bool `json:"penetrating,omitempty"`
}

// LightingPayload запрашивает карту освещённости от набора источников.
type LightingPayload struct {
	Map     string            `json:"map"`
	Sources []LightSourceView `json:"sources"`
}

// MapPayload адресует именованную карту (MAP, SAVE, LOAD).
type MapPayload struct {
	Map string `json:"map"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы ответов сервера.
const (
	TypeResult = "RESULT"
	TypeError  = "ERROR"
	TypeEvent  = "EVENT"
)

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Для запроса клиента заполняется ровно одно из полей результата
// (по Action); EVENT-сообщения рассылаются всем подключённым клиентам.
type ServerResponse struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	Action string `json:"action,omitempty"`

	// Error текст ошибки, только при Type == ERROR.
	Error string `json:"error,omitempty"`

	// Event название события, только при Type == EVENT.
	Event string `json:"event,omitempty"`

	Path     *PathResult        `json:"path,omitempty"`
	FOV      *FOVResult         `json:"fov,omitempty"`
	LOS      *LOSResult         `json:"los,omitempty"`
	Lighting *LightingResult    `json:"lighting,omitempty"`
	Map      *tilemap.Document  `json:"map,omitempty"`
	Maps     []MapSummary       `json:"maps,omitempty"`
	Summary  *MapSummary        `json:"summary,omitempty"`
}

// MapSummary метаданные одной именованной карты.
type MapSummary struct {
	Name     string `json:"name"`
	Topology string `json:"topology"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Seed     int64  `json:"seed"`
	// Start гарантированно проходимая стартовая клетка карты.
	Start []int `json:"start"`
}

// PathResult результат поиска пути.
type PathResult struct {
	Found bool `json:"found"`
	// Cost суммарная стоимость пути (без стартовой клетки).
	Cost int `json:"cost,omitempty"`
	// Path клетки пути, включая старт и цель.
	Path [][]int `json:"path,omitempty"`
}

// VisibleCell одна видимая клетка в результате FOV.
type VisibleCell struct {
	Axes     []int   `json:"axes"`
	Distance int     `json:"distance"`
	Light    float64 `json:"light"`
	Wall     bool    `json:"wall,omitempty"`
}

// FOVResult результат вычисления поля зрения.
type FOVResult struct {
	Algorithm string        `json:"algorithm"`
	Visible   []VisibleCell `json:"visible"`
}

// LOSResult результат парной проверки видимости.
type LOSResult struct {
	Visible bool `json:"visible"`
}

// LitCell освещённость одной клетки.
type LitCell struct {
	Axes      []int   `json:"axes"`
	Intensity float64 `json:"intensity"`
	R         float64 `json:"r"`
	G         float64 `json:"g"`
	B         float64 `json:"b"`
}

// LightingResult результат вычисления освещения.
type LightingResult struct {
	Cells []LitCell `json:"cells"`
}
