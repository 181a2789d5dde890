package engine

import (
	"fmt"
	"sort"

	"tessera-server/pkg/api"
	"tessera-server/pkg/coords"
	"tessera-server/pkg/fov"
	"tessera-server/pkg/mapgen"
	"tessera-server/pkg/pathfind"
	"tessera-server/pkg/tilemap"
)

// worldMap - карта с стёртым типом топологии. Координаты на границе
// интерфейса передаются осями (как в протоколе), внутри каждая
// реализация работает со своим конкретным типом координат.
type worldMap interface {
	Topology() tilemap.Topology
	Summary(name string) api.MapSummary
	Document() *tilemap.Document
	FindPath(p api.PathPayload) (*api.PathResult, error)
	FieldOfView(p api.FOVPayload) (*api.FOVResult, error)
	LineOfSight(p api.LOSPayload) (*api.LOSResult, error)
	Lighting(p api.LightingPayload) (*api.LightingResult, error)
}

// boundMap связывает сгенерированную карту с кодеком осей её топологии.
type boundMap[C coords.Planar[C]] struct {
	topology tilemap.Topology
	m        *mapgen.Map[C]
	axes     func(C) []int
	from     func([]int) (C, error)
}

func (b *boundMap[C]) Topology() tilemap.Topology { return b.topology }

func (b *boundMap[C]) Summary(name string) api.MapSummary {
	return api.MapSummary{
		Name:     name,
		Topology: string(b.topology),
		Width:    b.m.Cells.Width(),
		Height:   b.m.Cells.Height(),
		Seed:     b.m.Seed,
		Start:    b.axes(b.m.Start),
	}
}

func (b *boundMap[C]) Document() *tilemap.Document {
	return tilemap.Encode(b.topology, b.m, b.axes)
}

func (b *boundMap[C]) FindPath(p api.PathPayload) (*api.PathResult, error) {
	from, err := b.from(p.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := b.from(p.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	// Лимит разведки выражается через предикат проходимости:
	// клетка за лимитом для этого запроса непроходима.
	passable := b.m.Passable
	if p.MaxDistance > 0 {
		passable = func(c C) bool {
			return b.m.Passable(c) && from.Distance(c) <= p.MaxDistance
		}
	}

	path, cost, ok := pathfind.AStar(from, to, passable, b.m.CostAt)
	if !ok {
		return &api.PathResult{Found: false}, nil
	}

	encoded := make([][]int, len(path))
	for i, c := range path {
		encoded[i] = b.axes(c)
	}
	return &api.PathResult{Found: true, Cost: cost, Path: encoded}, nil
}

func (b *boundMap[C]) FieldOfView(p api.FOVPayload) (*api.FOVResult, error) {
	viewer, err := b.from(p.Viewer)
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	algo, ok := fov.ParseAlgorithm(p.Algorithm)
	if !ok {
		return nil, fmt.Errorf("unknown fov algorithm %q", p.Algorithm)
	}

	vm := fov.New[C](algo).CalculateFOV(viewer, p.Range, b.m.BlocksSight)

	cells := make([]api.VisibleCell, 0, len(vm.VisibleCoordinates()))
	for _, c := range vm.VisibleCoordinates() {
		state, _ := vm.StateAt(c)
		cells = append(cells, api.VisibleCell{
			Axes:     b.axes(c),
			Distance: state.Distance,
			Light:    state.LightLevel,
			Wall:     state.BlocksSight,
		})
	}
	sortByAxes(cells, func(v api.VisibleCell) []int { return v.Axes })

	return &api.FOVResult{Algorithm: algo.String(), Visible: cells}, nil
}

func (b *boundMap[C]) LineOfSight(p api.LOSPayload) (*api.LOSResult, error) {
	from, err := b.from(p.From)
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	to, err := b.from(p.To)
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	algo, ok := fov.ParseAlgorithm(p.Algorithm)
	if !ok {
		return nil, fmt.Errorf("unknown fov algorithm %q", p.Algorithm)
	}

	visible := fov.New[C](algo).LineOfSight(from, to, b.m.BlocksSight)
	return &api.LOSResult{Visible: visible}, nil
}

func (b *boundMap[C]) Lighting(p api.LightingPayload) (*api.LightingResult, error) {
	lc := fov.NewLightingCalculator[C]()
	for i, view := range p.Sources {
		pos, err := b.from(view.Position)
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		src := fov.NewLightSource(pos, view.Radius, view.Intensity)
		if view.R != 0 || view.G != 0 || view.B != 0 {
			src = src.WithColor(view.R, view.G, view.B)
		}
		src = src.WithPenetrating(view.Penetrating)
		lc.AddSource(src)
	}

	lit := lc.CalculateLighting(b.m.BlocksSight)
	cells := make([]api.LitCell, 0, len(lit))
	for c, light := range lit {
		cells = append(cells, api.LitCell{
			Axes:      b.axes(c),
			Intensity: light.Intensity,
			R:         light.R,
			G:         light.G,
			B:         light.B,
		})
	}
	sortByAxes(cells, func(v api.LitCell) []int { return v.Axes })

	return &api.LightingResult{Cells: cells}, nil
}

// sortByAxes даёт ответам детерминированный порядок клеток:
// лексикографически по осям.
func sortByAxes[T any](items []T, axes func(T) []int) {
	sort.Slice(items, func(i, j int) bool {
		a, b := axes(items[i]), axes(items[j])
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return len(a) < len(b)
	})
}

// --- Фабрики карт по топологиям ---

func generateWorld(topology tilemap.Topology, kind string, width, height int, seed int64) (worldMap, error) {
	switch topology {
	case tilemap.TopologyHex:
		return genFor(topology, kind, width, height, seed, tilemap.HexAxes, tilemap.HexFromAxes), nil
	case tilemap.TopologySquare4:
		return genFor(topology, kind, width, height, seed, tilemap.Square4Axes, tilemap.Square4FromAxes), nil
	case tilemap.TopologySquare8:
		return genFor(topology, kind, width, height, seed, tilemap.Square8Axes, tilemap.Square8FromAxes), nil
	case tilemap.TopologyTriangular:
		return genFor(topology, kind, width, height, seed, tilemap.TriAxes, tilemap.TriFromAxes), nil
	case tilemap.TopologyIsometric:
		return genFor(topology, kind, width, height, seed, tilemap.IsoAxes, tilemap.IsoFromAxes), nil
	default:
		return nil, fmt.Errorf("unknown topology %q", topology)
	}
}

func genFor[C coords.Planar[C]](topology tilemap.Topology, kind string, width, height int, seed int64, axes func(C) []int, from func([]int) (C, error)) worldMap {
	var m *mapgen.Map[C]
	if kind == "terrain" {
		m = mapgen.Terrain[C](width, height, seed)
	} else {
		m = mapgen.Dungeon[C](width, height, seed)
	}
	return &boundMap[C]{topology: topology, m: m, axes: axes, from: from}
}

func loadWorld(doc *tilemap.Document) (worldMap, error) {
	switch doc.Topology {
	case tilemap.TopologyHex:
		return loadFor(doc, tilemap.HexAxes, tilemap.HexFromAxes)
	case tilemap.TopologySquare4:
		return loadFor(doc, tilemap.Square4Axes, tilemap.Square4FromAxes)
	case tilemap.TopologySquare8:
		return loadFor(doc, tilemap.Square8Axes, tilemap.Square8FromAxes)
	case tilemap.TopologyTriangular:
		return loadFor(doc, tilemap.TriAxes, tilemap.TriFromAxes)
	case tilemap.TopologyIsometric:
		return loadFor(doc, tilemap.IsoAxes, tilemap.IsoFromAxes)
	default:
		return nil, fmt.Errorf("unknown topology %q", doc.Topology)
	}
}

func loadFor[C coords.Planar[C]](doc *tilemap.Document, axes func(C) []int, from func([]int) (C, error)) (worldMap, error) {
	m, err := tilemap.Decode(doc, doc.Topology, from)
	if err != nil {
		return nil, err
	}
	return &boundMap[C]{topology: doc.Topology, m: m, axes: axes, from: from}, nil
}
