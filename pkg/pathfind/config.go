package pathfind

// Config - конфигурация расширенного поиска. Собирается один раз на
// запрос цепочкой With*-методов и читается поиском без изменений.
type Config[C comparable] struct {
	// MaxDistance - жёсткий лимит разведки: клетки дальше этого
	// расстояния от старта не рассматриваются. Отрицательное значение
	// отключает лимит.
	MaxDistance int

	// BaseCost - базовая стоимость входа в клетку без переопределения.
	BaseCost int

	terrainCosts map[C]int
	obstacles    map[C]struct{}
	blockers     map[C]string
}

// NewConfig создаёт конфигурацию по умолчанию: без лимита разведки,
// с единичной базовой стоимостью.
func NewConfig[C comparable]() *Config[C] {
	return &Config[C]{
		MaxDistance:  -1,
		BaseCost:     1,
		terrainCosts: make(map[C]int),
		obstacles:    make(map[C]struct{}),
		blockers:     make(map[C]string),
	}
}

// WithMaxDistance задаёт лимит разведки.
func (c *Config[C]) WithMaxDistance(d int) *Config[C] {
	c.MaxDistance = d
	return c
}

// WithBaseCost задаёт базовую стоимость входа в клетку.
func (c *Config[C]) WithBaseCost(cost int) *Config[C] {
	c.BaseCost = cost
	return c
}

// WithTerrainCost переопределяет стоимость входа для конкретной клетки.
func (c *Config[C]) WithTerrainCost(coord C, cost int) *Config[C] {
	c.terrainCosts[coord] = cost
	return c
}

// WithObstacles помечает клетки непроходимыми.
func (c *Config[C]) WithObstacles(coords ...C) *Config[C] {
	for _, coord := range coords {
		c.obstacles[coord] = struct{}{}
	}
	return c
}

// WithBlockingEntity помечает клетку занятой сущностью с данным ID.
// Для поиска занятая клетка равносильна препятствию, но ID сохраняется:
// вызывающий код может выяснить, кто именно перегородил путь.
func (c *Config[C]) WithBlockingEntity(coord C, entityID string) *Config[C] {
	c.blockers[coord] = entityID
	return c
}

// CostAt возвращает стоимость входа в клетку: переопределение местности,
// если оно есть, иначе базовую стоимость.
func (c *Config[C]) CostAt(coord C) int {
	if cost, ok := c.terrainCosts[coord]; ok {
		return cost
	}
	return c.BaseCost
}

// IsPassable сообщает, проходима ли клетка с учётом препятствий
// и блокирующих сущностей.
func (c *Config[C]) IsPassable(coord C) bool {
	if _, blocked := c.obstacles[coord]; blocked {
		return false
	}
	_, occupied := c.blockers[coord]
	return !occupied
}

// BlockingEntityAt возвращает ID сущности, занимающей клетку, если она есть.
func (c *Config[C]) BlockingEntityAt(coord C) (string, bool) {
	id, ok := c.blockers[coord]
	return id, ok
}
