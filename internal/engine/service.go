package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tessera-server/internal/infrastructure/storage"
	"tessera-server/internal/network"
	"tessera-server/pkg/api"
	"tessera-server/pkg/logger"
	"tessera-server/pkg/tilemap"
)

// DefaultMapName - имя карты, создаваемой при старте сервиса.
const DefaultMapName = "default"

// Service - ядро: именованные карты и выполнение запросов к ним.
// Все методы безопасны для конкурентного вызова.
type Service struct {
	cfg Config

	// Hub рассылает события всем подключённым клиентам.
	Hub *network.Broadcaster

	// store может быть nil: тогда SAVE/LOAD недоступны.
	store *storage.Store

	mu     sync.RWMutex
	worlds map[string]worldMap
}

// NewService создаёт сервис и генерирует карту по умолчанию из мастер-сида.
func NewService(cfg Config, store *storage.Store) *Service {
	s := &Service{
		cfg:    cfg,
		Hub:    network.NewBroadcaster(),
		store:  store,
		worlds: make(map[string]worldMap),
	}

	w, err := generateWorld(tilemap.TopologySquare4, "dungeon", cfg.MapWidth, cfg.MapHeight, cfg.Seed)
	if err != nil {
		// Квадратная топология с валидным размером не может не собраться.
		panic(fmt.Sprintf("engine: default map: %v", err))
	}
	s.worlds[DefaultMapName] = w

	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"seed":      cfg.Seed,
		"size":      fmt.Sprintf("%dx%d", cfg.MapWidth, cfg.MapHeight),
	}).Info("Default map generated")

	return s
}

// HandleRequest выполняет один запрос клиента и возвращает ответ.
// Ошибки выполнения упаковываются в ответ типа ERROR - паник и
// разрыва соединения они не вызывают.
func (s *Service) HandleRequest(req api.ClientRequest) api.ServerResponse {
	resp, err := s.dispatch(req)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"component": "engine",
			"action":    req.Action,
		}).WithError(err).Warn("Request failed")
		return api.ServerResponse{
			Type:   api.TypeError,
			ID:     req.ID,
			Action: req.Action,
			Error:  err.Error(),
		}
	}
	resp.Type = api.TypeResult
	resp.ID = req.ID
	resp.Action = req.Action
	return resp
}

func (s *Service) dispatch(req api.ClientRequest) (api.ServerResponse, error) {
	switch req.Action {
	case "GENERATE":
		return s.handleGenerate(req)
	case "PATH":
		p, err := decodePayload[api.PathPayload](req)
		if err != nil {
			return api.ServerResponse{}, err
		}
		w, err := s.world(p.Map)
		if err != nil {
			return api.ServerResponse{}, err
		}
		result, err := w.FindPath(p)
		return api.ServerResponse{Path: result}, err
	case "FOV":
		p, err := decodePayload[api.FOVPayload](req)
		if err != nil {
			return api.ServerResponse{}, err
		}
		w, err := s.world(p.Map)
		if err != nil {
			return api.ServerResponse{}, err
		}
		result, err := w.FieldOfView(p)
		return api.ServerResponse{FOV: result}, err
	case "LOS":
		p, err := decodePayload[api.LOSPayload](req)
		if err != nil {
			return api.ServerResponse{}, err
		}
		w, err := s.world(p.Map)
		if err != nil {
			return api.ServerResponse{}, err
		}
		result, err := w.LineOfSight(p)
		return api.ServerResponse{LOS: result}, err
	case "LIGHTING":
		p, err := decodePayload[api.LightingPayload](req)
		if err != nil {
			return api.ServerResponse{}, err
		}
		w, err := s.world(p.Map)
		if err != nil {
			return api.ServerResponse{}, err
		}
		result, err := w.Lighting(p)
		return api.ServerResponse{Lighting: result}, err
	case "MAP":
		p, err := decodePayload[api.MapPayload](req)
		if err != nil {
			return api.ServerResponse{}, err
		}
		w, err := s.world(p.Map)
		if err != nil {
			return api.ServerResponse{}, err
		}
		return api.ServerResponse{Map: w.Document()}, nil
	case "LIST":
		return api.ServerResponse{Maps: s.ListMaps()}, nil
	case "SAVE":
		p, err := decodePayload[api.MapPayload](req)
		if err != nil {
			return api.ServerResponse{}, err
		}
		summary, err := s.SaveMap(p.Map)
		return api.ServerResponse{Summary: summary}, err
	case "LOAD":
		p, err := decodePayload[api.MapPayload](req)
		if err != nil {
			return api.ServerResponse{}, err
		}
		summary, err := s.LoadMap(p.Map)
		return api.ServerResponse{Summary: summary}, err
	default:
		return api.ServerResponse{}, fmt.Errorf("unknown action %q", req.Action)
	}
}

func (s *Service) handleGenerate(req api.ClientRequest) (api.ServerResponse, error) {
	p, err := decodePayload[api.GeneratePayload](req)
	if err != nil {
		return api.ServerResponse{}, err
	}

	topology := tilemap.Topology(p.Topology)
	if !topology.Valid() {
		return api.ServerResponse{}, fmt.Errorf("unknown topology %q", p.Topology)
	}

	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w, err := generateWorld(topology, p.Kind, p.Width, p.Height, seed)
	if err != nil {
		return api.ServerResponse{}, err
	}

	s.mu.Lock()
	s.worlds[p.Name] = w
	s.mu.Unlock()

	summary := w.Summary(p.Name)
	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"map":       p.Name,
		"topology":  p.Topology,
		"kind":      p.Kind,
		"seed":      seed,
	}).Info("Map generated")

	// Все клиенты узнают о новой карте.
	s.Hub.Broadcast(api.ServerResponse{
		Type:    api.TypeEvent,
		Event:   "mapRegenerated",
		Summary: &summary,
	})

	return api.ServerResponse{Summary: &summary}, nil
}

// world возвращает именованную карту.
func (s *Service) world(name string) (worldMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.worlds[name]
	if !ok {
		return nil, fmt.Errorf("map %q not found", name)
	}
	return w, nil
}

// ListMaps возвращает метаданные всех карт в памяти.
func (s *Service) ListMaps() []api.MapSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]api.MapSummary, 0, len(s.worlds))
	for name, w := range s.worlds {
		summaries = append(summaries, w.Summary(name))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Name < summaries[j].Name
	})
	return summaries
}

// SaveMap сохраняет карту в базу.
func (s *Service) SaveMap(name string) (*api.MapSummary, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	w, err := s.world(name)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveMap(name, w.Document()); err != nil {
		return nil, err
	}
	summary := w.Summary(name)
	return &summary, nil
}

// LoadMap загружает карту из базы и делает её доступной для запросов.
func (s *Service) LoadMap(name string) (*api.MapSummary, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	doc, err := s.store.LoadMap(name)
	if err != nil {
		return nil, err
	}
	w, err := loadWorld(doc)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.worlds[name] = w
	s.mu.Unlock()

	summary := w.Summary(name)
	return &summary, nil
}

// SaveAll сохраняет все карты в базу. Вызывается при остановке сервера.
func (s *Service) SaveAll() {
	if s.store == nil {
		return
	}

	for _, summary := range s.ListMaps() {
		if _, err := s.SaveMap(summary.Name); err != nil {
			logger.Log.WithField("map", summary.Name).WithError(err).Error("Failed to save map")
		}
	}
	logger.Log.WithField("component", "engine").Info("Maps saved")
}

// decodePayload разбирает payload запроса и прогоняет валидацию.
func decodePayload[P api.Validator](req api.ClientRequest) (P, error) {
	var p P
	if len(req.Payload) == 0 {
		return p, fmt.Errorf("%s: payload is required", req.Action)
	}
	if err := json.Unmarshal(req.Payload, &p); err != nil {
		return p, fmt.Errorf("%s: malformed payload: %w", req.Action, err)
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%s: %w", req.Action, err)
	}
	return p, nil
}
