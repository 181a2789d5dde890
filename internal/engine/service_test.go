package engine

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tessera-server/internal/infrastructure/storage"
	"tessera-server/pkg/api"
	"tessera-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(Config{Seed: 42, MapWidth: 40, MapHeight: 25}, nil)
}

func request(t *testing.T, action string, payload any) api.ClientRequest {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return api.ClientRequest{ID: "req-1", Action: action, Payload: data}
}

func TestNewServiceCreatesDefaultMap(t *testing.T) {
	s := newTestService(t)

	maps := s.ListMaps()
	if len(maps) != 1 || maps[0].Name != DefaultMapName {
		t.Fatalf("ListMaps = %v, want single %q entry", maps, DefaultMapName)
	}
	if maps[0].Topology != "square4" || maps[0].Seed != 42 {
		t.Errorf("default map summary = %+v, want square4 with seed 42", maps[0])
	}
}

func TestHandleGenerate(t *testing.T) {
	s := newTestService(t)
	events := s.Hub.Register("watcher")

	resp := s.HandleRequest(request(t, "GENERATE", api.GeneratePayload{
		Name:     "arena",
		Topology: "hex",
		Kind:     "terrain",
		Width:    20,
		Height:   20,
		Seed:     7,
	}))

	if resp.Type != api.TypeResult {
		t.Fatalf("response type = %q (%s), want RESULT", resp.Type, resp.Error)
	}
	if resp.ID != "req-1" || resp.Action != "GENERATE" {
		t.Errorf("response echo = %q/%q, want req-1/GENERATE", resp.ID, resp.Action)
	}
	if resp.Summary == nil || resp.Summary.Name != "arena" || resp.Summary.Topology != "hex" {
		t.Fatalf("summary = %+v, want arena/hex", resp.Summary)
	}

	// Everyone connected hears about the new map.
	select {
	case ev := <-events:
		if ev.Type != api.TypeEvent || ev.Event != "mapRegenerated" {
			t.Errorf("event = %+v, want mapRegenerated", ev)
		}
	default:
		t.Error("GENERATE should broadcast an event")
	}

	if maps := s.ListMaps(); len(maps) != 2 {
		t.Errorf("ListMaps has %d entries after GENERATE, want 2", len(maps))
	}
}

func TestHandlePathTrivial(t *testing.T) {
	s := newTestService(t)
	start := s.ListMaps()[0].Start

	resp := s.HandleRequest(request(t, "PATH", api.PathPayload{
		Map:  DefaultMapName,
		From: start,
		To:   start,
	}))

	if resp.Type != api.TypeResult {
		t.Fatalf("response type = %q (%s), want RESULT", resp.Type, resp.Error)
	}
	if resp.Path == nil || !resp.Path.Found {
		t.Fatalf("path = %+v, want trivial found path", resp.Path)
	}
	if resp.Path.Cost != 0 || len(resp.Path.Path) != 1 {
		t.Errorf("trivial path = %+v, want single cell with cost 0", resp.Path)
	}
}

func TestHandleFOV(t *testing.T) {
	s := newTestService(t)
	start := s.ListMaps()[0].Start

	resp := s.HandleRequest(request(t, "FOV", api.FOVPayload{
		Map:    DefaultMapName,
		Viewer: start,
		Range:  4,
	}))

	if resp.Type != api.TypeResult {
		t.Fatalf("response type = %q (%s), want RESULT", resp.Type, resp.Error)
	}
	if resp.FOV == nil || resp.FOV.Algorithm != "shadowcasting" {
		t.Fatalf("fov = %+v, want shadowcasting result", resp.FOV)
	}

	// The viewer cell itself is in the result at distance 0.
	found := false
	for _, cell := range resp.FOV.Visible {
		if len(cell.Axes) == len(start) && cell.Axes[0] == start[0] && cell.Axes[1] == start[1] {
			found = true
			if cell.Distance != 0 {
				t.Errorf("viewer distance = %d, want 0", cell.Distance)
			}
		}
	}
	if !found {
		t.Error("viewer cell should be in the FOV result")
	}
}

func TestHandleLOS(t *testing.T) {
	s := newTestService(t)
	start := s.ListMaps()[0].Start

	resp := s.HandleRequest(request(t, "LOS", api.LOSPayload{
		Map:  DefaultMapName,
		From: start,
		To:   start,
	}))

	if resp.Type != api.TypeResult {
		t.Fatalf("response type = %q (%s), want RESULT", resp.Type, resp.Error)
	}
	if resp.LOS == nil || !resp.LOS.Visible {
		t.Errorf("los = %+v, want visible", resp.LOS)
	}
}

func TestHandleLighting(t *testing.T) {
	s := newTestService(t)
	start := s.ListMaps()[0].Start

	resp := s.HandleRequest(request(t, "LIGHTING", api.LightingPayload{
		Map: DefaultMapName,
		Sources: []api.LightSourceView{
			{Position: start, Radius: 4, Intensity: 1.0},
		},
	}))

	if resp.Type != api.TypeResult {
		t.Fatalf("response type = %q (%s), want RESULT", resp.Type, resp.Error)
	}
	if resp.Lighting == nil || len(resp.Lighting.Cells) == 0 {
		t.Fatal("lighting result should contain lit cells")
	}
	for _, cell := range resp.Lighting.Cells {
		if cell.Intensity <= 0 || cell.Intensity > 1 {
			t.Errorf("cell %v intensity = %f outside (0, 1]", cell.Axes, cell.Intensity)
		}
	}
}

func TestHandleMapDocument(t *testing.T) {
	s := newTestService(t)

	resp := s.HandleRequest(request(t, "MAP", api.MapPayload{Map: DefaultMapName}))

	if resp.Type != api.TypeResult {
		t.Fatalf("response type = %q (%s), want RESULT", resp.Type, resp.Error)
	}
	if resp.Map == nil || resp.Map.Topology != "square4" {
		t.Fatalf("map document = %+v, want square4", resp.Map)
	}
	if len(resp.Map.Tiles) != 40*25 {
		t.Errorf("document has %d tiles, want %d", len(resp.Map.Tiles), 40*25)
	}
}

func TestHandleUnknownAction(t *testing.T) {
	s := newTestService(t)

	resp := s.HandleRequest(api.ClientRequest{ID: "req-9", Action: "TELEPORT"})
	if resp.Type != api.TypeError {
		t.Fatalf("response type = %q, want ERROR", resp.Type)
	}
	if resp.ID != "req-9" || resp.Error == "" {
		t.Errorf("error response = %+v, want echoed ID and message", resp)
	}
}

func TestHandleMissingPayload(t *testing.T) {
	s := newTestService(t)

	resp := s.HandleRequest(api.ClientRequest{Action: "PATH"})
	if resp.Type != api.TypeError {
		t.Errorf("response type = %q, want ERROR for missing payload", resp.Type)
	}
}

func TestHandleValidationFailure(t *testing.T) {
	s := newTestService(t)

	resp := s.HandleRequest(request(t, "GENERATE", api.GeneratePayload{
		Name:     "tiny",
		Topology: "square4",
		Kind:     "dungeon",
		Width:    1,
		Height:   1,
	}))
	if resp.Type != api.TypeError {
		t.Errorf("undersized map should be rejected, got %q", resp.Type)
	}
}

func TestHandleUnknownMap(t *testing.T) {
	s := newTestService(t)

	resp := s.HandleRequest(request(t, "MAP", api.MapPayload{Map: "atlantis"}))
	if resp.Type != api.TypeError {
		t.Errorf("unknown map should be an error, got %q", resp.Type)
	}
}

func TestSaveWithoutStorage(t *testing.T) {
	s := newTestService(t)

	resp := s.HandleRequest(request(t, "SAVE", api.MapPayload{Map: DefaultMapName}))
	if resp.Type != api.TypeError {
		t.Errorf("SAVE without storage should fail, got %q", resp.Type)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "maps.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	defer store.Close()

	first := NewService(Config{Seed: 42, MapWidth: 40, MapHeight: 25}, store)

	resp := first.HandleRequest(request(t, "SAVE", api.MapPayload{Map: DefaultMapName}))
	if resp.Type != api.TypeResult {
		t.Fatalf("SAVE failed: %s", resp.Error)
	}

	// A fresh service with a different seed sees the persisted map.
	second := NewService(Config{Seed: 1, MapWidth: 10, MapHeight: 10}, store)
	resp = second.HandleRequest(request(t, "LOAD", api.MapPayload{Map: DefaultMapName}))
	if resp.Type != api.TypeResult {
		t.Fatalf("LOAD failed: %s", resp.Error)
	}
	if resp.Summary == nil || resp.Summary.Seed != 42 {
		t.Fatalf("loaded summary = %+v, want seed 42", resp.Summary)
	}

	mapResp := second.HandleRequest(request(t, "MAP", api.MapPayload{Map: DefaultMapName}))
	if mapResp.Type != api.TypeResult || len(mapResp.Map.Tiles) != 40*25 {
		t.Errorf("loaded document should carry the original 40x25 tiles")
	}
}
