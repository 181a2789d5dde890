package server

import (
	"encoding/json"
	"net/http"

	"tessera-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.Service
}

func NewDebugHandler(s *engine.Service) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/maps", h.handleListMaps)
	mux.HandleFunc("/debug/clients", h.handleClients)
}

// /debug/maps - список карт в памяти с метаданными
func (h *DebugHandler) handleListMaps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.ListMaps())
}

// /debug/clients - количество активных подписчиков
func (h *DebugHandler) handleClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{
		"subscribers": h.Service.Hub.SubscriberCount(),
	})
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (пустой список), возвращаем [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
