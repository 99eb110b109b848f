package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/lost-hosts/lost/src/internal/registry"
)

// Handler manages all API endpoints. A mutex serializes access to the
// registry so that every operation runs to completion before the next.
type Handler struct {
	mu            sync.Mutex
	reg           *registry.Registry
	persister     registry.Persister
	hostsFile     string
	confirmations *Confirmations
}

// NewHandler creates a handler operating on reg and saving through persister.
func NewHandler(reg *registry.Registry, persister registry.Persister, hostsFile string, confirmations *Confirmations) *Handler {
	return &Handler{
		reg:           reg,
		persister:     persister,
		hostsFile:     hostsFile,
		confirmations: confirmations,
	}
}

// withRegistry runs fn while holding the registry lock, with confirmations answered by rc.
func (h *Handler) withRegistry(ctx context.Context, rc registry.Confirmer, fn func(ctx context.Context, reg *registry.Registry)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.reg.SetConfirmer(rc)
	defer h.reg.SetConfirmer(nil)

	fn(ctx, h.reg)
}

// writeJSON writes a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// writeCreated writes a 201 Created response with data.
func writeCreated(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, data)
}

// decodeJSON decodes JSON from the request body.
func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
