package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartbible/connect/internal/catalog"
)

// CatalogHandler serves the read-only module content.
type CatalogHandler struct{}

// Modules handles GET /api/catalog/modules requests.
func (h *CatalogHandler) Modules(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(catalog.Modules())
}

// Stories handles GET /api/catalog/modules/{value}/stories requests.
func (h *CatalogHandler) Stories(w http.ResponseWriter, r *http.Request) {
	value := chi.URLParam(r, "value")
	stories := catalog.Stories(value)
	if stories == nil {
		http.Error(w, "module not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(stories)
}
