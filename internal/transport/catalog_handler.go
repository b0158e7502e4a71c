package transport

import (
	"net/http"

	"harvest-keeper/internal/catalog"
	"harvest-keeper/internal/domain"
	"harvest-keeper/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// CatalogEntryResponse is one plant type with its storage profile
type CatalogEntryResponse struct {
	PlantType string                `json:"plant_type"`
	Profile   domain.StorageProfile `json:"profile"`
	Fallback  bool                  `json:"fallback,omitempty"`
}

// CatalogHandler serves the read-only storage profile catalog
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// RegisterRoutes registers the catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{plantType}", h.Lookup)
	})
}

// List returns every registered plant type in registration order
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.catalog.Entries()
	out := make([]CatalogEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, CatalogEntryResponse{PlantType: e.PlantType, Profile: e.Profile})
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"fallback_type": h.catalog.FallbackType(),
		"plant_types":   out,
	})
}

// Lookup returns the profile a new product of this plant type would get.
// Unknown types answer with the fallback profile and fallback=true.
func (h *CatalogHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	plantType := chi.URLParam(r, "plantType")
	middleware.RespondWithJSON(w, http.StatusOK, CatalogEntryResponse{
		PlantType: plantType,
		Profile:   h.catalog.Lookup(plantType),
		Fallback:  !h.catalog.Known(plantType),
	})
}
