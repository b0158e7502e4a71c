package transport

import (
	"net/http"
	"strconv"

	"harvest-keeper/internal/middleware"
	"harvest-keeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ReminderHandler serves the reminder buckets and the dashboard counters
type ReminderHandler struct {
	harvestService service.HarvestService
	logger         *zap.Logger
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(harvestService service.HarvestService, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		harvestService: harvestService,
		logger:         logger,
	}
}

// RegisterRoutes registers the reminder and dashboard routes
func (h *ReminderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/reminders", h.Reminders)
	r.Get("/api/dashboard", h.Dashboard)
}

// Reminders returns the expired, urgent and soon buckets. With
// ?pending=true harvested products are left out.
func (h *ReminderHandler) Reminders(w http.ResponseWriter, r *http.Request) {
	load := h.harvestService.Reminders
	if pending, _ := strconv.ParseBool(r.URL.Query().Get("pending")); pending {
		load = h.harvestService.PendingReminders
	}

	report, err := load(r.Context())
	if err != nil {
		h.logger.Error("Failed to build reminders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build reminders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, report)
}

// Dashboard returns the summary counters
func (h *ReminderHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.harvestService.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("Failed to build dashboard", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"today":   h.harvestService.Today(),
		"summary": summary,
	})
}
