package transport

import (
	"net/http"

	"harvest-keeper/internal/middleware"
	"harvest-keeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionHandler handles the mock login
type SessionHandler struct {
	sessionService service.SessionService
	logger         *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionService service.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		logger:         logger,
	}
}

// RegisterRoutes registers the session routes
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/session/login", h.Login)
}

// Login handles a login. No credential store exists; any well-formed pair
// yields a session.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.sessionService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.RespondWithMappedError(w, h.logger, err, "failed to login", middleware.ErrorMapping{
			Err:    service.ErrInvalidCredentials,
			Status: http.StatusBadRequest,
		})
		return
	}

	h.logger.Info("Session started", zap.String("display_name", session.DisplayName))
	middleware.RespondWithJSON(w, http.StatusOK, session)
}
