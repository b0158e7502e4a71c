package transport

import (
	"net/http"
	"strings"

	"harvest-keeper/internal/domain"
	"harvest-keeper/internal/middleware"
	"harvest-keeper/internal/reminder"
	"harvest-keeper/internal/repository"
	"harvest-keeper/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductRequest is the payload for creating or editing a product
type ProductRequest struct {
	Name        string `json:"name" validate:"required,notblank,max=100"`
	PlantType   string `json:"plant_type" validate:"required,notblank,max=50"`
	HarvestDate string `json:"harvest_date" validate:"required,isodate"`
}

// HarvestedRequest sets the harvested flag
type HarvestedRequest struct {
	IsHarvested *bool `json:"is_harvested" validate:"required"`
}

// ProductResponse is a product with its countdown
type ProductResponse struct {
	*domain.Product
	DaysRemaining int                `json:"days_remaining"`
	ExpiryDate    domain.Date        `json:"expiry_date"`
	Tier          domain.UrgencyTier `json:"tier"`
}

func toProductResponse(s reminder.Status) ProductResponse {
	return ProductResponse{
		Product:       s.Product,
		DaysRemaining: s.DaysRemaining,
		ExpiryDate:    s.ExpiryDate,
		Tier:          s.Tier,
	}
}

// ProductHandler handles HTTP requests for harvested products
type ProductHandler struct {
	harvestService service.HarvestService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(harvestService service.HarvestService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		harvestService: harvestService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/harvested", h.SetHarvested)
		r.Delete("/{id}", h.Delete)
	})
}

// decodeProductRequest validates the payload and the not-in-the-future
// rule, writing the error response itself when the request is rejected
func (h *ProductHandler) decodeProductRequest(w http.ResponseWriter, r *http.Request) (ProductRequest, domain.Date, bool) {
	var req ProductRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return req, domain.Date{}, false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return req, domain.Date{}, false
	}

	req.Name = strings.TrimSpace(req.Name)
	req.PlantType = strings.TrimSpace(req.PlantType)

	// already checked by the isodate tag
	harvestDate, _ := domain.ParseDate(req.HarvestDate)
	if future := middleware.NotAfter("harvest_date", harvestDate, h.harvestService.Today()); future != nil {
		middleware.RespondWithValidationErrors(w, future)
		return req, domain.Date{}, false
	}

	return req, harvestDate, true
}

// Create handles adding a new harvest
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, harvestDate, ok := h.decodeProductRequest(w, r)
	if !ok {
		return
	}

	product, err := h.harvestService.AddHarvest(r.Context(), service.HarvestInput{
		Name:        req.Name,
		PlantType:   req.PlantType,
		HarvestDate: harvestDate,
	})
	if err != nil {
		h.respondWithServiceError(w, err, "failed to add harvest")
		return
	}

	status, err := h.harvestService.GetProduct(r.Context(), product.ID)
	if err != nil {
		h.respondWithServiceError(w, err, "failed to add harvest")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, toProductResponse(status))
}

// List handles listing all products with their countdowns
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.harvestService.ListProducts(r.Context())
	if err != nil {
		h.respondWithServiceError(w, err, "failed to list products")
		return
	}

	products := make([]ProductResponse, 0, len(statuses))
	for _, s := range statuses {
		products = append(products, toProductResponse(s))
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    len(products),
	})
}

// Get handles fetching one product
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.harvestService.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithServiceError(w, err, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(status))
}

// Update handles editing name, plant type and harvest date
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, harvestDate, ok := h.decodeProductRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := h.harvestService.EditProduct(r.Context(), id, service.ProductEdit{
		Name:        req.Name,
		PlantType:   req.PlantType,
		HarvestDate: harvestDate,
	}); err != nil {
		h.respondWithServiceError(w, err, "failed to update product")
		return
	}

	h.Get(w, r)
}

// SetHarvested handles marking a product as taken out of storage
func (h *ProductHandler) SetHarvested(w http.ResponseWriter, r *http.Request) {
	var req HarvestedRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.harvestService.SetHarvested(r.Context(), chi.URLParam(r, "id"), *req.IsHarvested); err != nil {
		h.respondWithServiceError(w, err, "failed to update product")
		return
	}

	h.Get(w, r)
}

// Delete handles removing a product
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.harvestService.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondWithServiceError(w, err, "failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

var productErrors = []middleware.ErrorMapping{
	{Err: repository.ErrProductNotFound, Status: http.StatusNotFound, Message: "product not found"},
	{Err: service.ErrEmptyName, Status: http.StatusBadRequest},
	{Err: service.ErrEmptyPlantType, Status: http.StatusBadRequest},
	{Err: service.ErrMissingDate, Status: http.StatusBadRequest},
}

func (h *ProductHandler) respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	middleware.RespondWithMappedError(w, h.logger, err, fallback, productErrors...)
}
