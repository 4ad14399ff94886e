package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/service"
)

// AmenityHandler handles amenity API requests. Writes are admin-only at the router.
type AmenityHandler struct {
	facade service.Facade
	logger *slog.Logger
}

// NewAmenityHandler creates a new amenity handler
func NewAmenityHandler(facade service.Facade, logger *slog.Logger) *AmenityHandler {
	return &AmenityHandler{
		facade: facade,
		logger: logger,
	}
}

type AmenityRequest struct {
	Name string `json:"name" binding:"required,notblank,max=50"`
}

func (h *AmenityHandler) Create(c *gin.Context) {
	var req AmenityRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	amenity, err := h.facade.CreateAmenity(req.Name)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, amenity)
}

func (h *AmenityHandler) List(c *gin.Context) {
	amenities, err := h.facade.ListAmenities()
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, amenities)
}

func (h *AmenityHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "amenity_id", "amenity")
	if !ok {
		return
	}

	amenity, err := h.facade.GetAmenity(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, amenity)
}

func (h *AmenityHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "amenity_id", "amenity")
	if !ok {
		return
	}

	var req AmenityRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	amenity, err := h.facade.UpdateAmenity(id, req.Name)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, amenity)
}

func (h *AmenityHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "amenity_id", "amenity")
	if !ok {
		return
	}

	if err := h.facade.DeleteAmenity(id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
