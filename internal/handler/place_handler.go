package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/service"
)

// PlaceHandler handles place API requests, including the nested amenity and review listings
type PlaceHandler struct {
	facade service.Facade
	logger *slog.Logger
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(facade service.Facade, logger *slog.Logger) *PlaceHandler {
	return &PlaceHandler{
		facade: facade,
		logger: logger,
	}
}

// CreatePlaceRequest accepts numbers or numeric strings for every numeric field.
// owner_id is honored for admins only; everyone else creates places they own.
type CreatePlaceRequest struct {
	Name          string     `json:"name" binding:"required,notblank,max=100"`
	Description   string     `json:"description"`
	Address       string     `json:"address"`
	Latitude      *FlexFloat `json:"latitude" binding:"required"`
	Longitude     *FlexFloat `json:"longitude" binding:"required"`
	Price         *FlexFloat `json:"price" binding:"required"`
	NumberOfRooms *FlexInt   `json:"number_of_rooms"`
	Bathrooms     *FlexInt   `json:"bathrooms"`
	MaxGuests     *FlexInt   `json:"max_guests"`
	AmenityIDs    []string   `json:"amenity_ids"`
	OwnerID       *string    `json:"owner_id"`
}

// UpdatePlaceRequest has no owner field; ownership never changes through an update
type UpdatePlaceRequest struct {
	Name          *string    `json:"name" binding:"omitempty,notblank,max=100"`
	Description   *string    `json:"description"`
	Address       *string    `json:"address"`
	Latitude      *FlexFloat `json:"latitude"`
	Longitude     *FlexFloat `json:"longitude"`
	Price         *FlexFloat `json:"price"`
	NumberOfRooms *FlexInt   `json:"number_of_rooms"`
	Bathrooms     *FlexInt   `json:"bathrooms"`
	MaxGuests     *FlexInt   `json:"max_guests"`
	AmenityIDs    *[]string  `json:"amenity_ids"`
}

type CreateReviewRequest struct {
	Rating  *FlexInt `json:"rating" binding:"required"`
	Comment string   `json:"comment" binding:"required,notblank"`
}

func intOr(v *FlexInt, fallback int) int {
	if v == nil {
		return fallback
	}
	return int(*v)
}

// Create handles POST /places
func (h *PlaceHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req CreatePlaceRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	ownerID := p.UserID
	if req.OwnerID != nil && p.IsAdmin {
		id, ok := canonicalUUID(*req.OwnerID)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner ID format. Must be a UUID."})
			return
		}
		ownerID = id
	}

	place, err := h.facade.CreatePlace(ownerID, service.PlaceInput{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		Latitude:      float64(*req.Latitude),
		Longitude:     float64(*req.Longitude),
		Price:         float64(*req.Price),
		NumberOfRooms: intOr(req.NumberOfRooms, 1),
		Bathrooms:     intOr(req.Bathrooms, 0),
		MaxGuests:     intOr(req.MaxGuests, 1),
		AmenityIDs:    req.AmenityIDs,
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, place)
}

// List handles GET /places with an optional owner_id filter
func (h *PlaceHandler) List(c *gin.Context) {
	ownerID := c.Query("owner_id")
	if ownerID != "" {
		id, ok := canonicalUUID(ownerID)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid owner ID format. Must be a UUID."})
			return
		}
		ownerID = id
	}

	places, err := h.facade.ListPlaces(ownerID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, places)
}

// Get handles GET /places/:place_id
func (h *PlaceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "place_id", "place")
	if !ok {
		return
	}

	place, err := h.facade.GetPlace(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, place)
}

// Update handles PUT /places/:place_id for the owner or an admin
func (h *PlaceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "place_id", "place")
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	place, err := h.facade.GetPlace(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	if !canModify(p, place.OwnerID) {
		forbidden(c, h.logger, p, "update place")
		return
	}

	var req UpdatePlaceRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	updated, err := h.facade.UpdatePlace(id, service.PlaceChanges{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		Latitude:      req.Latitude.Ptr(),
		Longitude:     req.Longitude.Ptr(),
		Price:         req.Price.Ptr(),
		NumberOfRooms: req.NumberOfRooms.Ptr(),
		Bathrooms:     req.Bathrooms.Ptr(),
		MaxGuests:     req.MaxGuests.Ptr(),
		AmenityIDs:    req.AmenityIDs,
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /places/:place_id; the place's reviews go with it
func (h *PlaceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "place_id", "place")
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	place, err := h.facade.GetPlace(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	if !canModify(p, place.OwnerID) {
		forbidden(c, h.logger, p, "delete place")
		return
	}

	if err := h.facade.DeletePlace(id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAmenities handles GET /places/:place_id/amenities
func (h *PlaceHandler) ListAmenities(c *gin.Context) {
	id, ok := parseID(c, "place_id", "place")
	if !ok {
		return
	}

	amenities, err := h.facade.ListPlaceAmenities(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, amenities)
}

// ListReviews handles GET /places/:place_id/reviews
func (h *PlaceHandler) ListReviews(c *gin.Context) {
	id, ok := parseID(c, "place_id", "place")
	if !ok {
		return
	}

	reviews, err := h.facade.ListPlaceReviews(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview handles POST /places/:place_id/reviews; the author is the caller
func (h *PlaceHandler) CreateReview(c *gin.Context) {
	id, ok := parseID(c, "place_id", "place")
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	review, err := h.facade.CreateReview(p.UserID, id, service.ReviewInput{
		Rating:  int(*req.Rating),
		Comment: req.Comment,
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
