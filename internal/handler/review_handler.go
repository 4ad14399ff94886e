package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EgehanKilicarslan/hbnb/backend-go/internal/database/service"
)

// ReviewHandler handles review API requests. Creation lives under /places/:place_id/reviews.
type ReviewHandler struct {
	facade service.Facade
	logger *slog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(facade service.Facade, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		facade: facade,
		logger: logger,
	}
}

// UpdateReviewRequest carries user_id and place_id only so that a change can be rejected
type UpdateReviewRequest struct {
	Rating  *FlexInt `json:"rating"`
	Comment *string  `json:"comment" binding:"omitempty,notblank"`
	UserID  *string  `json:"user_id"`
	PlaceID *string  `json:"place_id"`
}

func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.facade.ListReviews()
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "review_id", "review")
	if !ok {
		return
	}

	review, err := h.facade.GetReview(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// Update handles PUT /reviews/:review_id for the author or an admin
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "review_id", "review")
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	review, err := h.facade.GetReview(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	if !canModify(p, review.UserID) {
		forbidden(c, h.logger, p, "update review")
		return
	}

	var req UpdateReviewRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}

	updated, err := h.facade.UpdateReview(id, service.ReviewChanges{
		Rating:  req.Rating.Ptr(),
		Comment: req.Comment,
		UserID:  req.UserID,
		PlaceID: req.PlaceID,
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /reviews/:review_id for the author or an admin
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "review_id", "review")
	if !ok {
		return
	}
	p, ok := principal(c)
	if !ok {
		return
	}

	review, err := h.facade.GetReview(id)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	if !canModify(p, review.UserID) {
		forbidden(c, h.logger, p, "delete review")
		return
	}

	if err := h.facade.DeleteReview(id); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
