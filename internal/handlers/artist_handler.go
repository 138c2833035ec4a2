package handlers

import (
	"net/http"

	"brushwork_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ArtistHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewArtistHandler(base *BaseHandler, reviewService services.ReviewService) *ArtistHandler {
	return &ArtistHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ArtistHandler) RegisterRoutes(api *gin.RouterGroup) {
	group := api.Group("/artists")
	{
		group.GET("/:id/rating", h.GetArtistRating)
	}
}

// GetArtistRating returns the cached rating/reviewCount pair. Read-only and
// always safe to call.
func (h *ArtistHandler) GetArtistRating(c *gin.Context) {
	aggregate, err := h.reviewService.GetArtistAggregate(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, aggregate)
}
