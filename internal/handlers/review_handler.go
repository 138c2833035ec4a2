package handlers

import (
	"net/http"

	"brushwork_backend/internal/middleware"
	"brushwork_backend/internal/models"
	"brushwork_backend/internal/services"
	"brushwork_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(api *gin.RouterGroup) {
	group := api.Group("/reviews")
	{
		group.POST("", middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleCustomer), h.SubmitReview)
		group.GET("/artist/:id", h.GetArtistReviews)
	}
}

func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.SubmitReview(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

// GetArtistReviews is public: artist pages show reviews to anonymous visitors.
func (h *ReviewHandler) GetArtistReviews(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	reviews, err := h.reviewService.GetArtistReviews(h.GetDB(c), c.Param("id"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
