package handlers

import (
	"net/http"

	"brushwork_backend/internal/middleware"
	"brushwork_backend/internal/repositories"
	"brushwork_backend/internal/services"
	"brushwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) RegisterRoutes(api *gin.RouterGroup) {
	group := api.Group("/notifications")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("/my", h.ListMyNotifications)
		group.POST("/:id/read", h.MarkRead)
	}
}

func (h *NotificationHandler) ListMyNotifications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 50)
	notifications, err := h.notificationService.ListNotifications(h.GetDB(c), userID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.notificationService.MarkRead(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			h.HandleServiceError(c, apperrors.ErrNotFound(err))
			return
		}
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "read"})
}
