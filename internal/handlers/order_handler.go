package handlers

import (
	"net/http"

	"brushwork_backend/internal/middleware"
	"brushwork_backend/internal/models"
	"brushwork_backend/internal/services"
	"brushwork_backend/internal/services/dto"
	"brushwork_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	*BaseHandler
	orderService services.OrderService
}

func NewOrderHandler(base *BaseHandler, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{
		BaseHandler:  base,
		orderService: orderService,
	}
}

func (h *OrderHandler) RegisterRoutes(api *gin.RouterGroup) {
	group := api.Group("/orders")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("", middleware.RequireRoles(models.UserRoleCustomer), h.CreateOrder)
		group.GET("/my", h.ListMyOrders)
		group.GET("/:id", h.GetOrder)
		group.POST("/:id/transition", h.TransitionOrder)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	order, err := h.orderService.CreateOrder(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.ActingRole(c)
	page, pageSize := ParsePagination(c)

	orders, err := h.orderService.ListOrders(h.GetDB(c), userID, role, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Orders are visible to their parties only.
	if order.CustomerID != userID && order.ArtistID != userID {
		apperrors.HandleError(c, apperrors.ErrNotAuthorized)
		return
	}

	c.JSON(http.StatusOK, order)
}

// TransitionOrder applies a lifecycle transition. The acting user and role
// come from the token; the body carries only the target status.
func (h *OrderHandler) TransitionOrder(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, roleOK := middleware.ActingRole(c)
	if !roleOK {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Missing role in token"))
		return
	}

	var req dto.TransitionOrderRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	order, err := h.orderService.TransitionOrder(
		h.GetDB(c),
		c.Param("id"),
		userID,
		role,
		models.OrderStatus(req.TargetStatus),
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}
