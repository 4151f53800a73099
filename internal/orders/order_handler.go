package orders

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/models"
	"github.com/marcomamdouh99/pro/pkg/security"
)

// Service is the surface the handler needs from the order engine.
type Service interface {
	CreateOrder(req CreateOrderRequest, userID *int) (*models.PurchaseOrder, error)
	ApproveOrder(orderID int, approverID int) (*models.PurchaseOrder, error)
	ReceiveOrder(orderID int, req ReceiveOrderRequest, userID *int) (*models.PurchaseOrder, error)
	UpdateOrder(orderID int, req UpdateOrderRequest) (*models.PurchaseOrder, error)
	DeleteOrder(orderID int) error
	GetOrder(orderID int) (*models.PurchaseOrder, error)
	GetOrders(query ListOrdersQuery) ([]models.PurchaseOrder, int64, error)
}

type OrderHandler struct {
	Service Service
}

func NewHandler(service Service) *OrderHandler {
	return &OrderHandler{Service: service}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/purchase-orders", security.Authorize("user"), h.GetOrders)
	router.GET("/purchase-orders/:id", security.Authorize("user"), h.GetOrder)
	router.POST("/purchase-orders", security.Authorize("moderator"), h.CreateOrder)
	router.POST("/purchase-orders/:id", security.Authorize("moderator"), h.PerformOrderAction)
	router.PUT("/purchase-orders/:id", security.Authorize("moderator"), h.UpdateOrder)
	router.DELETE("/purchase-orders/:id", security.Authorize("admin"), h.DeleteOrder)
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	var query ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 20
	}

	orders, total, err := h.Service.GetOrders(query)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Unable to get purchase orders")
		return
	}

	if orders == nil {
		orders = []models.PurchaseOrder{}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
		"pagination": gin.H{
			"page":  query.Page,
			"limit": query.Limit,
			"total": total,
		},
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase order ID parameter, must be an integer"})
		return
	}

	order, err := h.Service.GetOrder(orderID)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Unable to get purchase order")
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		log.Println("Error binding JSON:", err)
		return
	}

	order, err := h.Service.CreateOrder(req, security.CurrentUserID(c))
	if err != nil {
		custom_error.RespondHTTP(c, err, "Unable to create purchase order")
		return
	}

	c.JSON(http.StatusCreated, order)
}

// PerformOrderAction dispatches the action-style POST body the clients send:
// {"action": "receive", "items": [...]} or {"action": "approve"}.
func (h *OrderHandler) PerformOrderAction(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase order ID parameter, must be an integer"})
		return
	}

	var req struct {
		Action string               `json:"action" binding:"required"`
		Items  []ReceiveItemRequest `json:"items"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Action {
	case "receive":
		order, err := h.Service.ReceiveOrder(orderID, ReceiveOrderRequest{Items: req.Items}, security.CurrentUserID(c))
		if err != nil {
			custom_error.RespondHTTP(c, err, "Unable to receive purchase order items")
			return
		}
		c.JSON(http.StatusOK, order)
	case "approve":
		approverID := security.CurrentUserID(c)
		if approverID == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Approver identity missing"})
			return
		}
		order, err := h.Service.ApproveOrder(orderID, *approverID)
		if err != nil {
			custom_error.RespondHTTP(c, err, "Unable to approve purchase order")
			return
		}
		c.JSON(http.StatusOK, order)
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unsupported purchase order action: " + req.Action})
	}
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase order ID parameter, must be an integer"})
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	order, err := h.Service.UpdateOrder(orderID, req)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Unable to update purchase order")
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid purchase order ID parameter, must be an integer"})
		return
	}

	if err := h.Service.DeleteOrder(orderID); err != nil {
		custom_error.RespondHTTP(c, err, "Unable to delete purchase order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Purchase order deleted successfully"})
}
