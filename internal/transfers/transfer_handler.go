package transfers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/models"
	"github.com/marcomamdouh99/pro/pkg/security"
)

// Service is the surface the handler needs from the transfer engine.
type Service interface {
	CreateTransfer(req CreateTransferRequest, userID *int) (*models.InventoryTransfer, []StockShortfall, error)
	ApproveTransfer(transferID int, approverID int) (*models.InventoryTransfer, error)
	UpdateTransfer(transferID int, req UpdateTransferRequest, userID *int) (*models.InventoryTransfer, error)
	DeleteTransfer(transferID int) error
	GetTransfer(transferID int) (*models.InventoryTransfer, error)
	GetTransfers(sourceBranchID, targetBranchID *int, status string) ([]models.InventoryTransfer, error)
}

type TransferHandler struct {
	Service Service
}

func NewHandler(service Service) *TransferHandler {
	return &TransferHandler{Service: service}
}

func (h *TransferHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/transfers", security.Authorize("user"), h.RetrieveTransferList)
	router.GET("/transfers/:id", security.Authorize("user"), h.GetTransfer)
	router.POST("/transfers", security.Authorize("moderator"), h.CreateTransfer)
	router.PUT("/transfers/:id", security.Authorize("moderator"), h.UpdateTransfer)
	router.DELETE("/transfers/:id", security.Authorize("admin"), h.DeleteTransfer)
}

func (h *TransferHandler) GetTransfer(c *gin.Context) {
	transferID, err := strconv.Atoi(c.Param("id"))
	if err != nil || transferID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transfer ID is required"})
		return
	}

	transfer, err := h.Service.GetTransfer(transferID)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Unable to get transfer")
		return
	}

	c.JSON(http.StatusOK, transfer)
}

func (h *TransferHandler) RetrieveTransferList(c *gin.Context) {
	var query struct {
		SourceBranchID *int   `form:"source_branch_id"`
		TargetBranchID *int   `form:"target_branch_id"`
		Status         string `form:"status"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	transfers, err := h.Service.GetTransfers(query.SourceBranchID, query.TargetBranchID, query.Status)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Unable to get transfers")
		return
	}

	if transfers == nil {
		transfers = []models.InventoryTransfer{}
	}

	c.JSON(http.StatusOK, transfers)
}

func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	var req CreateTransferRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		log.Println("Error binding JSON:", err)
		return
	}

	transfer, shortfalls, err := h.Service.CreateTransfer(req, security.CurrentUserID(c))
	if err != nil {
		if len(shortfalls) > 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":   "Insufficient stock at source branch",
				"reasons": shortfalls,
			})
			return
		}
		custom_error.RespondHTTP(c, err, "Unable to create transfer")
		return
	}

	c.JSON(http.StatusCreated, transfer)
}

func (h *TransferHandler) UpdateTransfer(c *gin.Context) {
	transferID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transfer ID parameter, must be an integer"})
		return
	}

	var req UpdateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status == nil && req.Notes == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	transfer, err := h.Service.UpdateTransfer(transferID, req, security.CurrentUserID(c))
	if err != nil {
		custom_error.RespondHTTP(c, err, "Unable to update transfer")
		return
	}

	c.JSON(http.StatusOK, transfer)
}

func (h *TransferHandler) DeleteTransfer(c *gin.Context) {
	transferID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transfer ID parameter, must be an integer"})
		return
	}

	if err := h.Service.DeleteTransfer(transferID); err != nil {
		custom_error.RespondHTTP(c, err, "Unable to delete transfer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transfer deleted successfully"})
}
