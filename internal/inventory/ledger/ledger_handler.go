package ledger

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcomamdouh99/pro/internal/repository"
	"github.com/marcomamdouh99/pro/pkg/metadata"
	"github.com/marcomamdouh99/pro/pkg/security"
)

type LedgerHandler struct {
	LedgerRepository *LedgerRepository
}

func NewHandler(lr *LedgerRepository) *LedgerHandler {
	return &LedgerHandler{LedgerRepository: lr}
}

func (h *LedgerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/inventory", security.Authorize("user"), h.GetInventory)
	router.GET("/inventory/alerts", security.Authorize("user"), h.GetAlerts)
	router.GET("/inventory/transactions", security.Authorize("user"), h.GetTransactions)
	router.PATCH("/inventory/:id/expiry", security.Authorize("moderator"), h.UpdateExpiryDate)
}

func (h *LedgerHandler) GetInventory(c *gin.Context) {
	var query struct {
		BranchID     *int `form:"branch_id"`
		IngredientID *int `form:"ingredient_id"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	conditions := repository.NewQueryBuilder()
	if query.BranchID != nil {
		conditions.AddCondition("branch_id", *query.BranchID)
	}
	if query.IngredientID != nil {
		conditions.AddCondition("ingredient_id", *query.IngredientID)
	}

	views, err := h.LedgerRepository.GetBranchInventory(conditions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch branch inventory"})
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *LedgerHandler) GetAlerts(c *gin.Context) {
	branchIDParam := c.Query("branch_id")
	if branchIDParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_id is required"})
		return
	}

	branchID, err := strconv.Atoi(branchIDParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch_id, must be an integer"})
		return
	}

	conditions := repository.NewQueryBuilder()
	conditions.AddCondition("branch_id", branchID)

	views, err := h.LedgerRepository.GetBranchInventory(conditions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch branch inventory"})
		return
	}

	alerts, summary := BuildAlerts(*views, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"alerts":  alerts,
		"summary": summary,
	})
}

func (h *LedgerHandler) GetTransactions(c *gin.Context) {
	var query struct {
		BranchID        *int   `form:"branch_id"`
		IngredientID    *int   `form:"ingredient_id"`
		TransactionType string `form:"transaction_type"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	conditions := repository.NewQueryBuilder()
	if query.BranchID != nil {
		conditions.AddCondition("branch_id", *query.BranchID)
	}
	if query.IngredientID != nil {
		conditions.AddCondition("ingredient_id", *query.IngredientID)
	}
	if query.TransactionType != "" {
		transactionType, err := metadata.NewTransactionType(query.TransactionType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		conditions.AddCondition("transaction_type", transactionType.String())
	}

	transactions, err := h.LedgerRepository.GetTransactions(conditions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory transactions"})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

func (h *LedgerHandler) UpdateExpiryDate(c *gin.Context) {
	inventoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory ID parameter, must be an integer"})
		return
	}

	var req struct {
		ExpiryDate *time.Time `json:"expiry_date"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := h.LedgerRepository.UpdateExpiryDate(inventoryID, req.ExpiryDate); err != nil {
		if IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Inventory row not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update expiry date", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expiry date updated successfully"})
}
