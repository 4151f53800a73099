package branches

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marcomamdouh99/pro/internal/inventory/ledger"
	"github.com/marcomamdouh99/pro/internal/repository"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/models"
	"github.com/marcomamdouh99/pro/pkg/security"
)

type BranchHandler struct {
	Repository *BranchRepository
	Ledger     *ledger.LedgerRepository
}

func NewBranchHandler(r *BranchRepository, lr *ledger.LedgerRepository) *BranchHandler {
	return &BranchHandler{Repository: r, Ledger: lr}
}

func (h *BranchHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/branches", security.Authorize("user"), h.GetBranches)
	router.GET("/branches/:id", security.Authorize("user"), h.GetBranch)
	router.GET("/branches/:id/inventory", security.Authorize("user"), h.GetBranchInventory)
	router.POST("/branches", security.Authorize("admin"), h.CreateBranch)
	router.PUT("/branches/:id", security.Authorize("admin"), h.UpdateBranch)
	router.DELETE("/branches/:id", security.Authorize("admin"), h.RemoveBranch)
}

func (h *BranchHandler) GetBranches(c *gin.Context) {
	branches, err := h.Repository.GetBranches()
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not list branches")
		return
	}

	c.JSON(http.StatusOK, branches)
}

func (h *BranchHandler) GetBranch(c *gin.Context) {
	branchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID parameter, must be an integer"})
		return
	}

	branch, err := h.Repository.GetBranch(branchID)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not get branch")
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) GetBranchInventory(c *gin.Context) {
	branchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID parameter, must be an integer"})
		return
	}

	conditions := repository.NewQueryBuilder()
	conditions.AddCondition("branch_id", branchID)

	inventory, err := h.Ledger.GetBranchInventory(conditions)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not get branch inventory")
		return
	}

	c.JSON(http.StatusOK, inventory)
}

func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var branch models.Branch
	if err := c.ShouldBindJSON(&branch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		log.Println("Error binding JSON:", err)
		return
	}

	if branch.Name == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Branch name is required"})
		return
	}

	if err := h.Repository.PersistBranch(&branch); err != nil {
		custom_error.RespondHTTP(c, err, "Could not insert branch")
		return
	}

	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	branchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID parameter, must be an integer"})
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	branch, err := h.Repository.UpdateBranch(branchID, req)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not update branch")
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) RemoveBranch(c *gin.Context) {
	branchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid branch ID parameter, must be an integer"})
		return
	}

	if err := h.Repository.RemoveBranch(branchID); err != nil {
		custom_error.RespondHTTP(c, err, "Could not delete branch")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Branch deleted successfully"})
}
