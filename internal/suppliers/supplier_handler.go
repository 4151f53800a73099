package suppliers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/models"
	"github.com/marcomamdouh99/pro/pkg/security"
)

type SupplierHandler struct {
	Repository *SupplierRepository
}

func NewSupplierHandler(r *SupplierRepository) *SupplierHandler {
	return &SupplierHandler{Repository: r}
}

func (h *SupplierHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/suppliers", security.Authorize("user"), h.GetSuppliers)
	router.GET("/suppliers/:id", security.Authorize("user"), h.GetSupplier)
	router.POST("/suppliers", security.Authorize("moderator"), h.CreateSupplier)
	router.PUT("/suppliers/:id", security.Authorize("moderator"), h.UpdateSupplier)
	router.DELETE("/suppliers/:id", security.Authorize("admin"), h.RemoveSupplier)
}

func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	suppliers, err := h.Repository.GetSuppliers(activeOnly)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not list suppliers")
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHandler) GetSupplier(c *gin.Context) {
	supplierID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID parameter, must be an integer"})
		return
	}

	supplier, err := h.Repository.GetSupplier(supplierID)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not get supplier")
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		log.Println("Error binding JSON:", err)
		return
	}

	supplier := models.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		IsActive:      true,
		Notes:         req.Notes,
	}

	if err := h.Repository.PersistSupplier(&supplier); err != nil {
		custom_error.RespondHTTP(c, err, "Could not insert supplier")
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) UpdateSupplier(c *gin.Context) {
	supplierID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID parameter, must be an integer"})
		return
	}

	var req UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier, err := h.Repository.UpdateSupplier(supplierID, req)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not update supplier")
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandler) RemoveSupplier(c *gin.Context) {
	supplierID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid supplier ID parameter, must be an integer"})
		return
	}

	if err := h.Repository.RemoveSupplier(supplierID); err != nil {
		custom_error.RespondHTTP(c, err, "Could not delete supplier")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}
