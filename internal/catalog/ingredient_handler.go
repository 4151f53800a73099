package catalog

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/models"
	"github.com/marcomamdouh99/pro/pkg/security"
)

type IngredientHandler struct {
	Repository *IngredientRepository
}

func NewIngredientHandler(r *IngredientRepository) *IngredientHandler {
	return &IngredientHandler{Repository: r}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/ingredients", security.Authorize("user"), h.GetIngredients)
	router.GET("/ingredients/:id", security.Authorize("user"), h.GetIngredient)
	router.POST("/ingredients", security.Authorize("admin"), h.CreateIngredient)
	router.PUT("/ingredients/:id", security.Authorize("admin"), h.UpdateIngredient)
	router.DELETE("/ingredients/:id", security.Authorize("admin"), h.RemoveIngredient)
}

func (h *IngredientHandler) GetIngredients(c *gin.Context) {
	ingredients, err := h.Repository.GetIngredients()
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not list ingredients")
		return
	}

	c.JSON(http.StatusOK, ingredients)
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	ingredientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient ID parameter, must be an integer"})
		return
	}

	ingredient, err := h.Repository.GetIngredient(ingredientID)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not get ingredient")
		return
	}

	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		log.Println("Error binding JSON:", err)
		return
	}

	if req.CostPerUnit.IsNegative() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Cost per unit cannot be negative"})
		return
	}

	ingredient := models.Ingredient{
		Name:             req.Name,
		Unit:             req.Unit,
		CostPerUnit:      req.CostPerUnit,
		AlertThreshold:   req.AlertThreshold,
		ReorderThreshold: req.ReorderThreshold,
	}

	if err := h.Repository.PersistIngredient(&ingredient); err != nil {
		custom_error.RespondHTTP(c, err, "Could not insert ingredient")
		return
	}

	c.JSON(http.StatusCreated, ingredient)
}

func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	ingredientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient ID parameter, must be an integer"})
		return
	}

	var req UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := h.Repository.UpdateIngredient(ingredientID, req)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not update ingredient")
		return
	}

	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) RemoveIngredient(c *gin.Context) {
	ingredientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredient ID parameter, must be an integer"})
		return
	}

	if err := h.Repository.RemoveIngredient(ingredientID); err != nil {
		custom_error.RespondHTTP(c, err, "Could not delete ingredient")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted successfully"})
}
