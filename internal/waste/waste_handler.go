package waste

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/models"
	"github.com/marcomamdouh99/pro/pkg/security"
)

type Service interface {
	RecordWaste(req RecordWasteRequest, userID *int) (*models.WasteLog, error)
	GetWasteLogs(query ListWasteQuery) ([]models.WasteLog, error)
}

type WasteHandler struct {
	Service Service
}

func NewHandler(service Service) *WasteHandler {
	return &WasteHandler{Service: service}
}

func (h *WasteHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/waste-logs", security.Authorize("user"), h.RetrieveWasteLogList)
	router.POST("/waste-logs", security.Authorize("user"), h.RecordWaste)
}

func (h *WasteHandler) RecordWaste(c *gin.Context) {
	var req RecordWasteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		log.Println("Error binding JSON:", err)
		return
	}

	wasteLog, err := h.Service.RecordWaste(req, security.CurrentUserID(c))
	if err != nil {
		custom_error.RespondHTTP(c, err, "Unable to record waste")
		return
	}

	c.JSON(http.StatusCreated, wasteLog)
}

func (h *WasteHandler) RetrieveWasteLogList(c *gin.Context) {
	var query ListWasteQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	wasteLogs, err := h.Service.GetWasteLogs(query)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Unable to get waste logs")
		return
	}

	if wasteLogs == nil {
		wasteLogs = []models.WasteLog{}
	}

	c.JSON(http.StatusOK, wasteLogs)
}
