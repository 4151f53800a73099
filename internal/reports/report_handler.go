package reports

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/security"
)

type ReportHandler struct {
	Repository *ReportRepository
}

func NewReportHandler(r *ReportRepository) *ReportHandler {
	return &ReportHandler{Repository: r}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reports", security.Authorize("moderator"), h.GetReport)
}

// GetReport serves GET /reports?branch_id&type&start_date&end_date. The date
// range defaults to the last 30 days; end_date is exclusive.
func (h *ReportHandler) GetReport(c *gin.Context) {
	branchID, err := strconv.Atoi(c.Query("branch_id"))
	if err != nil || branchID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "branch_id query parameter is required"})
		return
	}

	startDate, endDate, err := parseDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reportType := c.DefaultQuery("type", "summary")
	switch reportType {
	case "inventory":
		h.inventoryReport(c, branchID)
	case "waste":
		h.wasteReport(c, branchID, startDate, endDate)
	case "purchases":
		h.purchaseReport(c, branchID, startDate, endDate)
	case "summary":
		h.summaryReport(c, branchID, startDate, endDate)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown report type: " + reportType})
	}
}

func (h *ReportHandler) inventoryReport(c *gin.Context, branchID int) {
	rows, err := h.Repository.GetInventoryReport(branchID)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not build inventory report")
		return
	}

	totalValue := decimal.Zero
	for _, row := range rows {
		totalValue = totalValue.Add(row.StockValue)
	}

	c.JSON(http.StatusOK, gin.H{
		"type":        "inventory",
		"branch_id":   branchID,
		"items":       rows,
		"total_value": totalValue,
	})
}

func (h *ReportHandler) wasteReport(c *gin.Context, branchID int, startDate, endDate time.Time) {
	rows, err := h.Repository.GetWasteReport(branchID, startDate, endDate)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not build waste report")
		return
	}

	totalLoss := decimal.Zero
	for _, row := range rows {
		totalLoss = totalLoss.Add(row.LossValue)
	}

	c.JSON(http.StatusOK, gin.H{
		"type":       "waste",
		"branch_id":  branchID,
		"start_date": startDate,
		"end_date":   endDate,
		"by_reason":  rows,
		"total_loss": totalLoss,
	})
}

func (h *ReportHandler) purchaseReport(c *gin.Context, branchID int, startDate, endDate time.Time) {
	rows, err := h.Repository.GetPurchaseReport(branchID, startDate, endDate)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not build purchase report")
		return
	}

	totalAmount := decimal.Zero
	totalOrders := 0
	for _, row := range rows {
		totalAmount = totalAmount.Add(row.TotalAmount)
		totalOrders += row.Orders
	}

	c.JSON(http.StatusOK, gin.H{
		"type":         "purchases",
		"branch_id":    branchID,
		"start_date":   startDate,
		"end_date":     endDate,
		"by_status":    rows,
		"total_orders": totalOrders,
		"total_amount": totalAmount,
	})
}

func (h *ReportHandler) summaryReport(c *gin.Context, branchID int, startDate, endDate time.Time) {
	inventory, err := h.Repository.GetInventoryReport(branchID)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not build summary report")
		return
	}
	waste, err := h.Repository.GetWasteReport(branchID, startDate, endDate)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not build summary report")
		return
	}
	purchases, err := h.Repository.GetPurchaseReport(branchID, startDate, endDate)
	if err != nil {
		custom_error.RespondHTTP(c, err, "Could not build summary report")
		return
	}

	inventoryValue := decimal.Zero
	for _, row := range inventory {
		inventoryValue = inventoryValue.Add(row.StockValue)
	}
	wasteLoss := decimal.Zero
	for _, row := range waste {
		wasteLoss = wasteLoss.Add(row.LossValue)
	}
	purchaseAmount := decimal.Zero
	for _, row := range purchases {
		purchaseAmount = purchaseAmount.Add(row.TotalAmount)
	}

	c.JSON(http.StatusOK, gin.H{
		"type":            "summary",
		"branch_id":       branchID,
		"start_date":      startDate,
		"end_date":        endDate,
		"inventory_value": inventoryValue,
		"waste_loss":      wasteLoss,
		"purchase_amount": purchaseAmount,
	})
}

func parseDateRange(start, end string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	startDate := now.AddDate(0, 0, -30)
	endDate := now

	var err error
	if start != "" {
		startDate, err = time.Parse("2006-01-02", start)
		if err != nil {
			return time.Time{}, time.Time{}, custom_error.NewValidationError("start_date", "must be formatted as YYYY-MM-DD")
		}
	}
	if end != "" {
		endDate, err = time.Parse("2006-01-02", end)
		if err != nil {
			return time.Time{}, time.Time{}, custom_error.NewValidationError("end_date", "must be formatted as YYYY-MM-DD")
		}
		// inclusive end day
		endDate = endDate.AddDate(0, 0, 1)
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, custom_error.NewValidationError("end_date", "must not precede start_date")
	}

	return startDate, endDate, nil
}
