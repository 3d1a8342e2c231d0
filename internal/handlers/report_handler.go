package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go-pos-backend/internal/database"
	"go-pos-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// --- GET: /api/reports/dashboard ---
func GetDashboard(c *gin.Context) {
	report, err := database.GetDashboard(database.DB, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// --- GET: /api/reports ---
func GetSalesSummary(c *gin.Context) {
	summary, err := database.GetSalesSummary(database.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// VAT rate baked into the export's net/tax breakdown columns
var vatDivisor = decimal.NewFromFloat(1.21)

// --- GET: /api/reports/export-sales?start_date=&end_date= ---
// Streams an xlsx of the sales in the range, with a net/VAT breakdown
// per row.
func ExportSales(c *gin.Context) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required"})
		return
	}
	if _, err := time.Parse("2006-01-02", startStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD."})
		return
	}
	if _, err := time.Parse("2006-01-02", endStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD."})
		return
	}

	var sales []models.Sale
	if err := database.DB.
		Where("DATE(date_time) BETWEEN ? AND ?", startStr, endStr).
		Order("date_time").
		Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sales Report"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Sale ID", "Status", "Total", "Net (21%)", "VAT (21%)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetCellStyle(sheet, "A1", "F1", headerStyle)

	for i, sale := range sales {
		row := i + 2
		total := sale.FinalAmount
		net := decimal.Zero
		vat := decimal.Zero
		if total.IsPositive() {
			net = total.Div(vatDivisor).Round(2)
			vat = total.Sub(net)
		}

		totalF, _ := total.Float64()
		netF, _ := net.Float64()
		vatF, _ := vat.Float64()

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), sale.DateTime)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), sale.ID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), sale.Status)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), totalF)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), netF)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), vatF)
	}

	lastRow := len(sales) + 1
	if lastRow > 1 {
		dateFmt := "dd/mm/yyyy hh:mm"
		dateStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
		f.SetCellStyle(sheet, "A2", fmt.Sprintf("A%d", lastRow), dateStyle)

		moneyFmt := "\"$\"#,##0.00"
		moneyStyle, _ := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
		f.SetCellStyle(sheet, "D2", fmt.Sprintf("F%d", lastRow), moneyStyle)

		centered, _ := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{Horizontal: "center"}})
		f.SetCellStyle(sheet, "B2", fmt.Sprintf("C%d", lastRow), centered)
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "C", 15)
	f.SetColWidth(sheet, "D", "F", 18)

	filename := fmt.Sprintf("sales_report_%s_to_%s.xlsx", startStr, endStr)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write spreadsheet"})
	}
}
