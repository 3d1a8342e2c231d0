package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-pos-backend/internal/database"
	"go-pos-backend/internal/models"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

// RunAgent answers a back-office question with tool access to the
// inventory and the completed-sales report. Mutations are limited to
// sale-price updates; everything else stays read-only.
func RunAgent(userMessage string, apiKey string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant of a point-of-sale back office.

RULES:
1. If the user asks about a product (price, cost, stock, SKU), call 'check_inventory' and read the answer from the JSON. Never say you cannot look it up.
2. If the user asks to change a price by product NAME, first call 'check_inventory' to resolve the ID, then call 'update_product_price'.
3. If the user asks about sales or revenue, call 'get_sales_report'. It only counts completed sales; cancelled ones are excluded.

USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full inventory list: ID, SKU, Name, Stock, Cost and Sale price, Status.",
				},
				{
					Name:        "update_product_price",
					Description: "Update the sale price of a specific product using its ID",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"product_id": {Type: genai.TypeInteger, Description: "ID of the product"},
							"new_price":  {Type: genai.TypeNumber, Description: "New sale price"},
						},
						Required: []string{"product_id", "new_price"},
					},
				},
				{
					Name:        "get_sales_report",
					Description: "Get completed-sale revenue and count for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				return executeCheckInventory(ctx, session)
			case "update_product_price":
				return executeUpdatePrice(ctx, session, funcCall), nil
			case "get_sales_report":
				return executeSalesReport(ctx, session, funcCall), nil
			}
		}
	}

	return printResponse(resp), nil
}

func executeCheckInventory(ctx context.Context, session *genai.ChatSession) (string, error) {
	var products []models.Product
	database.DB.Find(&products)

	type inventoryRow struct {
		ID        uint   `json:"id"`
		SKU       string `json:"sku"`
		Name      string `json:"name"`
		Stock     int    `json:"stock"`
		CostPrice string `json:"cost_price"`
		SalePrice string `json:"sale_price"`
		Status    string `json:"status"`
	}
	rows := make([]inventoryRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, inventoryRow{
			ID:        p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Stock:     p.Stock,
			CostPrice: p.CostPrice.StringFixed(2),
			SalePrice: p.SalePrice.StringFixed(2),
			Status:    p.Status,
		})
	}

	jsonBytes, _ := json.Marshal(rows)

	finalResp, err := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "check_inventory",
		Response: map[string]interface{}{"inventory": string(jsonBytes)},
	})
	if err != nil {
		return "", err
	}
	return handleRecursiveToolCalls(ctx, session, finalResp), nil
}

// handleRecursiveToolCalls covers the lookup-then-update flow where the
// model resolves an ID from inventory and immediately asks for a price
// change.
func handleRecursiveToolCalls(ctx context.Context, session *genai.ChatSession, resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			if funcCall.Name == "update_product_price" {
				return executeUpdatePrice(ctx, session, funcCall)
			}
		}
	}
	return printResponse(resp)
}

func executeUpdatePrice(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	productID := int(args["product_id"].(float64))
	newPrice := decimal.NewFromFloat(args["new_price"].(float64)).Round(2)

	result := database.DB.Model(&models.Product{}).Where("id = ?", productID).Update("sale_price", newPrice)

	msg := "Success"
	if result.RowsAffected == 0 {
		msg = "Product ID not found"
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "update_product_price",
		Response: map[string]interface{}{"status": msg, "new_price": newPrice.StringFixed(2)},
	})
	return printResponse(finalResp)
}

func executeSalesReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	startStr := args["start_date"].(string)
	endStr := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)
	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format."
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	report, err := database.GetSalesReport(database.DB, start, end)
	if err != nil {
		return "Error calculating sales."
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     report.TotalRevenue.StringFixed(2),
			"sales_count": report.TotalCount,
		},
	})
	return printResponse(finalResp)
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
