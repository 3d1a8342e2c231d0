package main

import (
	"log"
	"os"
	"time"

	"go-pos-backend/internal/database"
	"go-pos-backend/internal/handlers"
	"go-pos-backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}

	database.Connect()
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"}, // React dev server
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", handlers.Login)

	// Bootstrap route, only opens when explicitly allowed in .env
	if os.Getenv("ALLOW_REGISTRATION") == "true" {
		r.POST("/register", handlers.Register)
		log.Println("⚠️ WARNING: Registration route is OPEN. Disable this in production!")
	} else {
		log.Println("🔒 Registration route is safely DISABLED.")
	}

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.POST("/change-password", handlers.ChangePassword)

		// Open to every role: the register screen
		seller := api.Group("/")
		seller.Use(middleware.RequireRole(middleware.RoleSuperAdmin, middleware.RoleAdmin, middleware.RoleVendedor))
		{
			seller.GET("/products", handlers.GetProducts)
			seller.GET("/products/:id", handlers.GetProduct)
			seller.GET("/products/popular-for-pos", handlers.GetPopularProducts)
			seller.PATCH("/products/:id/update-stock", handlers.UpdateStock)
			seller.GET("/payment-methods", handlers.GetActivePaymentMethods)
			seller.GET("/reports/dashboard", handlers.GetDashboard)
			seller.POST("/sales", handlers.ProcessSale)
		}

		// Back office: superadmin + admin
		admin := api.Group("/")
		admin.Use(middleware.RequireRole(middleware.RoleSuperAdmin, middleware.RoleAdmin))
		{
			admin.POST("/products", handlers.AddProduct)
			admin.PUT("/products/:id", handlers.UpdateProduct)
			admin.DELETE("/products/:id", handlers.DeleteProduct)
			admin.POST("/bulk-price-update", handlers.BulkPriceUpdate)

			admin.GET("/categories", handlers.GetCategories)
			admin.POST("/categories", handlers.AddCategory)
			admin.PUT("/categories/:id", handlers.UpdateCategory)
			admin.DELETE("/categories/:id", handlers.DeleteCategory)

			admin.GET("/providers", handlers.GetProviders)
			admin.POST("/providers", handlers.AddProvider)
			admin.PUT("/providers/:id", handlers.UpdateProvider)
			admin.DELETE("/providers/:id", handlers.DeleteProvider)

			admin.GET("/clients", handlers.GetClients)
			admin.POST("/clients", handlers.AddClient)
			admin.PUT("/clients/:id", handlers.UpdateClient)
			admin.DELETE("/clients/:id", handlers.DeleteClient)

			admin.GET("/admin/payment-methods", handlers.GetPaymentMethods)
			admin.POST("/admin/payment-methods", handlers.AddPaymentMethod)
			admin.PUT("/admin/payment-methods/:id", handlers.UpdatePaymentMethod)
			admin.DELETE("/admin/payment-methods/:id", handlers.DeletePaymentMethod)

			admin.GET("/sales", handlers.GetSales)
			admin.PATCH("/sales/:id/cancel", handlers.CancelSale)
			admin.DELETE("/sales/:id", handlers.DeleteSale)

			admin.GET("/cash-count", handlers.GetCashCount)
			admin.POST("/cash-count", handlers.CloseCashCount)

			admin.GET("/reports", handlers.GetSalesSummary)
			admin.GET("/reports/export-sales", handlers.ExportSales)

			admin.POST("/ask", handlers.AskAI)
		}

		// Superadmin only: account management
		super := api.Group("/")
		super.Use(middleware.RequireRole(middleware.RoleSuperAdmin))
		{
			super.GET("/users", handlers.GetUsers)
			super.POST("/users", handlers.AddUser)
			super.PUT("/users/:id", handlers.UpdateUser)
			super.DELETE("/users/:id", handlers.DeleteUser)
			super.POST("/users/:id/set-password", handlers.SetPassword)
		}
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	log.Println("🚀 Server starting on " + baseURL)
	if err := r.Run(":8080"); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
