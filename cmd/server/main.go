package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"koperasi-pos/config"
	"koperasi-pos/internal/database"
	"koperasi-pos/internal/handlers"
	"koperasi-pos/internal/middleware"
	"koperasi-pos/internal/settlement"
	"koperasi-pos/internal/utils"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.JWTSecret != "" {
		utils.JwtSecret = []byte(cfg.JWTSecret)
	}

	db, err := database.NewConnection(cfg.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	if err := database.EnsureAdminUser(db, adminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin user: %v", err)
	}

	redisClient := config.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	engine := settlement.NewEngine(db)

	authHandler := handlers.NewAuthHandler(db)
	memberHandler := handlers.NewMemberHandler(db)
	productHandler := handlers.NewProductHandler(db, redisClient)
	transactionHandler := handlers.NewTransactionHandler(db, engine, redisClient)
	debtHandler := handlers.NewDebtHandler(engine, redisClient)
	dashboardHandler := handlers.NewDashboardHandler(db, redisClient)
	seedHandler := handlers.NewSeedHandler(db, redisClient)

	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit(cfg.RateLimit))

	public := r.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}
	}

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		members := protected.Group("/members")
		{
			members.GET("", memberHandler.ListMembers)
			members.POST("", memberHandler.CreateMember)
			members.GET("/:id", memberHandler.GetMember)
			members.PUT("/:id", memberHandler.UpdateMember)
			members.DELETE("/:id", memberHandler.DeleteMember)
		}

		products := protected.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.POST("", productHandler.CreateProduct)
			products.GET("/:id", productHandler.GetProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		transactions := protected.Group("/transactions")
		{
			transactions.GET("", transactionHandler.ListTransactions)
			transactions.POST("", transactionHandler.CreateSale)
			transactions.GET("/:id", transactionHandler.GetTransaction)
		}

		debts := protected.Group("/debts")
		{
			debts.GET("", debtHandler.ListDebts)
			debts.GET("/summary", debtHandler.SummarizeDebts)
			debts.GET("/:id", debtHandler.GetDebt)
			debts.GET("/:id/payments", debtHandler.ListDebtPayments)
		}

		payments := protected.Group("/debt-payments")
		{
			payments.GET("", debtHandler.ListPayments)
			payments.POST("", debtHandler.ApplyPayment)
		}

		protected.GET("/dashboard", dashboardHandler.GetDashboard)
		protected.POST("/seed", seedHandler.Seed)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
