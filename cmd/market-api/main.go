package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/config"
	"carbon-credits/marketplace-backend/internal/conversion"
	"carbon-credits/marketplace-backend/internal/credits"
	"carbon-credits/marketplace-backend/internal/events"
	"carbon-credits/marketplace-backend/internal/marketplace"
	"carbon-credits/marketplace-backend/internal/stats"
	"carbon-credits/marketplace-backend/internal/tokens"
	"carbon-credits/marketplace-backend/internal/wallet"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Event hub pushes state changes to connected UI clients
	hub := events.NewHub(logger)
	defer hub.Close()

	// Session-scoped state
	ledger := tokens.NewLedger(cfg.Market.InitialBalance, logger, hub)
	inventory := credits.NewInventory(credits.CatalogSeed(), logger, hub)
	walletService := wallet.NewService(logger, hub, ledger, inventory)
	issuer := wallet.NewTokenIssuer(cfg.Security.JWTSecret, cfg.Security.SessionTTL)

	// Engines
	converter := conversion.NewEngine(inventory, ledger, conversion.CallerAmount, logger, hub)
	book := marketplace.NewBook(marketplace.SeedListings(), logger, hub)
	market := marketplace.NewEngine(book, ledger, logger, hub)

	// Handlers
	walletHandler := wallet.NewHandler(walletService, issuer, logger)
	tokensHandler := tokens.NewHandler(ledger, logger)
	creditsHandler := credits.NewHandler(inventory, logger)
	conversionHandler := conversion.NewHandler(converter, logger)
	marketplaceHandler := marketplace.NewHandler(book, market, logger)

	sessionRequired := wallet.SessionRequired(walletService, issuer)

	// Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api/v1")
	{
		walletHandler.RegisterRoutes(api)
		tokensHandler.RegisterRoutes(api, sessionRequired)
		creditsHandler.RegisterRoutes(api, sessionRequired)
		conversionHandler.RegisterRoutes(api, sessionRequired)
		marketplaceHandler.RegisterRoutes(api, sessionRequired)
	}

	// Event stream
	router.GET("/ws/events", func(c *gin.Context) {
		if err := hub.HandleConnection(c.Writer, c.Request); err != nil {
			logger.Error("websocket upgrade failed", zap.Error(err))
		}
	})

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Stats worker
	worker := stats.NewWorker(book, inventory, logger)
	if err := worker.Start(cfg.Market.StatsInterval); err != nil {
		logger.Fatal("Failed to start stats worker", zap.Error(err))
	}
	defer worker.Stop()

	// Start Server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.Int("port", cfg.Server.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
