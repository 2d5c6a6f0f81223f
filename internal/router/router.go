// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/glasshouse/editions-backend/internal/config"
	"github.com/glasshouse/editions-backend/internal/handlers"
	"github.com/glasshouse/editions-backend/internal/middleware"
	"github.com/glasshouse/editions-backend/internal/services"
	"github.com/glasshouse/editions-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services. The sequencer is the single serialization point
	// for every mutating ledger operation, so all services share one.
	sequencer := services.NewSequencer()
	eventService := services.NewEventService(db)
	accountService := services.NewAccountService(db)
	editionService := services.NewEditionService(db, sequencer, eventService)
	tokenService := services.NewTokenService(db, sequencer)
	purchaseService := services.NewPurchaseService(db, sequencer, editionService, tokenService, accountService, eventService)
	gatewayService := services.NewGatewayService(db, cfg, editionService, purchaseService)
	contractService := services.NewContractService(db)
	statsService := services.NewStatsService(db)
	authService := services.NewAuthService(db, cfg)
	metadataService, _ := services.NewMetadataService(db, cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	editionHandler := handlers.NewEditionHandler(editionService, purchaseService)
	tokenHandler := handlers.NewTokenHandler(tokenService)
	accountHandler := handlers.NewAccountHandler(accountService, tokenService)
	paymentHandler := handlers.NewPaymentHandler(gatewayService)
	eventHandler := handlers.NewEventHandler(eventService)
	contractHandler := handlers.NewContractHandler(contractService, statsService)
	metadataHandler := handlers.NewMetadataHandler(metadataService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Edition routes
		editions := v1.Group("/editions")
		{
			editions.GET("", editionHandler.ListEditions)
			editions.GET("/:id", editionHandler.GetEdition)

			// Authenticated routes
			protected := editions.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", editionHandler.CreateEdition)
				protected.POST("/:id/purchase", editionHandler.BuyEdition)
			}
		}

		// Token routes
		tokens := v1.Group("/tokens")
		{
			tokens.GET("/:id", tokenHandler.GetToken)
			tokens.GET("/:id/owner", tokenHandler.GetOwner)
			tokens.GET("/:id/uri", tokenHandler.GetTokenURI)
			tokens.GET("/:id/approved", tokenHandler.GetApproved)

			// Authenticated routes
			protected := tokens.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("/:id/approve", tokenHandler.Approve)
				protected.POST("/:id/transfer", tokenHandler.Transfer)
			}
		}

		// Account routes (public reads)
		accounts := v1.Group("/accounts")
		{
			accounts.GET("/:address", accountHandler.GetAccount)
			accounts.GET("/:address/tokens", accountHandler.GetAccountTokens)
		}

		// Payment routes
		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/intent", paymentHandler.CreateCheckoutIntent)
			payments.POST("/confirm", paymentHandler.ConfirmCheckout)
		}

		// Event feed (public)
		events := v1.Group("/events")
		{
			events.GET("", eventHandler.ListEvents)
			events.GET("/stream", eventHandler.StreamEvents)
			events.GET("/verify", eventHandler.VerifyChain)
		}

		// Collection metadata and stats (public)
		v1.GET("/contract", contractHandler.GetContract)
		v1.GET("/stats", contractHandler.GetStats)

		// Metadata uploads
		metadata := v1.Group("/metadata")
		metadata.Use(middleware.AuthRequired())
		{
			metadata.POST("", middleware.UploadRateLimit(), metadataHandler.Upload)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.PATCH("/accounts/:address/freeze", accountHandler.SetFrozen)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
