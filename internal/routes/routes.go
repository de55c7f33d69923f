package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pezimbron/fieldops-service/internal/auth"
	"github.com/pezimbron/fieldops-service/internal/handlers"
	"github.com/pezimbron/fieldops-service/internal/middleware"
	"github.com/pezimbron/fieldops-service/internal/usecases"
)

func SetupRoutes(router *gin.Engine, useCases *usecases.UseCases, jwtService *auth.JWTService) {
	// Health check endpoint
	router.GET("/health", handlers.HealthCheck)

	authHandler := handlers.NewAuthHandler(useCases.User, jwtService)
	authGroup := router.Group("/api/v1")
	{
		authGroup.POST("/auth/register", authHandler.Register)
		authGroup.POST("/auth/login", authHandler.Login)
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(jwtService))
	{
		matchHandler := handlers.NewMatchHandler(useCases.PaymentMatch, useCases.InvoiceMatch)
		payments := v1.Group("/payments")
		{
			payments.GET("/:id/candidates", matchHandler.PaymentCandidates) // Rank billable jobs for a payment
			payments.POST("/:id/match", matchHandler.ConfirmPaymentMatch)   // Confirm a payment-to-job match
		}

		invoices := v1.Group("/invoices")
		{
			invoices.GET("/automatch/preview", matchHandler.PreviewAutoMatch) // Pair unlinked invoices with jobs, read-only
			invoices.POST("/automatch/apply", matchHandler.ApplyAutoMatch)    // Write accepted invoice-to-job links
		}

		importHandler := handlers.NewImportHandler(useCases.PartnerImport)
		imports := v1.Group("/imports")
		{
			imports.POST("/partner", importHandler.ImportPartnerFile) // Reconcile a partner payout file
		}
	}
}
