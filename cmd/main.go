package main

// @title FieldOps Reconciliation API
// @version 1.0
// @description A field-service reconciliation API matching payments, invoices and partner payout files against jobs
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"fmt"
	"net/http"

	"github.com/pezimbron/fieldops-service/docs"
	"github.com/pezimbron/fieldops-service/internal/auth"
	"github.com/pezimbron/fieldops-service/internal/config"
	"github.com/pezimbron/fieldops-service/internal/database"
	"github.com/pezimbron/fieldops-service/internal/logging"
	"github.com/pezimbron/fieldops-service/internal/repositories"
	"github.com/pezimbron/fieldops-service/internal/routes"
	"github.com/pezimbron/fieldops-service/internal/usecases"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}
	cfg := config.LoadConfig()
	log := logging.Setup(cfg)
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Initialize()
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	repos := repositories.NewRepositories(db)

	useCases := usecases.NewUseCases(repos, cfg)

	jwtService := auth.NewJWTService(cfg.App.JWTSecret, "fieldops-service")

	router := gin.Default()
	docs.SwaggerInfo.BasePath = "/api/v1"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, useCases, jwtService)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.WithFields(logrus.Fields{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
		"env":  cfg.App.Environment,
	}).Info("Server starting")
	log.Infof("Swagger UI available at: http://%s:%s/swagger/index.html",
		cfg.Server.Host, cfg.Server.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Failed to start server: ", err)
	}
}
