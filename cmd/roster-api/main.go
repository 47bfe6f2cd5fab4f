package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/pinecrest/camp-roster-api/api/swagger"
	"github.com/pinecrest/camp-roster-api/internal/handler"
	"github.com/pinecrest/camp-roster-api/internal/middleware"
	"github.com/pinecrest/camp-roster-api/internal/repository"
	"github.com/pinecrest/camp-roster-api/internal/service"
	"github.com/pinecrest/camp-roster-api/internal/workbook"
	"github.com/pinecrest/camp-roster-api/pkg/cache"
	"github.com/pinecrest/camp-roster-api/pkg/config"
	"github.com/pinecrest/camp-roster-api/pkg/database"
	"github.com/pinecrest/camp-roster-api/pkg/logger"
	corsmiddleware "github.com/pinecrest/camp-roster-api/pkg/middleware/cors"
	reqidmiddleware "github.com/pinecrest/camp-roster-api/pkg/middleware/requestid"
	"github.com/pinecrest/camp-roster-api/pkg/storage"
)

// @title Camp Roster API
// @version 1.0.0
// @description Registration workbook ingestion, workshop aggregation, and roster reporting
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close() //nolint:errcheck

	schema, err := workbook.LoadImportSchema(cfg.Imports.SchemaPath)
	if err != nil {
		logr.Fatal("failed to load import schema", zap.Error(err))
	}

	reportStorage, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare report storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)

	timeSlotRepo := repository.NewTimeSlotRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	tagRepo := repository.NewTagRepository(db)
	userRepo := repository.NewUserRepository(db)
	resultRepo := repository.NewImportResultRepository(redisClient, cfg.Imports.ResultTTL)
	cacheRepo := repository.NewCacheRepository(redisClient)

	metricsSvc := service.NewMetricsService()
	importSvc := service.NewImportService(resultRepo, metricsSvc, logr)
	timeSlotSvc := service.NewTimeSlotService(timeSlotRepo, cacheRepo, 5*time.Minute, nil, logr)
	locationSvc := service.NewLocationService(locationRepo, nil, logr)
	tagSvc := service.NewTagService(tagRepo, nil, logr)
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	reportSvc := service.NewReportService(resultRepo, timeSlotRepo, reportStorage, signer, metricsSvc,
		service.ReportConfig{APIPrefix: cfg.APIPrefix}, logr)

	importHandler := handler.NewImportHandler(importSvc, schema, cfg.Imports.MaxUploadSize)
	reportHandler := handler.NewReportHandler(reportSvc)
	timeSlotHandler := handler.NewTimeSlotHandler(timeSlotSvc)
	locationHandler := handler.NewLocationHandler(locationSvc)
	tagHandler := handler.NewTagHandler(tagSvc)
	authHandler := handler.NewAuthHandler(authSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/reports/:token", reportHandler.Download)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.POST("/imports", importHandler.Upload)
		protected.GET("/imports/:id", importHandler.Get)
		protected.GET("/imports/:id/workshops", importHandler.Workshops)

		protected.POST("/reports", reportHandler.Generate)

		protected.GET("/timeslots", timeSlotHandler.List)
		protected.POST("/timeslots", timeSlotHandler.Create)
		protected.PUT("/timeslots/:id", timeSlotHandler.Update)
		protected.DELETE("/timeslots/:id", timeSlotHandler.Delete)
		protected.GET("/timeslots/validate", timeSlotHandler.Validate)
		protected.POST("/timeslots/validate", timeSlotHandler.ValidateDraft)

		protected.GET("/locations", locationHandler.List)
		protected.GET("/locations/:id", locationHandler.Get)
		protected.POST("/locations", locationHandler.Create)
		protected.PUT("/locations/:id", locationHandler.Update)
		protected.DELETE("/locations/:id", locationHandler.Delete)

		protected.GET("/tags", tagHandler.List)
		protected.GET("/tags/:id", tagHandler.Get)
		protected.POST("/tags", tagHandler.Create)
		protected.PUT("/tags/:id", tagHandler.Update)
		protected.DELETE("/tags/:id", tagHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
