package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/chronos-room-api/api/swagger"
	"github.com/noah-isme/chronos-room-api/internal/handler"
	"github.com/noah-isme/chronos-room-api/internal/middleware"
	"github.com/noah-isme/chronos-room-api/internal/models"
	"github.com/noah-isme/chronos-room-api/internal/repository"
	"github.com/noah-isme/chronos-room-api/internal/service"
	"github.com/noah-isme/chronos-room-api/pkg/cache"
	"github.com/noah-isme/chronos-room-api/pkg/config"
	"github.com/noah-isme/chronos-room-api/pkg/database"
	"github.com/noah-isme/chronos-room-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/chronos-room-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/chronos-room-api/pkg/middleware/requestid"
	"github.com/noah-isme/chronos-room-api/pkg/storage"
)

// @title Chronos Room API
// @version 1.0.0
// @description Campus room booking: availability, reservations and approvals
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metrics := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Availability.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, availability cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Availability.CacheTTL, logr)
		}
	}

	files, err := storage.NewLocalStorage(cfg.Documents.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init document storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Documents.SignedURLSecret, cfg.Documents.SignedURLTTL)

	roomRepo := repository.NewRoomRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	approvalLogRepo := repository.NewApprovalLogRepository(db)
	buildingRepo := repository.NewBuildingRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	userRepo := repository.NewUserRepository(db)

	conflictSvc := service.NewConflictService(scheduleRepo, reservationRepo, logr)
	availabilitySvc := service.NewAvailabilityService(roomRepo, conflictSvc, cacheSvc, logr)
	approvalSvc := service.NewApprovalService(reservationRepo, approvalLogRepo, cacheSvc, logr)
	reservationSvc := service.NewReservationService(reservationRepo, conflictSvc, cacheSvc, nil, logr)
	roomSvc := service.NewRoomService(roomRepo, buildingRepo, cacheSvc, nil, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, cacheSvc, nil, logr)
	buildingSvc := service.NewBuildingService(buildingRepo, nil, logr)
	organizationSvc := service.NewOrganizationService(organizationRepo, nil, logr)
	documentSvc := service.NewDocumentService(documentRepo, reservationRepo, files, signer, cfg.Documents.MaxFileSizeBytes, logr)
	exportSvc := service.NewExportService(reservationRepo, logr)
	userSvc := service.NewUserService(userRepo, logr)
	authSvc := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})

	roomHandler := handler.NewRoomHandler(roomSvc, availabilitySvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	reservationHandler := handler.NewReservationHandler(reservationSvc)
	approvalHandler := handler.NewApprovalHandler(approvalSvc)
	buildingHandler := handler.NewBuildingHandler(buildingSvc)
	organizationHandler := handler.NewOrganizationHandler(organizationSvc)
	documentHandler := handler.NewDocumentHandler(documentSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	userHandler := handler.NewUserHandler(userSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api/v1")

	api.POST("/auth/login", authHandler.Login)
	api.GET("/documents/download", documentHandler.Download)

	auth := api.Group("")
	auth.Use(middleware.JWT(authSvc))

	auth.GET("/auth/me", authHandler.Me)

	auth.GET("/rooms", roomHandler.List)
	auth.GET("/rooms/available", roomHandler.Available)
	auth.GET("/rooms/:id", roomHandler.Get)
	auth.GET("/rooms/:id/availability", roomHandler.Availability)

	auth.GET("/schedules", scheduleHandler.List)

	auth.GET("/buildings", buildingHandler.List)
	auth.GET("/buildings/:id", buildingHandler.Get)
	auth.GET("/organizations", organizationHandler.List)
	auth.GET("/organizations/:id", organizationHandler.Get)

	auth.GET("/reservations", reservationHandler.List)
	auth.GET("/reservations/upcoming", reservationHandler.Upcoming)
	auth.POST("/reservations/check-conflicts", reservationHandler.CheckConflicts)
	auth.GET("/reservations/:id", reservationHandler.Get)
	auth.POST("/reservations",
		middleware.Audit(userRepo, "CREATE", "reservation"),
		reservationHandler.Create)
	auth.PUT("/reservations/:id",
		middleware.Audit(userRepo, "UPDATE", "reservation"),
		reservationHandler.Update)
	auth.PUT("/reservations/:id/cancel",
		middleware.Audit(userRepo, "CANCEL", "reservation"),
		approvalHandler.Cancel)
	auth.GET("/reservations/:id/approval-history", approvalHandler.History)

	auth.GET("/reservations/:id/documents", documentHandler.List)
	auth.POST("/reservations/:id/documents",
		middleware.Audit(userRepo, "UPLOAD", "document"),
		documentHandler.Upload)
	auth.GET("/documents/:id/download-url", documentHandler.DownloadURL)
	auth.DELETE("/documents/:id",
		middleware.Audit(userRepo, "DELETE", "document"),
		documentHandler.Delete)

	approvers := auth.Group("")
	approvers.Use(middleware.RBAC(models.RoleAdvisor, models.RoleAdmin))
	approvers.PUT("/reservations/:id/approve",
		middleware.Audit(userRepo, "APPROVE", "reservation"),
		approvalHandler.Approve)
	approvers.PUT("/reservations/:id/reject",
		middleware.Audit(userRepo, "REJECT", "reservation"),
		approvalHandler.Reject)

	admin := auth.Group("")
	admin.Use(middleware.RBAC(models.RoleAdmin))
	admin.POST("/rooms", middleware.Audit(userRepo, "CREATE", "room"), roomHandler.Create)
	admin.PUT("/rooms/:id", middleware.Audit(userRepo, "UPDATE", "room"), roomHandler.Update)
	admin.DELETE("/rooms/:id", middleware.Audit(userRepo, "DELETE", "room"), roomHandler.Delete)
	admin.POST("/schedules", middleware.Audit(userRepo, "CREATE", "schedule"), scheduleHandler.Create)
	admin.DELETE("/schedules/:id", middleware.Audit(userRepo, "DELETE", "schedule"), scheduleHandler.Delete)
	admin.POST("/buildings", buildingHandler.Create)
	admin.POST("/organizations", organizationHandler.Create)
	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.Get)
	admin.DELETE("/reservations/:id",
		middleware.Audit(userRepo, "DELETE", "reservation"),
		reservationHandler.Delete)
	admin.GET("/exports/reservations", exportHandler.ReservationSchedule)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
