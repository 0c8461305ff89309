package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/klasea/astillero-backend/internal/db"
	"github.com/klasea/astillero-backend/internal/handlers"
	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/middleware"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/server"
	"github.com/klasea/astillero-backend/internal/services"
	"github.com/klasea/astillero-backend/internal/sse"
	"github.com/klasea/astillero-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	alertaIntervalMin := utils.GetEnvAsInt("ALERTA_INTERVALO_MINUTOS", 30, log)
	seedFile := utils.GetEnv("SEED_FILE", "config/seed.yaml", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	materialRepo := repos.NewMaterialRepo(thePG, log)
	movimientoRepo := repos.NewMovimientoRepo(thePG, log)
	laminacionMaterialRepo := repos.NewLaminacionMaterialRepo(thePG, log)
	laminacionMovimientoRepo := repos.NewLaminacionMovimientoRepo(thePG, log)
	pedidoRepo := repos.NewPedidoRepo(thePG, log)
	lineaRepo := repos.NewLineaRepo(thePG, log)
	obraRepo := repos.NewObraRepo(thePG, log)
	timelineRepo := repos.NewTimelineRepo(thePG, log)
	alertaRepo := repos.NewAlertaRepo(thePG, log)
	marmoleriaRepo := repos.NewMarmoleriaRepo(thePG, log)
	muebleRepo := repos.NewMuebleRepo(thePG, log)
	procedimientoRepo := repos.NewProcedimientoRepo(thePG, log)
	flotaRepo := repos.NewFlotaRepo(thePG, log)
	sistemaConfigRepo := repos.NewSistemaConfigRepo(thePG, log)

	// SSE
	log.Info("Setting up SSE hub now...")
	sseHub := sse.NewHub(log)

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService, uploads disabled", "error", err)
	}
	var avatarService services.AvatarService
	if os.Getenv("AVATAR_FONT") != "" && bucketService != nil {
		avatarService, err = services.NewAvatarService(thePG, log, userRepo, bucketService)
		if err != nil {
			log.Warn("Could not init AvatarService, avatars disabled", "error", err)
		}
	}
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo, avatarService, sseHub)
	configService := services.NewConfigService(thePG, log, sistemaConfigRepo, sseHub)
	materialService := services.NewMaterialService(thePG, log, materialRepo, movimientoRepo, sseHub)
	exportService := services.NewExportService(thePG, log, materialRepo, movimientoRepo)
	laminacionService := services.NewLaminacionService(thePG, log, laminacionMaterialRepo, laminacionMovimientoRepo, sseHub)
	pedidoService := services.NewPedidoService(thePG, log, pedidoRepo, sseHub)
	lineaService := services.NewLineaService(thePG, log, lineaRepo, sseHub)
	obraService := services.NewObraService(thePG, log, obraRepo, timelineRepo, lineaRepo, alertaRepo, configService, sseHub)
	alertaService := services.NewAlertaService(thePG, log, alertaRepo, obraRepo, timelineRepo, materialRepo, configService, sseHub)
	marmoleriaService := services.NewMarmoleriaService(thePG, log, marmoleriaRepo, bucketService, sseHub)
	muebleService := services.NewMuebleService(thePG, log, muebleRepo, bucketService, sseHub)
	procedimientoService := services.NewProcedimientoService(thePG, log, procedimientoRepo, bucketService, sseHub)
	flotaService := services.NewFlotaService(thePG, log, flotaRepo, sseHub)
	seedService := services.NewSeedService(thePG, log, sistemaConfigRepo, lineaRepo, lineaService)

	// Seed + bootstrap
	if err := seedService.ApplyFromFile(context.Background(), seedFile); err != nil {
		log.Warn("Seed apply failed", "error", err)
	}
	if err := userService.EnsureBootstrapAdmin(context.Background()); err != nil {
		log.Warn("Bootstrap admin failed", "error", err)
	}

	// Background alert evaluation
	go alertaService.RunEvaluator(context.Background(), time.Duration(alertaIntervalMin)*time.Minute)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	sseHandler := handlers.NewSSEHandler(sseHub)
	materialHandler := handlers.NewMaterialHandler(materialService, exportService)
	laminacionHandler := handlers.NewLaminacionHandler(laminacionService)
	pedidoHandler := handlers.NewPedidoHandler(pedidoService)
	obraHandler := handlers.NewObraHandler(obraService)
	lineaHandler := handlers.NewLineaHandler(lineaService)
	alertaHandler := handlers.NewAlertaHandler(alertaService)
	marmoleriaHandler := handlers.NewMarmoleriaHandler(marmoleriaService)
	muebleHandler := handlers.NewMuebleHandler(muebleService)
	procedimientoHandler := handlers.NewProcedimientoHandler(procedimientoService)
	flotaHandler := handlers.NewFlotaHandler(flotaService)
	configHandler := handlers.NewConfigHandler(configService)
	adminHandler := handlers.NewAdminHandler(userService, materialService, pedidoService, obraService, alertaService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:       authMiddleware,
		AuthHandler:          authHandler,
		UserHandler:          userHandler,
		SSEHandler:           sseHandler,
		MaterialHandler:      materialHandler,
		LaminacionHandler:    laminacionHandler,
		PedidoHandler:        pedidoHandler,
		ObraHandler:          obraHandler,
		LineaHandler:         lineaHandler,
		AlertaHandler:        alertaHandler,
		MarmoleriaHandler:    marmoleriaHandler,
		MuebleHandler:        muebleHandler,
		ProcedimientoHandler: procedimientoHandler,
		FlotaHandler:         flotaHandler,
		ConfigHandler:        configHandler,
		AdminHandler:         adminHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
