package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/drovic/drovic-backend/internal/config"
	"github.com/drovic/drovic-backend/internal/database"
	"github.com/drovic/drovic-backend/internal/handler"
	"github.com/drovic/drovic-backend/internal/middleware"
	"github.com/drovic/drovic-backend/internal/migration"
	"github.com/drovic/drovic-backend/internal/repository"
	"github.com/drovic/drovic-backend/internal/routes"
	"github.com/drovic/drovic-backend/internal/rowstore"
	"github.com/drovic/drovic-backend/internal/service"
	"github.com/drovic/drovic-backend/internal/session"
	"github.com/drovic/drovic-backend/internal/ws"
	pkgcache "github.com/drovic/drovic-backend/pkg/cache"
	"github.com/drovic/drovic-backend/pkg/i18n"
	pkglogger "github.com/drovic/drovic-backend/pkg/logger"
	pkgredis "github.com/drovic/drovic-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           Drovic API
// @version         1.0
// @description     Backend for the Drovic fan site: assets, gallery, leaderboards, team and page sessions.
//
// @license.name    MIT
//
// @host            localhost:8080
// @BasePath        /api/v1

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	configPath := config.Path()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	pkglogger.GetLogger().Info().Fields(config.LogResolved(cfg)).Msg("config resolved")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		pkglogger.Warn("Failed to connect to database: %v (continuing without DB)", err)
		db = nil
	} else {
		pkglogger.Info("Connected to %s", driverName(cfg.Database.Driver))
		if err := migration.Run(db); err != nil {
			pkglogger.Warn("Migration warning: %v", err)
		}
		if cfg.IsDevelopment() {
			if err := migration.Seed(db, migration.DefaultSeedOptions()); err != nil {
				pkglogger.Warn("Seed warning: %v", err)
			}
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if err != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
			redisClient = nil
		} else {
			pkglogger.Info("Connected to Redis")
		}
	}

	// WebSocket Hub
	wsHub := ws.NewHub(redisClient)
	go wsHub.Run()

	// i18n Bundle
	i18n.SetDefault(i18n.Locale(cfg.UI.DefaultLanguage))
	i18nBundle := i18n.NewBundle(i18n.Locale(cfg.UI.DefaultLanguage))
	for locale, msgs := range i18n.DefaultMessages() {
		i18nBundle.LoadMessages(locale, msgs)
	}
	if _, err := os.Stat("i18n"); err == nil {
		if err := i18nBundle.LoadDir("i18n"); err != nil {
			pkglogger.Warn("i18n LoadDir failed: %v", err)
		}
	}

	router := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     splitAndTrim(cfg.CORS.AllowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining", "X-Cache"},
		MaxAge:           86400,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(corsConfig))

	// Middleware
	router.Use(middleware.I18n())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.InputSanitizer())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil && !cfg.IsDevelopment() {
		router.Use(middleware.RateLimit(redisClient, i18nBundle, middleware.DefaultRateLimitConfig()))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "drovic-backend",
			"time":    time.Now().Unix(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var manager *session.Manager
	handlers := routes.Handlers{}
	var leaderboardSvc service.LeaderboardService
	if db != nil {
		store := rowstore.NewGormStore(db)
		cacheSvc := pkgcache.NewService(redisClient)

		assetSvc := service.NewAssetService(repository.NewAssetRepository(store), cacheSvc, cfg.Cache.ListTTL)
		gallerySvc := service.NewGalleryService(repository.NewGalleryRepository(store), cacheSvc, cfg.Cache.ListTTL)
		leaderboardSvc = service.NewLeaderboardService(repository.NewLeaderboardRepository(store), cacheSvc, cfg.Cache.ListTTL)
		teamSvc := service.NewTeamService(repository.NewTeamRepository(store), cacheSvc, cfg.Cache.ListTTL)

		manager = session.NewManager(session.Sources{
			Assets:       assetSvc,
			Gallery:      gallerySvc,
			Leaderboards: leaderboardSvc,
			Team:         teamSvc,
		}, i18nBundle, wsHub, session.Options{
			NoticeDuration: cfg.UI.NoticeDuration,
			DownloadDelay:  cfg.UI.DownloadDelay,
			IdleTTL:        cfg.UI.SessionIdleTTL,
		})
		go manager.Run(ctx)

		handlers = routes.Handlers{
			Asset:       handler.NewAssetHandler(assetSvc, i18nBundle),
			Gallery:     handler.NewGalleryHandler(gallerySvc, cfg.UI.MasonryColumns, i18nBundle),
			Leaderboard: handler.NewLeaderboardHandler(leaderboardSvc, i18nBundle),
			Team:        handler.NewTeamHandler(teamSvc, i18nBundle),
			Session:     handler.NewSessionHandler(manager, cfg.UI, i18nBundle),
			WS:          handler.NewWSHandler(wsHub, manager, cfg.CORS.AllowOrigins, i18nBundle),
		}

		go reportDBStats(ctx, db)
	} else {
		pkglogger.Warn("Data routes disabled: no database connection")
	}

	// the static pages need no database
	handlers.Site = handler.NewSiteHandler(service.NewSiteService(cfg.Site, leaderboardSvc))
	routes.Setup(router, handlers, redisClient, cfg.Cache.ResponseTTL)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		pkglogger.Info("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	pkglogger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		pkglogger.Error("Server shutdown: %v", err)
	}
	if manager != nil {
		manager.CloseAll()
	}
	wsHub.Stop()
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

// reportDBStats publishes the open connection count for the db gauge
func reportDBStats(ctx context.Context, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		middleware.SetDBConnectionsOpen(sqlDB.Stats().OpenConnections)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func driverName(driver string) string {
	if driver == "" {
		return "mysql"
	}
	return driver
}

// splitAndTrim splits a string by delimiter and drops empty parts
func splitAndTrim(s string, delimiter string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, delimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
