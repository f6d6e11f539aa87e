package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"school_survey_backend/internal/config"
	"school_survey_backend/internal/controller"
	"school_survey_backend/internal/repository"
	"school_survey_backend/internal/service"
	"school_survey_backend/pkg/database"
	"school_survey_backend/pkg/logger"
	"school_survey_backend/pkg/monitoring"
	"school_survey_backend/pkg/security"
	"school_survey_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	submission   *repository.SubmissionRepository
	schoolSurvey *repository.SchoolSurveyRepository
}

type services struct {
	auth         *service.AuthService
	submission   *service.SubmissionService
	schoolSurvey *service.SchoolSurveyService
	storage      *service.StorageService
	export       *service.ExportService
}

type controllers struct {
	auth         *controller.AuthController
	submission   *controller.SubmissionController
	schoolSurvey *controller.SchoolSurveyController
	region       *controller.RegionController
	upload       *controller.UploadController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// OnConfigReload 配置热加载入口，由configwatcher回调。
// 就地更新可热生效的配置项（JWT密钥、CORS白名单、缓存开关）。
func (a *App) OnConfigReload(cfg *config.Config) {
	a.Config.JWT = cfg.JWT
	a.Config.CORS = cfg.CORS
	a.Config.Cache = cfg.Cache
	a.Config.Admin = cfg.Admin

	for _, cb := range a.configCallbacks {
		cb(cfg)
	}

	logger.Log.Info("配置已热加载",
		zap.Strings("cors_allowed_origins", cfg.CORS.AllowedOrigins))
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		submission:   repository.NewSubmissionRepository(db),
		schoolSurvey: repository.NewSchoolSurveyRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.storage = service.NewStorageService(cfg)
	s.export = service.NewExportService(repos.submission)

	var cache *service.QueryCache
	if cfg.Cache.Enabled && rdb != nil {
		cache = service.NewQueryCache(rdb, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	}
	s.submission = service.NewSubmissionService(repos.submission, cache)
	s.schoolSurvey = service.NewSchoolSurveyService(repos.schoolSurvey)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		submission:   controller.NewSubmissionController(s.submission, s.export),
		schoolSurvey: controller.NewSchoolSurveyController(s.schoolSurvey),
		region:       controller.NewRegionController(),
		upload:       controller.NewUploadController(s.storage),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(func() []string {
		return a.Config.CORS.AllowedOrigins
	}))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// debug 模式默认自动迁移；release 模式需显式 -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		if err := database.SeedAdmin(db, &cfg.Admin); err != nil {
			logger.Log.Fatal("Failed to seed admin account", zap.Error(err))
		}
	}

	// Redis 仅用于公开查询缓存，连不上走直查数据库
	var rdb *redis.Client
	if cfg.Cache.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, query cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("school-survey-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.Redis != nil {
		a.Redis.Close()
	}

	log.Println("Server exiting")
}
