package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/momento-cake/admin-sub007/internal/config"
	"github.com/momento-cake/admin-sub007/internal/handler"
	"github.com/momento-cake/admin-sub007/internal/middleware"
	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"github.com/momento-cake/admin-sub007/internal/repository"
	"github.com/momento-cake/admin-sub007/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 本地开发时加载.env
	_ = godotenv.Load()

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting catalog service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := migrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 初始化Redis
	rdb := initRedis(cfg.Redis)

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	// 首次启动时写入默认成本参数
	if err := seedCostSettings(repos, cfg); err != nil {
		zapLogger.Fatal("Failed to seed cost settings", zap.Error(err))
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 注册路由
	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Ingredient{},
		&entity.Packaging{},
		&entity.PriceHistory{},
		&entity.Recipe{},
		&entity.RecipeItem{},
		&entity.ProductCategory{},
		&entity.ProductSubcategory{},
		&entity.Product{},
		&entity.ProductRecipeItem{},
		&entity.ProductPackageItem{},
		&entity.SkuCounter{},
		&entity.CostSettings{},
		&entity.Supplier{},
		&entity.Client{},
		&entity.Image{},
	)
}

func seedCostSettings(repos *repository.Repositories, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return repos.Settings.SeedIfMissing(ctx, &entity.CostSettings{
		LaborHourRate: cfg.Costing.LaborHourRate,
		DefaultMargin: cfg.Costing.DefaultMargin,
		UpdatedAt:     time.Now(),
	})
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
	{
		// 原料管理
		ingredients := authorized.Group("/ingredients")
		{
			ingredients.GET("", h.Ingredient.List)
			ingredients.POST("", h.Ingredient.Create)
			ingredients.GET("/low-stock", h.Ingredient.LowStock)
			ingredients.GET("/:id", h.Ingredient.Get)
			ingredients.PUT("/:id", h.Ingredient.Update)
			ingredients.DELETE("/:id", h.Ingredient.Delete)
			ingredients.GET("/:id/price-history", h.Ingredient.PriceHistory)
		}

		// 包装材料管理
		packagings := authorized.Group("/packagings")
		{
			packagings.GET("", h.Packaging.List)
			packagings.POST("", h.Packaging.Create)
			packagings.GET("/:id", h.Packaging.Get)
			packagings.PUT("/:id", h.Packaging.Update)
			packagings.DELETE("/:id", h.Packaging.Delete)
			packagings.GET("/:id/price-history", h.Packaging.PriceHistory)
		}

		// 配方管理
		recipes := authorized.Group("/recipes")
		{
			recipes.GET("", h.Recipe.List)
			recipes.POST("", h.Recipe.Create)
			recipes.GET("/:id", h.Recipe.Get)
			recipes.PUT("/:id", h.Recipe.Update)
			recipes.DELETE("/:id", h.Recipe.Delete)
			recipes.GET("/:id/costs", h.Recipe.Costs)
			recipes.POST("/:id/duplicate", h.Recipe.Duplicate)
		}

		// 产品管理
		products := authorized.Group("/products")
		{
			products.GET("", h.Product.List)
			products.POST("", h.Product.Create)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", h.Product.Update)
			products.DELETE("/:id", h.Product.Delete)
			products.POST("/:id/refresh-costs", h.Product.RefreshCosts)
		}

		// 产品类别
		categories := authorized.Group("/product-categories")
		{
			categories.GET("", h.Product.ListCategories)
			categories.POST("", h.Product.CreateCategory)
			categories.PUT("/:id", h.Product.UpdateCategory)
			categories.DELETE("/:id", h.Product.DeleteCategory)
			categories.POST("/:id/subcategories", h.Product.CreateSubcategory)
			categories.PUT("/:id/subcategories/:subId", h.Product.UpdateSubcategory)
			categories.DELETE("/:id/subcategories/:subId", h.Product.DeleteSubcategory)
		}

		// 成本参数
		settings := authorized.Group("/settings")
		{
			settings.GET("/costing", h.Settings.Get)
			settings.PUT("/costing", h.Settings.Update)
		}

		// 客户管理
		suppliers := authorized.Group("/suppliers")
		{
			suppliers.GET("", h.Supplier.List)
			suppliers.POST("", h.Supplier.Create)
			suppliers.GET("/:id", h.Supplier.Get)
			suppliers.PUT("/:id", h.Supplier.Update)
			suppliers.DELETE("/:id", h.Supplier.Delete)
		}

		clients := authorized.Group("/clients")
		{
			clients.GET("", h.Client.List)
			clients.POST("", h.Client.Create)
			clients.GET("/:id", h.Client.Get)
			clients.PUT("/:id", h.Client.Update)
			clients.DELETE("/:id", h.Client.Delete)
		}

		// 图库
		images := authorized.Group("/images")
		{
			images.GET("", h.Image.List)
			images.POST("", h.Image.Upload)
			images.GET("/:id/download", h.Image.Download)
			images.GET("/:id/url", h.Image.URL)
			images.DELETE("/:id", h.Image.Delete)
		}

		// 数据导出
		export := authorized.Group("/export")
		{
			export.GET("/ingredients", h.Export.Ingredients)
			export.GET("/products", h.Export.Products)
			export.GET("/recipes", h.Export.Recipes)
		}
	}
}
