package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/momento-cake/admin-sub007/internal/config"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

// Services 服务集合
type Services struct {
	Ingredient *IngredientService
	Packaging  *PackagingService
	Recipe     *RecipeService
	Product    *ProductService
	Costing    *CostingService
	SKU        *SKUService
	Settings   *SettingsService
	Supplier   *SupplierService
	Client     *ClientService
	Image      *ImageService
	Export     *ExportService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client, cfg *config.Config, logger *zap.Logger) *Services {
	// 初始化MinIO客户端，失败时图片接口不可用但服务继续启动
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			logger.Error("Failed to init MinIO client, image storage disabled",
				zap.String("endpoint", cfg.MinIO.Endpoint),
				zap.Error(err),
			)
			minioClient = nil
		}
	}

	costing := NewCostingService(repos.Recipe, repos.Ingredient, repos.Packaging, repos.Settings)
	sku := NewSKUService(repos.SkuCounter)

	return &Services{
		Ingredient: NewIngredientService(repos.Ingredient, repos.PriceHistory, rdb),
		Packaging:  NewPackagingService(repos.Packaging, repos.PriceHistory, rdb),
		Recipe:     NewRecipeService(repos.Recipe, costing, rdb),
		Product:    NewProductService(repos.Product, repos.ProductCategory, repos.ProductSubcategory, repos.Recipe, costing, sku, rdb),
		Costing:    costing,
		SKU:        sku,
		Settings:   NewSettingsService(repos.Settings),
		Supplier:   NewSupplierService(repos.Supplier, repos.Ingredient),
		Client:     NewClientService(repos.Client),
		Image:      NewImageService(repos.Image, minioClient, cfg.MinIO.Bucket),
		Export:     NewExportService(repos.Ingredient, repos.Packaging, repos.Product, repos.Recipe, costing),
	}
}
