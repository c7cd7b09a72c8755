package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

// ErrResourceInUse 资源被引用，拒绝删除
var ErrResourceInUse = errors.New("resource in use")

// ProductService 产品服务
type ProductService struct {
	repo       *repository.ProductRepository
	catRepo    *repository.ProductCategoryRepository
	subcatRepo *repository.ProductSubcategoryRepository
	recipeRepo *repository.RecipeRepository
	costing    *CostingService
	sku        *SKUService
	rdb        *redis.Client
}

// NewProductService 创建产品服务
func NewProductService(
	repo *repository.ProductRepository,
	catRepo *repository.ProductCategoryRepository,
	subcatRepo *repository.ProductSubcategoryRepository,
	recipeRepo *repository.RecipeRepository,
	costing *CostingService,
	sku *SKUService,
	rdb *redis.Client,
) *ProductService {
	return &ProductService{
		repo:       repo,
		catRepo:    catRepo,
		subcatRepo: subcatRepo,
		recipeRepo: recipeRepo,
		costing:    costing,
		sku:        sku,
		rdb:        rdb,
	}
}

// ProductRecipeRequest 产品配方行项请求
type ProductRecipeRequest struct {
	RecipeID string  `json:"recipe_id" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// ProductPackageRequest 产品包装行项请求
type ProductPackageRequest struct {
	PackagingID string  `json:"packaging_id" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
}

// CreateProductRequest 创建产品请求
type CreateProductRequest struct {
	Name          string                  `json:"name" binding:"required"`
	CategoryID    string                  `json:"category_id" binding:"required"`
	SubcategoryID string                  `json:"subcategory_id"`
	Description   string                  `json:"description"`
	SellingPrice  float64                 `json:"selling_price"`
	Specs         map[string]interface{}  `json:"specs"`
	Recipes       []ProductRecipeRequest  `json:"recipes"`
	Packages      []ProductPackageRequest `json:"packages"`
}

// UpdateProductRequest 更新产品请求
type UpdateProductRequest struct {
	Name         string                  `json:"name"`
	Description  string                  `json:"description"`
	Status       string                  `json:"status"`
	SellingPrice *float64                `json:"selling_price"`
	ThumbnailURL string                  `json:"thumbnail_url"`
	Specs        map[string]interface{}  `json:"specs"`
	Recipes      []ProductRecipeRequest  `json:"recipes"`
	Packages     []ProductPackageRequest `json:"packages"`
}

// ProductListResult 产品列表结果
type ProductListResult struct {
	Items      []entity.Product `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

// List 获取产品列表
func (s *ProductService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*ProductListResult, error) {
	products, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ProductListResult{
		Items:      products,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取产品详情
func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return product, nil
}

// Create 创建产品：校验类别、分配SKU、按配方和包装计算成本
func (s *ProductService) Create(ctx context.Context, userID string, req *CreateProductRequest) (*entity.Product, error) {
	category, err := s.catRepo.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}

	subcategoryCode := ""
	if req.SubcategoryID != "" {
		subcategory, err := s.subcatRepo.FindByID(ctx, req.SubcategoryID)
		if err != nil {
			return nil, fmt.Errorf("find subcategory: %w", err)
		}
		if subcategory.CategoryID != category.ID {
			return nil, fmt.Errorf("%w: subcategory %s does not belong to category %s", ErrInvalidScope, subcategory.ID, category.ID)
		}
		subcategoryCode = subcategory.Code
	}

	sequence, err := s.sku.AllocateNext(ctx, req.CategoryID, req.SubcategoryID)
	if err != nil {
		return nil, fmt.Errorf("allocate sku: %w", err)
	}
	sku := FormatSKU(category.Code, subcategoryCode, sequence)

	now := time.Now()
	product := &entity.Product{
		SKU:           sku,
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
		Description:   req.Description,
		Status:        entity.ProductStatusDraft,
		SellingPrice:  req.SellingPrice,
		Specs:         entity.JSONB(req.Specs),
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, r := range req.Recipes {
		product.Recipes = append(product.Recipes, entity.ProductRecipeItem{
			RecipeID: r.RecipeID,
			Quantity: r.Quantity,
		})
	}
	for _, p := range req.Packages {
		product.Packages = append(product.Packages, entity.ProductPackageItem{
			PackagingID: p.PackagingID,
			Quantity:    p.Quantity,
		})
	}

	if err := s.refreshPricing(ctx, product); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.clearCache(ctx)
	return product, nil
}

// Update 更新产品并重算派生价格
func (s *ProductService) Update(ctx context.Context, id string, userID string, req *UpdateProductRequest) (*entity.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Description != "" {
		product.Description = req.Description
	}
	if req.Status != "" {
		switch req.Status {
		case entity.ProductStatusDraft, entity.ProductStatusActive, entity.ProductStatusDiscontinued:
			product.Status = req.Status
		default:
			return nil, fmt.Errorf("invalid status: %s", req.Status)
		}
	}
	if req.SellingPrice != nil {
		product.SellingPrice = *req.SellingPrice
	}
	if req.ThumbnailURL != "" {
		product.ThumbnailURL = req.ThumbnailURL
	}
	if req.Specs != nil {
		product.Specs = entity.JSONB(req.Specs)
	}
	if req.Recipes != nil {
		product.Recipes = product.Recipes[:0]
		for _, r := range req.Recipes {
			product.Recipes = append(product.Recipes, entity.ProductRecipeItem{
				RecipeID: r.RecipeID,
				Quantity: r.Quantity,
			})
		}
	}
	if req.Packages != nil {
		product.Packages = product.Packages[:0]
		for _, p := range req.Packages {
			product.Packages = append(product.Packages, entity.ProductPackageItem{
				PackagingID: p.PackagingID,
				Quantity:    p.Quantity,
			})
		}
	}
	product.UpdatedBy = userID
	product.UpdatedAt = time.Now()

	if err := s.refreshPricing(ctx, product); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.clearCache(ctx)
	return product, nil
}

// Delete 删除产品。SKU序号不回收。
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.clearCache(ctx)
	return nil
}

// RefreshCosts 按当前原料价格重算产品成本
func (s *ProductService) RefreshCosts(ctx context.Context, id string, userID string) (*entity.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}

	if err := s.refreshPricing(ctx, product); err != nil {
		return nil, err
	}
	product.UpdatedBy = userID
	product.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.clearCache(ctx)
	return product, nil
}

// refreshPricing 汇总配方与包装成本，写入成本价、建议售价和利润率。
// 配方成本按产出单位成本乘以用量，避免份数与用量混淆。
func (s *ProductService) refreshPricing(ctx context.Context, product *entity.Product) error {
	total := decimal.Zero
	margin := 0.0

	for _, item := range product.Recipes {
		breakdown, err := s.costing.ComputeBreakdown(ctx, item.RecipeID)
		if err != nil {
			return fmt.Errorf("compute recipe cost: %w", err)
		}
		if breakdown.CostPerUnit == nil {
			return fmt.Errorf("%w: recipe %s has no generated amount", ErrInvalidComposition, item.RecipeID)
		}
		total = total.Add(decimal.NewFromFloat(*breakdown.CostPerUnit).
			Mul(decimal.NewFromFloat(item.Quantity)))
		if margin == 0 {
			margin = breakdown.Margin
		}
	}

	for _, item := range product.Packages {
		packaging, err := s.costing.packagings.FindByID(ctx, item.PackagingID)
		if err != nil {
			return fmt.Errorf("find packaging: %w", err)
		}
		total = total.Add(decimal.NewFromFloat(packaging.UnitPrice).
			Mul(decimal.NewFromFloat(item.Quantity)))
	}

	if margin == 0 {
		_, m, err := s.costing.loadRates(ctx, product.CategoryID)
		if err != nil {
			return err
		}
		margin = m
	}

	product.CostPrice = round2(total)
	product.Margin = margin
	product.SuggestedPrice = round2(total.Mul(decimal.NewFromFloat(margin)).Div(decimal.NewFromInt(100)))

	product.ProfitMargin = profitMargin(product.SellingPrice, total)
	return nil
}

// profitMargin 实际利润率 =（售价 − 成本价）/ 售价 × 100，未定价时为零
func profitMargin(sellingPrice float64, cost decimal.Decimal) float64 {
	if sellingPrice <= 0 {
		return 0
	}
	price := decimal.NewFromFloat(sellingPrice)
	return round2(price.Sub(cost).Div(price).Mul(decimal.NewFromInt(100)))
}

// CreateCategoryRequest 创建类别请求
type CreateCategoryRequest struct {
	Code        string `json:"code" binding:"required,alphanum,max=16"`
	Name        string `json:"name" binding:"required"`
	SortOrder   int    `json:"sort_order"`
	Description string `json:"description"`
}

// CreateSubcategoryRequest 创建子类别请求
type CreateSubcategoryRequest struct {
	Code      string `json:"code" binding:"required,alphanum,max=16"`
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// ListCategories 获取类别树
func (s *ProductService) ListCategories(ctx context.Context) ([]entity.ProductCategory, error) {
	categories, err := s.catRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory 创建类别
func (s *ProductService) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*entity.ProductCategory, error) {
	now := time.Now()
	category := &entity.ProductCategory{
		Code:        req.Code,
		Name:        req.Name,
		SortOrder:   req.SortOrder,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.catRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

// CreateSubcategory 在类别下创建子类别
func (s *ProductService) CreateSubcategory(ctx context.Context, categoryID string, req *CreateSubcategoryRequest) (*entity.ProductSubcategory, error) {
	if _, err := s.catRepo.FindByID(ctx, categoryID); err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}

	now := time.Now()
	subcategory := &entity.ProductSubcategory{
		CategoryID: categoryID,
		Code:       req.Code,
		Name:       req.Name,
		SortOrder:  req.SortOrder,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.subcatRepo.Create(ctx, subcategory); err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	return subcategory, nil
}

// UpdateCategoryRequest 更新类别请求
type UpdateCategoryRequest struct {
	Name        string `json:"name"`
	SortOrder   *int   `json:"sort_order"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateCategory 更新类别。类别编码参与已分配的SKU，不允许修改。
func (s *ProductService) UpdateCategory(ctx context.Context, id string, req *UpdateCategoryRequest) (*entity.ProductCategory, error) {
	category, err := s.catRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.Description != "" {
		category.Description = req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.UpdatedAt = time.Now()

	if err := s.catRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// DeleteCategory 删除类别。类别下仍有产品时拒绝删除。
func (s *ProductService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.catRepo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find category: %w", err)
	}

	count, err := s.repo.CountByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count category products: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: category has %d products", ErrResourceInUse, count)
	}

	if err := s.catRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// UpdateSubcategoryRequest 更新子类别请求
type UpdateSubcategoryRequest struct {
	Name      string `json:"name"`
	SortOrder *int   `json:"sort_order"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateSubcategory 更新子类别
func (s *ProductService) UpdateSubcategory(ctx context.Context, categoryID, id string, req *UpdateSubcategoryRequest) (*entity.ProductSubcategory, error) {
	subcategory, err := s.subcatRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find subcategory: %w", err)
	}
	if subcategory.CategoryID != categoryID {
		return nil, fmt.Errorf("find subcategory: %w", repository.ErrNotFound)
	}

	if req.Name != "" {
		subcategory.Name = req.Name
	}
	if req.SortOrder != nil {
		subcategory.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		subcategory.IsActive = *req.IsActive
	}
	subcategory.UpdatedAt = time.Now()

	if err := s.subcatRepo.Update(ctx, subcategory); err != nil {
		return nil, fmt.Errorf("update subcategory: %w", err)
	}
	return subcategory, nil
}

// DeleteSubcategory 删除子类别。子类别下仍有产品时拒绝删除。
func (s *ProductService) DeleteSubcategory(ctx context.Context, categoryID, id string) error {
	subcategory, err := s.subcatRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find subcategory: %w", err)
	}
	if subcategory.CategoryID != categoryID {
		return fmt.Errorf("find subcategory: %w", repository.ErrNotFound)
	}

	count, err := s.repo.CountBySubcategory(ctx, id)
	if err != nil {
		return fmt.Errorf("count subcategory products: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: subcategory has %d products", ErrResourceInUse, count)
	}

	if err := s.subcatRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	return nil
}

func (s *ProductService) clearCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, "products:list")
	}
}
