package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

// 错误定义
var (
	ErrInvalidComposition = errors.New("invalid recipe composition")
)

// 默认成本参数，cost_settings 表尚未初始化时使用
const (
	defaultLaborHourRate = 25.0
	defaultMargin        = 150.0
)

// RecipeStore 配方读取接口
type RecipeStore interface {
	FindByID(ctx context.Context, id string) (*entity.Recipe, error)
}

// IngredientStore 原料读取接口
type IngredientStore interface {
	FindByID(ctx context.Context, id string) (*entity.Ingredient, error)
}

// PackagingStore 包装材料读取接口
type PackagingStore interface {
	FindByID(ctx context.Context, id string) (*entity.Packaging, error)
}

// CostSettingsStore 成本参数读取接口
type CostSettingsStore interface {
	Get(ctx context.Context) (*entity.CostSettings, error)
}

// CostingService 成本计算服务。
// 每次计算都重新读取原料、包装和子配方的当前价格，
// 不依赖任何缓存的成本字段。
type CostingService struct {
	recipes     RecipeStore
	ingredients IngredientStore
	packagings  PackagingStore
	settings    CostSettingsStore
}

// NewCostingService 创建成本计算服务
func NewCostingService(recipes RecipeStore, ingredients IngredientStore, packagings PackagingStore, settings CostSettingsStore) *CostingService {
	return &CostingService{
		recipes:     recipes,
		ingredients: ingredients,
		packagings:  packagings,
		settings:    settings,
	}
}

// ItemCost 单个行项的成本明细
type ItemCost struct {
	ItemID   string      `json:"item_id"`
	ItemType string      `json:"item_type"`
	Name     string      `json:"name"`
	Quantity float64     `json:"quantity"`
	Unit     entity.Unit `json:"unit"`
	UnitCost float64     `json:"unit_cost"`
	Cost     float64     `json:"cost"`
}

// CostBreakdown 配方成本明细。
// 分母为零时派生字段为 null，与成本为零是两种不同的结果。
type CostBreakdown struct {
	RecipeID       string     `json:"recipe_id"`
	Items          []ItemCost `json:"items"`
	MaterialsCost  float64    `json:"materials_cost"`
	LaborCost      float64    `json:"labor_cost"`
	TotalCost      float64    `json:"total_cost"`
	CostPerServing *float64   `json:"cost_per_serving"`
	CostPerUnit    *float64   `json:"cost_per_unit"`
	Margin         float64    `json:"margin"`
	SuggestedPrice *float64   `json:"suggested_price"`
	CalculatedAt   time.Time  `json:"calculated_at"`
}

// rawCost 未舍入的中间结果，和值在原始精度上累加
type rawCost struct {
	items     []ItemCost
	materials decimal.Decimal
	labor     decimal.Decimal
}

func (c rawCost) total() decimal.Decimal {
	return c.materials.Add(c.labor)
}

// round2 银行家舍入到分，每个对外字段只舍入一次
func round2(d decimal.Decimal) float64 {
	return d.RoundBank(2).InexactFloat64()
}

// round2p 同 round2，返回指针
func round2p(d decimal.Decimal) *float64 {
	v := round2(d)
	return &v
}

// ComputeBreakdown 计算配方成本明细
func (s *CostingService) ComputeBreakdown(ctx context.Context, recipeID string) (*CostBreakdown, error) {
	recipe, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("find recipe: %w", err)
	}

	laborRate, margin, err := s.loadRates(ctx, recipe.CategoryID)
	if err != nil {
		return nil, err
	}

	visited := map[string]bool{}
	raw, err := s.compute(ctx, recipe, laborRate, visited)
	if err != nil {
		return nil, err
	}

	total := raw.total()

	breakdown := &CostBreakdown{
		RecipeID:      recipe.ID,
		Items:         raw.items,
		MaterialsCost: round2(raw.materials),
		LaborCost:     round2(raw.labor),
		TotalCost:     round2(total),
		Margin:        margin,
		CalculatedAt:  time.Now(),
	}

	// 建议售价以每份成本为基数，份数为零时无法给出建议
	if recipe.Servings > 0 {
		perServing := total.Div(decimal.NewFromInt(int64(recipe.Servings)))
		breakdown.CostPerServing = round2p(perServing)
		breakdown.SuggestedPrice = round2p(perServing.Mul(decimal.NewFromFloat(margin)).Div(decimal.NewFromInt(100)))
	}
	if recipe.GeneratedAmount > 0 {
		breakdown.CostPerUnit = round2p(total.Div(decimal.NewFromFloat(recipe.GeneratedAmount)))
	}

	return breakdown, nil
}

// loadRates 读取人工时薪和类别利润率，参数表缺失时退回默认值
func (s *CostingService) loadRates(ctx context.Context, categoryID string) (float64, float64, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return defaultLaborHourRate, defaultMargin, nil
		}
		return 0, 0, fmt.Errorf("load cost settings: %w", err)
	}

	margin := settings.DefaultMargin
	if categoryID != "" && settings.CategoryMargins != nil {
		if v, ok := settings.CategoryMargins[categoryID]; ok {
			if m, ok := v.(float64); ok && m > 0 {
				margin = m
			}
		}
	}
	return settings.LaborHourRate, margin, nil
}

// compute 递归计算配方的未舍入成本。visited 用于检测配方环。
func (s *CostingService) compute(ctx context.Context, recipe *entity.Recipe, laborRate float64, visited map[string]bool) (rawCost, error) {
	if visited[recipe.ID] {
		return rawCost{}, fmt.Errorf("%w: recipe cycle at %s", ErrInvalidComposition, recipe.ID)
	}
	visited[recipe.ID] = true
	defer delete(visited, recipe.ID)

	var raw rawCost
	for _, item := range recipe.Items {
		cost, err := s.itemCost(ctx, recipe.ID, item, laborRate, visited)
		if err != nil {
			return rawCost{}, err
		}
		raw.items = append(raw.items, cost.detail)
		raw.materials = raw.materials.Add(cost.raw)
	}

	// 人工成本 = 准备时间（分钟）/ 60 × 时薪
	raw.labor = decimal.NewFromInt(int64(recipe.PreparationTime)).
		Div(decimal.NewFromInt(60)).
		Mul(decimal.NewFromFloat(laborRate))

	return raw, nil
}

// itemRawCost 行项成本：detail 的金额字段已舍入用于展示，raw 保留原始精度用于累加
type itemRawCost struct {
	detail ItemCost
	raw    decimal.Decimal
}

func (s *CostingService) itemCost(ctx context.Context, recipeID string, item entity.RecipeItem, laborRate float64, visited map[string]bool) (itemRawCost, error) {
	quantity := decimal.NewFromFloat(item.Quantity)

	switch item.ItemType {
	case entity.RecipeItemIngredient:
		ingredient, err := s.ingredients.FindByID(ctx, item.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return itemRawCost{}, fmt.Errorf("%w: recipe %s references missing ingredient %s", ErrInvalidComposition, recipeID, item.ItemID)
			}
			return itemRawCost{}, fmt.Errorf("find ingredient: %w", err)
		}

		// 单位成本 = 当前价格 / 购买规格数量
		var unitCost decimal.Decimal
		if ingredient.MeasurementValue > 0 {
			unitCost = decimal.NewFromFloat(ingredient.CurrentPrice).
				Div(decimal.NewFromFloat(ingredient.MeasurementValue))
		}

		converted, err := ConvertQuantity(quantity, item.Unit, ingredient.Unit)
		if err != nil {
			return itemRawCost{}, fmt.Errorf("%w: %s in recipe %s: %v", ErrInvalidComposition, ingredient.Name, recipeID, err)
		}

		cost := unitCost.Mul(converted)
		return itemRawCost{
			detail: ItemCost{
				ItemID:   item.ItemID,
				ItemType: item.ItemType,
				Name:     ingredient.Name,
				Quantity: item.Quantity,
				Unit:     item.Unit,
				UnitCost: round2(unitCost),
				Cost:     round2(cost),
			},
			raw: cost,
		}, nil

	case entity.RecipeItemPackaging:
		packaging, err := s.packagings.FindByID(ctx, item.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return itemRawCost{}, fmt.Errorf("%w: recipe %s references missing packaging %s", ErrInvalidComposition, recipeID, item.ItemID)
			}
			return itemRawCost{}, fmt.Errorf("find packaging: %w", err)
		}

		unitCost := decimal.NewFromFloat(packaging.UnitPrice)
		cost := unitCost.Mul(quantity)
		return itemRawCost{
			detail: ItemCost{
				ItemID:   item.ItemID,
				ItemType: item.ItemType,
				Name:     packaging.Name,
				Quantity: item.Quantity,
				Unit:     item.Unit,
				UnitCost: round2(unitCost),
				Cost:     round2(cost),
			},
			raw: cost,
		}, nil

	case entity.RecipeItemRecipe:
		sub, err := s.recipes.FindByID(ctx, item.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return itemRawCost{}, fmt.Errorf("%w: recipe %s references missing sub-recipe %s", ErrInvalidComposition, recipeID, item.ItemID)
			}
			return itemRawCost{}, fmt.Errorf("find sub-recipe: %w", err)
		}

		subRaw, err := s.compute(ctx, sub, laborRate, visited)
		if err != nil {
			return itemRawCost{}, err
		}

		if sub.GeneratedAmount <= 0 {
			return itemRawCost{}, fmt.Errorf("%w: sub-recipe %s has no generated amount", ErrInvalidComposition, sub.ID)
		}

		// 按子配方产出量的占比折算
		converted, err := ConvertQuantity(quantity, item.Unit, sub.GeneratedUnit)
		if err != nil {
			return itemRawCost{}, fmt.Errorf("%w: %s in recipe %s: %v", ErrInvalidComposition, sub.Name, recipeID, err)
		}

		scale := converted.Div(decimal.NewFromFloat(sub.GeneratedAmount))
		subTotal := subRaw.total()
		unitCost := subTotal.Div(decimal.NewFromFloat(sub.GeneratedAmount))
		cost := subTotal.Mul(scale)
		return itemRawCost{
			detail: ItemCost{
				ItemID:   item.ItemID,
				ItemType: item.ItemType,
				Name:     sub.Name,
				Quantity: item.Quantity,
				Unit:     item.Unit,
				UnitCost: round2(unitCost),
				Cost:     round2(cost),
			},
			raw: cost,
		}, nil

	default:
		return itemRawCost{}, fmt.Errorf("%w: unknown item type %q in recipe %s", ErrInvalidComposition, item.ItemType, recipeID)
	}
}
