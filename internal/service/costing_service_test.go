package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

type fakeRecipeStore struct {
	recipes map[string]*entity.Recipe
}

func (s *fakeRecipeStore) FindByID(_ context.Context, id string) (*entity.Recipe, error) {
	if r, ok := s.recipes[id]; ok {
		return r, nil
	}
	return nil, repository.ErrNotFound
}

type fakeIngredientStore struct {
	ingredients map[string]*entity.Ingredient
}

func (s *fakeIngredientStore) FindByID(_ context.Context, id string) (*entity.Ingredient, error) {
	if i, ok := s.ingredients[id]; ok {
		return i, nil
	}
	return nil, repository.ErrNotFound
}

type fakePackagingStore struct {
	packagings map[string]*entity.Packaging
}

func (s *fakePackagingStore) FindByID(_ context.Context, id string) (*entity.Packaging, error) {
	if p, ok := s.packagings[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

type fakeSettingsStore struct {
	settings *entity.CostSettings
}

func (s *fakeSettingsStore) Get(_ context.Context) (*entity.CostSettings, error) {
	if s.settings == nil {
		return nil, repository.ErrNotFound
	}
	return s.settings, nil
}

func newTestCosting(recipes map[string]*entity.Recipe, ingredients map[string]*entity.Ingredient, packagings map[string]*entity.Packaging, settings *entity.CostSettings) *CostingService {
	return NewCostingService(
		&fakeRecipeStore{recipes: recipes},
		&fakeIngredientStore{ingredients: ingredients},
		&fakePackagingStore{packagings: packagings},
		&fakeSettingsStore{settings: settings},
	)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeBreakdownBasic(t *testing.T) {
	// 面粉: 10.00 por 500g -> 0.02/g
	ingredients := map[string]*entity.Ingredient{
		"ing-flour": {
			ID:               "ing-flour",
			Name:             "Farinha de Trigo",
			Unit:             entity.UnitGram,
			MeasurementValue: 500,
			CurrentPrice:     10.00,
		},
	}
	packagings := map[string]*entity.Packaging{
		"pkg-box": {
			ID:        "pkg-box",
			Name:      "Caixa",
			UnitPrice: 1.50,
		},
	}
	recipes := map[string]*entity.Recipe{
		"rec-cake": {
			ID:              "rec-cake",
			Name:            "Bolo",
			Servings:        10,
			GeneratedAmount: 1,
			GeneratedUnit:   entity.UnitPiece,
			PreparationTime: 24,
			Items: []entity.RecipeItem{
				{ItemType: entity.RecipeItemIngredient, ItemID: "ing-flour", Quantity: 500, Unit: entity.UnitGram},
				{ItemType: entity.RecipeItemPackaging, ItemID: "pkg-box", Quantity: 2, Unit: entity.UnitPiece},
			},
		},
	}
	settings := &entity.CostSettings{LaborHourRate: 25, DefaultMargin: 150}

	svc := newTestCosting(recipes, ingredients, packagings, settings)
	breakdown, err := svc.ComputeBreakdown(context.Background(), "rec-cake")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 500g × 0.02 + 2 × 1.50 = 13.00
	if !almostEqual(breakdown.MaterialsCost, 13.00) {
		t.Errorf("materials cost = %v, want 13.00", breakdown.MaterialsCost)
	}
	// 24min / 60 × 25 = 10.00
	if !almostEqual(breakdown.LaborCost, 10.00) {
		t.Errorf("labor cost = %v, want 10.00", breakdown.LaborCost)
	}
	if !almostEqual(breakdown.TotalCost, 23.00) {
		t.Errorf("total cost = %v, want 23.00", breakdown.TotalCost)
	}
	if breakdown.CostPerServing == nil || !almostEqual(*breakdown.CostPerServing, 2.30) {
		t.Errorf("cost per serving = %v, want 2.30", breakdown.CostPerServing)
	}
	if breakdown.CostPerUnit == nil || !almostEqual(*breakdown.CostPerUnit, 23.00) {
		t.Errorf("cost per unit = %v, want 23.00", breakdown.CostPerUnit)
	}
	// 每份 2.30 × 150% = 3.45
	if breakdown.SuggestedPrice == nil || !almostEqual(*breakdown.SuggestedPrice, 3.45) {
		t.Errorf("suggested price = %v, want 3.45", breakdown.SuggestedPrice)
	}
	if len(breakdown.Items) != 2 {
		t.Errorf("items = %d, want 2", len(breakdown.Items))
	}
	if breakdown.CalculatedAt.IsZero() {
		t.Error("calculated_at not set")
	}
}

func TestComputeBreakdownIdempotent(t *testing.T) {
	ingredients := map[string]*entity.Ingredient{
		"ing-sugar": {
			ID:               "ing-sugar",
			Name:             "Açúcar",
			Unit:             entity.UnitKilogram,
			MeasurementValue: 5,
			CurrentPrice:     21.90,
		},
	}
	recipes := map[string]*entity.Recipe{
		"rec-syrup": {
			ID:              "rec-syrup",
			Servings:        3,
			GeneratedAmount: 700,
			GeneratedUnit:   entity.UnitGram,
			PreparationTime: 17,
			Items: []entity.RecipeItem{
				{ItemType: entity.RecipeItemIngredient, ItemID: "ing-sugar", Quantity: 333, Unit: entity.UnitGram},
			},
		},
	}

	svc := newTestCosting(recipes, ingredients, nil, &entity.CostSettings{LaborHourRate: 25, DefaultMargin: 150})

	first, err := svc.ComputeBreakdown(context.Background(), "rec-syrup")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ComputeBreakdown(context.Background(), "rec-syrup")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.TotalCost != second.TotalCost ||
		first.MaterialsCost != second.MaterialsCost ||
		first.LaborCost != second.LaborCost ||
		*first.CostPerServing != *second.CostPerServing ||
		*first.SuggestedPrice != *second.SuggestedPrice {
		t.Errorf("repeated computation differs: %+v vs %+v", first, second)
	}
}

func TestComputeBreakdownTotalIsMaterialsPlusLabor(t *testing.T) {
	ingredients := map[string]*entity.Ingredient{
		"ing-a": {ID: "ing-a", Name: "A", Unit: entity.UnitGram, MeasurementValue: 170, CurrentPrice: 7.77},
		"ing-b": {ID: "ing-b", Name: "B", Unit: entity.UnitMilliliter, MeasurementValue: 330, CurrentPrice: 4.13},
	}
	recipes := map[string]*entity.Recipe{
		"rec-mix": {
			ID:              "rec-mix",
			Servings:        7,
			GeneratedAmount: 1,
			GeneratedUnit:   entity.UnitPiece,
			PreparationTime: 45,
			Items: []entity.RecipeItem{
				{ItemType: entity.RecipeItemIngredient, ItemID: "ing-a", Quantity: 123, Unit: entity.UnitGram},
				{ItemType: entity.RecipeItemIngredient, ItemID: "ing-b", Quantity: 0.25, Unit: entity.UnitLiter},
			},
		},
	}

	svc := newTestCosting(recipes, ingredients, nil, &entity.CostSettings{LaborHourRate: 31.5, DefaultMargin: 200})
	breakdown, err := svc.ComputeBreakdown(context.Background(), "rec-mix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 字段各自只舍入一次，总和允许一分误差
	sum := breakdown.MaterialsCost + breakdown.LaborCost
	if math.Abs(breakdown.TotalCost-sum) > 0.011 {
		t.Errorf("total %v deviates from materials+labor %v", breakdown.TotalCost, sum)
	}
}

func TestComputeBreakdownZeroServings(t *testing.T) {
	recipes := map[string]*entity.Recipe{
		"rec-empty": {
			ID:              "rec-empty",
			Servings:        0,
			GeneratedAmount: 0,
			PreparationTime: 30,
		},
	}

	svc := newTestCosting(recipes, nil, nil, &entity.CostSettings{LaborHourRate: 25, DefaultMargin: 150})
	breakdown, err := svc.ComputeBreakdown(context.Background(), "rec-empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 分母为零时派生字段是 null，不是 0
	if breakdown.CostPerServing != nil {
		t.Errorf("cost per serving = %v, want nil", *breakdown.CostPerServing)
	}
	if breakdown.CostPerUnit != nil {
		t.Errorf("cost per unit = %v, want nil", *breakdown.CostPerUnit)
	}
	if breakdown.SuggestedPrice != nil {
		t.Errorf("suggested price = %v, want nil", *breakdown.SuggestedPrice)
	}
	if !almostEqual(breakdown.LaborCost, 12.50) {
		t.Errorf("labor cost = %v, want 12.50", breakdown.LaborCost)
	}
}

func TestComputeBreakdownSubRecipeScaling(t *testing.T) {
	ingredients := map[string]*entity.Ingredient{
		"ing-choc": {ID: "ing-choc", Name: "Chocolate", Unit: entity.UnitGram, MeasurementValue: 1000, CurrentPrice: 40.00},
	}
	recipes := map[string]*entity.Recipe{
		// 子配方: 产出1000g, 材料 1000g × 0.04 = 40.00, 无人工
		"rec-ganache": {
			ID:              "rec-ganache",
			Name:            "Ganache",
			Servings:        1,
			GeneratedAmount: 1000,
			GeneratedUnit:   entity.UnitGram,
			Items: []entity.RecipeItem{
				{ItemType: entity.RecipeItemIngredient, ItemID: "ing-choc", Quantity: 1000, Unit: entity.UnitGram},
			},
		},
		// 父配方用掉一半的产出
		"rec-torte": {
			ID:              "rec-torte",
			Name:            "Torte",
			Servings:        1,
			GeneratedAmount: 1,
			GeneratedUnit:   entity.UnitPiece,
			Items: []entity.RecipeItem{
				{ItemType: entity.RecipeItemRecipe, ItemID: "rec-ganache", Quantity: 0.5, Unit: entity.UnitKilogram},
			},
		},
	}

	svc := newTestCosting(recipes, ingredients, nil, &entity.CostSettings{LaborHourRate: 25, DefaultMargin: 150})
	breakdown, err := svc.ComputeBreakdown(context.Background(), "rec-torte")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(breakdown.MaterialsCost, 20.00) {
		t.Errorf("materials cost = %v, want 20.00", breakdown.MaterialsCost)
	}
}

func TestComputeBreakdownCycle(t *testing.T) {
	recipes := map[string]*entity.Recipe{
		"rec-a": {
			ID: "rec-a", Servings: 1, GeneratedAmount: 1, GeneratedUnit: entity.UnitPiece,
			Items: []entity.RecipeItem{
				{ItemType: entity.RecipeItemRecipe, ItemID: "rec-b", Quantity: 1, Unit: entity.UnitPiece},
			},
		},
		"rec-b": {
			ID: "rec-b", Servings: 1, GeneratedAmount: 1, GeneratedUnit: entity.UnitPiece,
			Items: []entity.RecipeItem{
				{ItemType: entity.RecipeItemRecipe, ItemID: "rec-a", Quantity: 1, Unit: entity.UnitPiece},
			},
		},
	}

	svc := newTestCosting(recipes, nil, nil, &entity.CostSettings{LaborHourRate: 25, DefaultMargin: 150})
	_, err := svc.ComputeBreakdown(context.Background(), "rec-a")
	if !errors.Is(err, ErrInvalidComposition) {
		t.Fatalf("got %v, want ErrInvalidComposition", err)
	}
}

func TestComputeBreakdownDanglingReference(t *testing.T) {
	recipes := map[string]*entity.Recipe{
		"rec-broken": {
			ID: "rec-broken", Servings: 1, GeneratedAmount: 1, GeneratedUnit: entity.UnitPiece,
			Items: []entity.RecipeItem{
				{ItemType: entity.RecipeItemIngredient, ItemID: "ing-gone", Quantity: 100, Unit: entity.UnitGram},
			},
		},
	}

	svc := newTestCosting(recipes, nil, nil, &entity.CostSettings{LaborHourRate: 25, DefaultMargin: 150})
	_, err := svc.ComputeBreakdown(context.Background(), "rec-broken")
	if !errors.Is(err, ErrInvalidComposition) {
		t.Fatalf("got %v, want ErrInvalidComposition", err)
	}
}

func TestComputeBreakdownDefaultSettings(t *testing.T) {
	recipes := map[string]*entity.Recipe{
		"rec-plain": {
			ID: "rec-plain", Servings: 1, GeneratedAmount: 1, GeneratedUnit: entity.UnitPiece,
			PreparationTime: 60,
		},
	}

	// 参数表为空时使用默认时薪25和默认利润率150
	svc := newTestCosting(recipes, nil, nil, nil)
	breakdown, err := svc.ComputeBreakdown(context.Background(), "rec-plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(breakdown.LaborCost, 25.00) {
		t.Errorf("labor cost = %v, want 25.00", breakdown.LaborCost)
	}
	// 每份 25.00 × 150% = 37.50
	if breakdown.SuggestedPrice == nil || !almostEqual(*breakdown.SuggestedPrice, 37.50) {
		t.Errorf("suggested price = %v, want 37.50", breakdown.SuggestedPrice)
	}
}

func TestComputeBreakdownCategoryMargin(t *testing.T) {
	recipes := map[string]*entity.Recipe{
		"rec-cat": {
			ID: "rec-cat", CategoryID: "cat-wedding", Servings: 1, GeneratedAmount: 1,
			GeneratedUnit: entity.UnitPiece, PreparationTime: 60,
		},
	}
	settings := &entity.CostSettings{
		LaborHourRate:   25,
		DefaultMargin:   150,
		CategoryMargins: entity.JSONB{"cat-wedding": 300.0},
	}

	svc := newTestCosting(recipes, nil, nil, settings)
	breakdown, err := svc.ComputeBreakdown(context.Background(), "rec-cat")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(breakdown.Margin, 300) {
		t.Errorf("margin = %v, want 300", breakdown.Margin)
	}
	// 每份 25.00 × 300% = 75.00
	if breakdown.SuggestedPrice == nil || !almostEqual(*breakdown.SuggestedPrice, 75.00) {
		t.Errorf("suggested price = %v, want 75.00", breakdown.SuggestedPrice)
	}
}
