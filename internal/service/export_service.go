package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/momento-cake/admin-sub007/internal/repository"
)

// ExportService 目录数据导出服务
type ExportService struct {
	ingredientRepo *repository.IngredientRepository
	packagingRepo  *repository.PackagingRepository
	productRepo    *repository.ProductRepository
	recipeRepo     *repository.RecipeRepository
	costing        *CostingService
}

// NewExportService 创建导出服务
func NewExportService(
	ingredientRepo *repository.IngredientRepository,
	packagingRepo *repository.PackagingRepository,
	productRepo *repository.ProductRepository,
	recipeRepo *repository.RecipeRepository,
	costing *CostingService,
) *ExportService {
	return &ExportService{
		ingredientRepo: ingredientRepo,
		packagingRepo:  packagingRepo,
		productRepo:    productRepo,
		recipeRepo:     recipeRepo,
		costing:        costing,
	}
}

const exportPageSize = 1000

var ingredientExportHeaders = []string{
	"Nome", "Marca", "Unidade", "Quantidade", "Preço Atual", "Custo Unitário", "Estoque", "Estoque Mínimo", "Ativo",
}

var productExportHeaders = []string{
	"SKU", "Nome", "Categoria", "Status", "Custo", "Preço Sugerido", "Preço de Venda", "Margem (%)",
}

var recipeExportHeaders = []string{
	"Nome", "Porções", "Rendimento", "Unidade", "Tempo de Preparo (min)", "Custo Materiais", "Custo Mão de Obra", "Custo Total", "Custo por Porção", "Preço Sugerido",
}

func newExportFile(sheet string, headers []string, widths []float64) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheet)

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}
	return f, nil
}

// ExportIngredients 导出原料清单为xlsx
func (s *ExportService) ExportIngredients(ctx context.Context) (*excelize.File, string, error) {
	ingredients, _, err := s.ingredientRepo.List(ctx, 1, exportPageSize, nil)
	if err != nil {
		return nil, "", fmt.Errorf("list ingredients: %w", err)
	}

	sheet := "Ingredientes"
	f, err := newExportFile(sheet, ingredientExportHeaders, []float64{24, 16, 8, 12, 12, 12, 10, 14, 8})
	if err != nil {
		return nil, "", err
	}

	for rowIdx, ing := range ingredients {
		row := rowIdx + 2
		unitCost := 0.0
		if ing.MeasurementValue > 0 {
			unitCost = ing.CurrentPrice / ing.MeasurementValue
		}
		active := "Sim"
		if !ing.IsActive {
			active = "Não"
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), ing.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), ing.Brand)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(ing.Unit))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), ing.MeasurementValue)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), ing.CurrentPrice)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), unitCost)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), ing.CurrentStock)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), ing.MinStock)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), active)
	}

	filename := fmt.Sprintf("ingredientes_%s.xlsx", time.Now().Format("2006-01-02"))
	return f, filename, nil
}

// ExportProducts 导出产品清单为xlsx
func (s *ExportService) ExportProducts(ctx context.Context) (*excelize.File, string, error) {
	products, _, err := s.productRepo.List(ctx, 1, exportPageSize, nil)
	if err != nil {
		return nil, "", fmt.Errorf("list products: %w", err)
	}

	sheet := "Produtos"
	f, err := newExportFile(sheet, productExportHeaders, []float64{16, 28, 18, 12, 10, 14, 14, 12})
	if err != nil {
		return nil, "", err
	}

	for rowIdx, p := range products {
		row := rowIdx + 2
		categoryName := ""
		if p.Category != nil {
			categoryName = p.Category.Name
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.SKU)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Name)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), categoryName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Status)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.CostPrice)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), p.SuggestedPrice)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), p.SellingPrice)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), p.Margin)
	}

	filename := fmt.Sprintf("produtos_%s.xlsx", time.Now().Format("2006-01-02"))
	return f, filename, nil
}

// ExportRecipes 导出配方成本汇总为xlsx，逐条按当前价格重算
func (s *ExportService) ExportRecipes(ctx context.Context) (*excelize.File, string, error) {
	recipes, _, err := s.recipeRepo.List(ctx, 1, exportPageSize, nil)
	if err != nil {
		return nil, "", fmt.Errorf("list recipes: %w", err)
	}

	sheet := "Receitas"
	f, err := newExportFile(sheet, recipeExportHeaders, []float64{28, 10, 12, 8, 20, 14, 16, 12, 16, 14})
	if err != nil {
		return nil, "", err
	}

	for rowIdx, recipe := range recipes {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), recipe.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), recipe.Servings)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), recipe.GeneratedAmount)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(recipe.GeneratedUnit))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), recipe.PreparationTime)

		breakdown, err := s.costing.ComputeBreakdown(ctx, recipe.ID)
		if err != nil {
			// 组成失效的配方仍然导出基本信息
			continue
		}
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), breakdown.MaterialsCost)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), breakdown.LaborCost)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), breakdown.TotalCost)
		if breakdown.CostPerServing != nil {
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), *breakdown.CostPerServing)
		}
		if breakdown.SuggestedPrice != nil {
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), *breakdown.SuggestedPrice)
		}
	}

	filename := fmt.Sprintf("receitas_%s.xlsx", time.Now().Format("2006-01-02"))
	return f, filename, nil
}
