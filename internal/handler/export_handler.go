package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/momento-cake/admin-sub007/internal/service"
)

// ExportHandler 数据导出处理器
type ExportHandler struct {
	svc *service.ExportService
}

// NewExportHandler 创建数据导出处理器
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// Ingredients GET /export/ingredients
func (h *ExportHandler) Ingredients(c *gin.Context) {
	h.write(c, h.svc.ExportIngredients)
}

// Products GET /export/products
func (h *ExportHandler) Products(c *gin.Context) {
	h.write(c, h.svc.ExportProducts)
}

// Recipes GET /export/recipes
func (h *ExportHandler) Recipes(c *gin.Context) {
	h.write(c, h.svc.ExportRecipes)
}

func (h *ExportHandler) write(c *gin.Context, export func(context.Context) (*excelize.File, string, error)) {
	f, filename, err := export(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
