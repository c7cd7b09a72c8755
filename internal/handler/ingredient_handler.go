package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/momento-cake/admin-sub007/internal/service"
)

// IngredientHandler 原料处理器
type IngredientHandler struct {
	svc *service.IngredientService
}

// NewIngredientHandler 创建原料处理器
func NewIngredientHandler(svc *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{svc: svc}
}

// List 获取原料列表
func (h *IngredientHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword":     c.Query("keyword"),
		"supplier_id": c.Query("supplier_id"),
	}
	if active := c.Query("is_active"); active != "" {
		filters["is_active"] = active == "true"
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// Get 获取原料详情
func (h *IngredientHandler) Get(c *gin.Context) {
	ingredient, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, ingredient)
}

// Create 创建原料
func (h *IngredientHandler) Create(c *gin.Context) {
	var req service.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ingredient, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, ingredient)
}

// Update 更新原料
func (h *IngredientHandler) Update(c *gin.Context) {
	var req service.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ingredient, err := h.svc.Update(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, ingredient)
}

// Delete 删除原料
func (h *IngredientHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// PriceHistory 获取原料价格历史
func (h *IngredientHandler) PriceHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.svc.PriceHistory(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, records)
}

// LowStock 获取库存不足的原料
func (h *IngredientHandler) LowStock(c *gin.Context) {
	ingredients, err := h.svc.ListLowStock(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, ingredients)
}
