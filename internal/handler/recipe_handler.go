package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/momento-cake/admin-sub007/internal/service"
)

// RecipeHandler 配方处理器
type RecipeHandler struct {
	svc *service.RecipeService
}

// NewRecipeHandler 创建配方处理器
func NewRecipeHandler(svc *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{svc: svc}
}

// List 获取配方列表
func (h *RecipeHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword":     c.Query("keyword"),
		"category_id": c.Query("category_id"),
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

// Get 获取配方详情
func (h *RecipeHandler) Get(c *gin.Context) {
	recipe, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, recipe)
}

// Costs 按当前价格计算配方成本明细
func (h *RecipeHandler) Costs(c *gin.Context) {
	breakdown, err := h.svc.Costs(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, breakdown)
}

// Create 创建配方
func (h *RecipeHandler) Create(c *gin.Context) {
	var req service.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	recipe, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, recipe)
}

// Update 更新配方
func (h *RecipeHandler) Update(c *gin.Context) {
	var req service.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	recipe, err := h.svc.Update(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, recipe)
}

// Delete 删除配方
func (h *RecipeHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// Duplicate 复制配方
func (h *RecipeHandler) Duplicate(c *gin.Context) {
	recipe, err := h.svc.Duplicate(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, recipe)
}
