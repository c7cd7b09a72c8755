package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/momento-cake/admin-sub007/internal/service"
)

// ProductHandler 产品处理器
type ProductHandler struct {
	svc *service.ProductService
}

// NewProductHandler 创建产品处理器
func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List 获取产品列表
func (h *ProductHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword":        c.Query("keyword"),
		"category_id":    c.Query("category_id"),
		"subcategory_id": c.Query("subcategory_id"),
		"status":         c.Query("status"),
	}

	result, err := h.svc.List(c.Request.Context(), page, pageSize, filters)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, result)
}

// Get 获取产品详情
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, product)
}

// Create 创建产品
func (h *ProductHandler) Create(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, product)
}

// Update 更新产品
func (h *ProductHandler) Update(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.svc.Update(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, product)
}

// Delete 删除产品
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// ListCategories 获取类别树
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, categories)
}

// CreateCategory 创建类别
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req service.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.svc.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, category)
}

// CreateSubcategory 在类别下创建子类别
func (h *ProductHandler) CreateSubcategory(c *gin.Context) {
	var req service.CreateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	subcategory, err := h.svc.CreateSubcategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, subcategory)
}

// UpdateCategory 更新类别
func (h *ProductHandler) UpdateCategory(c *gin.Context) {
	var req service.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.svc.UpdateCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, category)
}

// DeleteCategory 删除类别
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	if err := h.svc.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// UpdateSubcategory 更新子类别
func (h *ProductHandler) UpdateSubcategory(c *gin.Context) {
	var req service.UpdateSubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	subcategory, err := h.svc.UpdateSubcategory(c.Request.Context(), c.Param("id"), c.Param("subId"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, subcategory)
}

// DeleteSubcategory 删除子类别
func (h *ProductHandler) DeleteSubcategory(c *gin.Context) {
	if err := h.svc.DeleteSubcategory(c.Request.Context(), c.Param("id"), c.Param("subId")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// RefreshCosts 按当前原料价格重算产品成本
func (h *ProductHandler) RefreshCosts(c *gin.Context) {
	product, err := h.svc.RefreshCosts(c.Request.Context(), c.Param("id"), GetUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, product)
}
