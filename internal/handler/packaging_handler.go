package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/momento-cake/admin-sub007/internal/service"
)

// PackagingHandler 包装材料处理器
type PackagingHandler struct {
	svc *service.PackagingService
}

// NewPackagingHandler 创建包装材料处理器
func NewPackagingHandler(svc *service.PackagingService) *PackagingHandler {
	return &PackagingHandler{svc: svc}
}

// List 获取包装材料列表
func (h *PackagingHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)

	filters := map[string]interface{}{
		"keyword": c.Query("keyword"),
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

// Get 获取包装材料详情
func (h *PackagingHandler) Get(c *gin.Context) {
	packaging, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, packaging)
}

// Create 创建包装材料
func (h *PackagingHandler) Create(c *gin.Context) {
	var req service.CreatePackagingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	packaging, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, packaging)
}

// Update 更新包装材料
func (h *PackagingHandler) Update(c *gin.Context) {
	var req service.UpdatePackagingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	packaging, err := h.svc.Update(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, packaging)
}

// Delete 删除包装材料
func (h *PackagingHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}

// PriceHistory 获取包装材料价格历史
func (h *PackagingHandler) PriceHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.svc.PriceHistory(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, records)
}
