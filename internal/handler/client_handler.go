package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/momento-cake/admin-sub007/internal/service"
)

// ClientHandler 客户处理器
type ClientHandler struct {
	svc *service.ClientService
}

// NewClientHandler 创建客户处理器
func NewClientHandler(svc *service.ClientService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// List 获取客户列表
func (h *ClientHandler) List(c *gin.Context) {
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

// Get 获取客户详情
func (h *ClientHandler) Get(c *gin.Context) {
	client, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, client)
}

// Create 创建客户
func (h *ClientHandler) Create(c *gin.Context) {
	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, client)
}

// Update 更新客户
func (h *ClientHandler) Update(c *gin.Context) {
	var req service.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	client, err := h.svc.Update(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, client)
}

// Delete 删除客户
func (h *ClientHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
