package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/momento-cake/admin-sub007/internal/service"
)

// SettingsHandler 成本参数处理器
type SettingsHandler struct {
	svc *service.SettingsService
}

// NewSettingsHandler 创建成本参数处理器
func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get 获取成本参数
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.svc.Get(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, settings)
}

// Update 更新成本参数
func (h *SettingsHandler) Update(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.svc.Update(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, settings)
}
