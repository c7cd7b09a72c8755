package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/momento-cake/admin-sub007/internal/repository"
	"github.com/momento-cake/admin-sub007/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Ingredient *IngredientHandler
	Packaging  *PackagingHandler
	Recipe     *RecipeHandler
	Product    *ProductHandler
	Settings   *SettingsHandler
	Supplier   *SupplierHandler
	Client     *ClientHandler
	Image      *ImageHandler
	Export     *ExportHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Ingredient: NewIngredientHandler(svc.Ingredient),
		Packaging:  NewPackagingHandler(svc.Packaging),
		Recipe:     NewRecipeHandler(svc.Recipe),
		Product:    NewProductHandler(svc.Product),
		Settings:   NewSettingsHandler(svc.Settings),
		Supplier:   NewSupplierHandler(svc.Supplier),
		Client:     NewClientHandler(svc.Client),
		Image:      NewImageHandler(svc.Image),
		Export:     NewExportHandler(svc.Export),
	}
}

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Unauthorized 未授权响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// Conflict 并发冲突响应
func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

// Unprocessable 业务规则冲突响应
func Unprocessable(c *gin.Context, message string) {
	Error(c, 42200, message)
}

// InternalError 服务器错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleError 按错误类型映射响应
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidComposition), errors.Is(err, service.ErrInvalidScope):
		Unprocessable(c, err.Error())
	case errors.Is(err, service.ErrAllocationExhausted), errors.Is(err, service.ErrResourceInUse):
		Conflict(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetPagination 从请求获取分页参数
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
