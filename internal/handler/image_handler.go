package handler

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/momento-cake/admin-sub007/internal/service"
)

// 单个图片最大10MB
const maxImageSize = 10 << 20

// ImageHandler 图库处理器
type ImageHandler struct {
	svc *service.ImageService
}

// NewImageHandler 创建图库处理器
func NewImageHandler(svc *service.ImageService) *ImageHandler {
	return &ImageHandler{svc: svc}
}

// Upload 上传图片
func (h *ImageHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "Missing file: "+err.Error())
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		BadRequest(c, fmt.Sprintf("File too large: %d bytes", header.Size))
		return
	}

	image, err := h.svc.Upload(
		c.Request.Context(),
		GetUserID(c),
		header.Filename,
		header.Header.Get("Content-Type"),
		c.PostForm("owner_type"),
		c.PostForm("owner_id"),
		file,
		header.Size,
	)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, image)
}

// List 获取图片列表
func (h *ImageHandler) List(c *gin.Context) {
	images, err := h.svc.List(c.Request.Context(), c.Query("owner_type"), c.Query("owner_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, images)
}

// Download 下载图片内容
func (h *ImageHandler) Download(c *gin.Context) {
	object, image, err := h.svc.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	defer object.Close()

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", image.FileName))
	c.Header("Content-Type", image.ContentType)
	if _, err := io.Copy(c.Writer, object); err != nil {
		c.Abort()
	}
}

// URL 生成临时下载链接
func (h *ImageHandler) URL(c *gin.Context) {
	u, err := h.svc.PresignedURL(c.Request.Context(), c.Param("id"), 15*time.Minute)
	if err != nil {
		HandleError(c, err)
		return
	}
	Success(c, gin.H{"url": u})
}

// Delete 删除图片
func (h *ImageHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	Success(c, nil)
}
