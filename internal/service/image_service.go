package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

// generateObjectID 生成对象存储键的随机段
func generateObjectID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:32]
}

// ImageService 图库服务，文件存MinIO，元数据存数据库
type ImageService struct {
	repo        *repository.ImageRepository
	minioClient *minio.Client
	bucketName  string
}

// NewImageService 创建图库服务
func NewImageService(repo *repository.ImageRepository, minioClient *minio.Client, bucketName string) *ImageService {
	return &ImageService{
		repo:        repo,
		minioClient: minioClient,
		bucketName:  bucketName,
	}
}

// allowedImageTypes 允许上传的图片类型
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Upload 上传图片并登记元数据
func (s *ImageService) Upload(ctx context.Context, userID, fileName, contentType, ownerType, ownerID string, reader io.Reader, size int64) (*entity.Image, error) {
	if !allowedImageTypes[contentType] {
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}

	now := time.Now()
	objectKey := fmt.Sprintf("images/%s/%s%s", now.Format("2006/01"), generateObjectID(), path.Ext(fileName))

	if s.minioClient != nil {
		_, err := s.minioClient.PutObject(ctx, s.bucketName, objectKey, reader, size, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
	}

	image := &entity.Image{
		FileName:    fileName,
		ObjectKey:   objectKey,
		ContentType: contentType,
		Size:        size,
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		UploadedBy:  userID,
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("create image record: %w", err)
	}
	return image, nil
}

// Download 获取图片内容
func (s *ImageService) Download(ctx context.Context, id string) (io.ReadCloser, *entity.Image, error) {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find image: %w", err)
	}
	if s.minioClient == nil {
		return nil, nil, fmt.Errorf("object storage not configured")
	}
	object, err := s.minioClient.GetObject(ctx, s.bucketName, image.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("get image object: %w", err)
	}
	return object, image, nil
}

// PresignedURL 生成临时下载链接
func (s *ImageService) PresignedURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("find image: %w", err)
	}
	if s.minioClient == nil {
		return "", fmt.Errorf("object storage not configured")
	}
	u, err := s.minioClient.PresignedGetObject(ctx, s.bucketName, image.ObjectKey, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign image url: %w", err)
	}
	return u.String(), nil
}

// List 获取图片列表
func (s *ImageService) List(ctx context.Context, ownerType, ownerID string) ([]entity.Image, error) {
	images, err := s.repo.ListByOwner(ctx, ownerType, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return images, nil
}

// Delete 删除图片记录并移除对象
func (s *ImageService) Delete(ctx context.Context, id string) error {
	image, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find image: %w", err)
	}
	if s.minioClient != nil {
		if err := s.minioClient.RemoveObject(ctx, s.bucketName, image.ObjectKey, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove image object: %w", err)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete image record: %w", err)
	}
	return nil
}
