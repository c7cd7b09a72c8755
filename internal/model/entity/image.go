package entity

import (
	"time"
)

// Image 图库图片元数据，文件本体存储在对象存储
type Image struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	FileName    string     `json:"file_name" gorm:"size:256;not null"`
	ObjectKey   string     `json:"object_key" gorm:"size:512;not null"`
	ContentType string     `json:"content_type" gorm:"size:64;not null"`
	Size        int64      `json:"size" gorm:"not null"`
	OwnerType   string     `json:"owner_type" gorm:"size:16;index:idx_images_owner"`
	OwnerID     string     `json:"owner_id" gorm:"size:32;index:idx_images_owner"`
	UploadedBy  string     `json:"uploaded_by" gorm:"size:32"`
	CreatedAt   time.Time  `json:"created_at"`
	DeletedAt   *time.Time `json:"deleted_at" gorm:"index"`
}

func (Image) TableName() string {
	return "images"
}

// ImageOwnerType 图片归属类型
const (
	ImageOwnerProduct = "product"
	ImageOwnerRecipe  = "recipe"
	ImageOwnerGallery = "gallery"
)
