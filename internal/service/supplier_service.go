package service

import (
	"context"
	"fmt"
	"time"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

// SupplierService 供应商服务
type SupplierService struct {
	repo           *repository.SupplierRepository
	ingredientRepo *repository.IngredientRepository
}

// NewSupplierService 创建供应商服务
func NewSupplierService(repo *repository.SupplierRepository, ingredientRepo *repository.IngredientRepository) *SupplierService {
	return &SupplierService{repo: repo, ingredientRepo: ingredientRepo}
}

// validSupplierRating 评分为0表示未评分，其余取1到5星
func validSupplierRating(rating int) bool {
	return rating >= 0 && rating <= 5
}

// CreateSupplierRequest 创建供应商请求
type CreateSupplierRequest struct {
	Name              string                 `json:"name" binding:"required"`
	ContactPerson     string                 `json:"contact_person"`
	Email             string                 `json:"email" binding:"omitempty,email"`
	Phone             string                 `json:"phone"`
	CpfCnpj           string                 `json:"cpf_cnpj"`
	InscricaoEstadual string                 `json:"inscricao_estadual"`
	Address           map[string]interface{} `json:"address"`
	Rating            int                    `json:"rating"`
	Notes             string                 `json:"notes"`
}

// UpdateSupplierRequest 更新供应商请求
type UpdateSupplierRequest struct {
	Name              string                 `json:"name"`
	ContactPerson     string                 `json:"contact_person"`
	Email             string                 `json:"email" binding:"omitempty,email"`
	Phone             string                 `json:"phone"`
	CpfCnpj           string                 `json:"cpf_cnpj"`
	InscricaoEstadual string                 `json:"inscricao_estadual"`
	Address           map[string]interface{} `json:"address"`
	Rating            *int                   `json:"rating"`
	Notes             string                 `json:"notes"`
	IsActive          *bool                  `json:"is_active"`
}

// SupplierListResult 供应商列表结果
type SupplierListResult struct {
	Items      []entity.Supplier `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// List 获取供应商列表
func (s *SupplierService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*SupplierListResult, error) {
	suppliers, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &SupplierListResult{
		Items:      suppliers,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取供应商详情
func (s *SupplierService) Get(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find supplier: %w", err)
	}
	return supplier, nil
}

// Create 创建供应商
func (s *SupplierService) Create(ctx context.Context, userID string, req *CreateSupplierRequest) (*entity.Supplier, error) {
	if !validSupplierRating(req.Rating) {
		return nil, fmt.Errorf("rating out of range: %d", req.Rating)
	}

	now := time.Now()
	supplier := &entity.Supplier{
		Name:              req.Name,
		ContactPerson:     req.ContactPerson,
		Email:             req.Email,
		Phone:             req.Phone,
		CpfCnpj:           req.CpfCnpj,
		InscricaoEstadual: req.InscricaoEstadual,
		Address:           entity.JSONB(req.Address),
		Rating:            req.Rating,
		Notes:             req.Notes,
		IsActive:          true,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return supplier, nil
}

// Update 更新供应商
func (s *SupplierService) Update(ctx context.Context, id string, userID string, req *UpdateSupplierRequest) (*entity.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find supplier: %w", err)
	}

	if req.Name != "" {
		supplier.Name = req.Name
	}
	if req.ContactPerson != "" {
		supplier.ContactPerson = req.ContactPerson
	}
	if req.Email != "" {
		supplier.Email = req.Email
	}
	if req.Phone != "" {
		supplier.Phone = req.Phone
	}
	if req.CpfCnpj != "" {
		supplier.CpfCnpj = req.CpfCnpj
	}
	if req.InscricaoEstadual != "" {
		supplier.InscricaoEstadual = req.InscricaoEstadual
	}
	if req.Address != nil {
		supplier.Address = entity.JSONB(req.Address)
	}
	if req.Rating != nil {
		if !validSupplierRating(*req.Rating) {
			return nil, fmt.Errorf("rating out of range: %d", *req.Rating)
		}
		supplier.Rating = *req.Rating
	}
	if req.Notes != "" {
		supplier.Notes = req.Notes
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}
	supplier.UpdatedBy = userID
	supplier.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return supplier, nil
}

// Delete 删除供应商。仍有原料挂在该供应商下时拒绝删除。
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find supplier: %w", err)
	}

	count, err := s.ingredientRepo.CountBySupplier(ctx, id)
	if err != nil {
		return fmt.Errorf("count supplier ingredients: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: supplier has %d ingredients", ErrResourceInUse, count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}
