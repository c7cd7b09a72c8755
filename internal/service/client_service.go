package service

import (
	"context"
	"fmt"
	"time"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

// ClientService 客户服务
type ClientService struct {
	repo *repository.ClientRepository
}

// NewClientService 创建客户服务
func NewClientService(repo *repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// CreateClientRequest 创建客户请求
type CreateClientRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Email    string                 `json:"email" binding:"omitempty,email"`
	Phone    string                 `json:"phone"`
	Document string                 `json:"document"`
	Address  map[string]interface{} `json:"address"`
	Notes    string                 `json:"notes"`
}

// UpdateClientRequest 更新客户请求
type UpdateClientRequest struct {
	Name     string                 `json:"name"`
	Email    string                 `json:"email" binding:"omitempty,email"`
	Phone    string                 `json:"phone"`
	Document string                 `json:"document"`
	Address  map[string]interface{} `json:"address"`
	Notes    string                 `json:"notes"`
	IsActive *bool                  `json:"is_active"`
}

// ClientListResult 客户列表结果
type ClientListResult struct {
	Items      []entity.Client `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// List 获取客户列表
func (s *ClientService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*ClientListResult, error) {
	clients, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ClientListResult{
		Items:      clients,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取客户详情
func (s *ClientService) Get(ctx context.Context, id string) (*entity.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return client, nil
}

// Create 创建客户
func (s *ClientService) Create(ctx context.Context, userID string, req *CreateClientRequest) (*entity.Client, error) {
	now := time.Now()
	client := &entity.Client{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Document:  req.Document,
		Address:   entity.JSONB(req.Address),
		Notes:     req.Notes,
		IsActive:  true,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

// Update 更新客户
func (s *ClientService) Update(ctx context.Context, id string, userID string, req *UpdateClientRequest) (*entity.Client, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}

	if req.Name != "" {
		client.Name = req.Name
	}
	if req.Email != "" {
		client.Email = req.Email
	}
	if req.Phone != "" {
		client.Phone = req.Phone
	}
	if req.Document != "" {
		client.Document = req.Document
	}
	if req.Address != nil {
		client.Address = entity.JSONB(req.Address)
	}
	if req.Notes != "" {
		client.Notes = req.Notes
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	client.UpdatedBy = userID
	client.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, client); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return client, nil
}

// Delete 删除客户
func (s *ClientService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find client: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
