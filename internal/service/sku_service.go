package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/momento-cake/admin-sub007/internal/repository"
)

// 错误定义
var (
	ErrInvalidScope        = errors.New("invalid sku scope")
	ErrAllocationExhausted = errors.New("sku allocation retries exhausted")
)

const (
	skuMaxAttempts  = 5
	skuRetryBackoff = 10 * time.Millisecond
)

// SKUCounterStore SKU计数器接口
type SKUCounterStore interface {
	Increment(ctx context.Context, scopeKey string) (int64, error)
}

// SKUService SKU序号分配服务。
// 每个作用域（类别或类别-子类别）维护独立计数器，
// 计数器行在首次分配时惰性创建。
type SKUService struct {
	counters SKUCounterStore
}

// NewSKUService 创建SKU分配服务
func NewSKUService(counters SKUCounterStore) *SKUService {
	return &SKUService{counters: counters}
}

// ScopeKey 组合计数器作用域键
func ScopeKey(categoryID, subcategoryID string) (string, error) {
	if categoryID == "" {
		return "", ErrInvalidScope
	}
	if subcategoryID == "" {
		return categoryID, nil
	}
	return categoryID + "-" + subcategoryID, nil
}

// FormatSKU 拼装SKU编码：类别码-子类别码-三位序号
func FormatSKU(categoryCode, subcategoryCode string, sequence int64) string {
	parts := []string{strings.ToUpper(categoryCode)}
	if subcategoryCode != "" {
		parts = append(parts, strings.ToUpper(subcategoryCode))
	}
	parts = append(parts, fmt.Sprintf("%03d", sequence))
	return strings.Join(parts, "-")
}

// AllocateNext 为作用域分配下一个序号。
// 计数器采用乐观并发控制，版本冲突时退避重试，
// 重试耗尽返回 ErrAllocationExhausted。
func (s *SKUService) AllocateNext(ctx context.Context, categoryID, subcategoryID string) (int64, error) {
	scopeKey, err := ScopeKey(categoryID, subcategoryID)
	if err != nil {
		return 0, err
	}

	backoff := skuRetryBackoff
	for attempt := 1; attempt <= skuMaxAttempts; attempt++ {
		value, err := s.counters.Increment(ctx, scopeKey)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return 0, fmt.Errorf("increment sku counter: %w", err)
		}
		if attempt == skuMaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return 0, fmt.Errorf("%w: scope %s", ErrAllocationExhausted, scopeKey)
}
