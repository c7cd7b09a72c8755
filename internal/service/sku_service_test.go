package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/momento-cake/admin-sub007/internal/repository"
)

// memCounterStore 串行化的内存计数器
type memCounterStore struct {
	mu     sync.Mutex
	values map[string]int64
}

func newMemCounterStore() *memCounterStore {
	return &memCounterStore{values: map[string]int64{}}
}

func (s *memCounterStore) Increment(_ context.Context, scopeKey string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[scopeKey]++
	return s.values[scopeKey], nil
}

// conflictCounterStore 前 n 次调用返回版本冲突
type conflictCounterStore struct {
	mu        sync.Mutex
	conflicts int
	value     int64
}

func (s *conflictCounterStore) Increment(_ context.Context, _ string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conflicts > 0 {
		s.conflicts--
		return 0, repository.ErrVersionConflict
	}
	s.value++
	return s.value, nil
}

func TestAllocateNextSequential(t *testing.T) {
	svc := NewSKUService(newMemCounterStore())

	for want := int64(1); want <= 5; want++ {
		got, err := svc.AllocateNext(context.Background(), "cat-cakes", "sub-wedding")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("allocation %d: got %d", want, got)
		}
	}
}

func TestAllocateNextConcurrentUnique(t *testing.T) {
	svc := NewSKUService(newMemCounterStore())

	const n = 50
	results := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := svc.AllocateNext(context.Background(), "cat-cakes", "")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results <- v
		}()
	}
	wg.Wait()
	close(results)

	seen := map[int64]bool{}
	for v := range results {
		if seen[v] {
			t.Errorf("duplicate allocation: %d", v)
		}
		seen[v] = true
	}
	for v := int64(1); v <= n; v++ {
		if !seen[v] {
			t.Errorf("missing allocation: %d", v)
		}
	}
}

func TestAllocateNextIndependentScopes(t *testing.T) {
	svc := NewSKUService(newMemCounterStore())
	ctx := context.Background()

	if v, _ := svc.AllocateNext(ctx, "cat-cakes", ""); v != 1 {
		t.Errorf("first scope: got %d, want 1", v)
	}
	if v, _ := svc.AllocateNext(ctx, "cat-cakes", ""); v != 2 {
		t.Errorf("first scope: got %d, want 2", v)
	}
	// 不同作用域从1开始，互不影响
	if v, _ := svc.AllocateNext(ctx, "cat-candy", ""); v != 1 {
		t.Errorf("second scope: got %d, want 1", v)
	}
	if v, _ := svc.AllocateNext(ctx, "cat-cakes", "sub-wedding"); v != 1 {
		t.Errorf("subcategory scope: got %d, want 1", v)
	}
}

func TestAllocateNextRetriesOnConflict(t *testing.T) {
	store := &conflictCounterStore{conflicts: 3}
	svc := NewSKUService(store)

	v, err := svc.AllocateNext(context.Background(), "cat-cakes", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 1 {
		t.Errorf("got %d, want 1", v)
	}
}

func TestAllocateNextExhausted(t *testing.T) {
	store := &conflictCounterStore{conflicts: skuMaxAttempts}
	svc := NewSKUService(store)

	_, err := svc.AllocateNext(context.Background(), "cat-cakes", "")
	if !errors.Is(err, ErrAllocationExhausted) {
		t.Fatalf("got %v, want ErrAllocationExhausted", err)
	}
}

func TestAllocateNextInvalidScope(t *testing.T) {
	svc := NewSKUService(newMemCounterStore())

	_, err := svc.AllocateNext(context.Background(), "", "sub-wedding")
	if !errors.Is(err, ErrInvalidScope) {
		t.Fatalf("got %v, want ErrInvalidScope", err)
	}
}

func TestScopeKey(t *testing.T) {
	if k, _ := ScopeKey("cat1", ""); k != "cat1" {
		t.Errorf("got %q, want cat1", k)
	}
	if k, _ := ScopeKey("cat1", "sub2"); k != "cat1-sub2" {
		t.Errorf("got %q, want cat1-sub2", k)
	}
	if _, err := ScopeKey("", ""); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("got %v, want ErrInvalidScope", err)
	}
}

func TestFormatSKU(t *testing.T) {
	tests := []struct {
		category    string
		subcategory string
		sequence    int64
		want        string
	}{
		{"BOLO", "CASA", 7, "BOLO-CASA-007"},
		{"bolo", "casa", 7, "BOLO-CASA-007"},
		{"DOCE", "", 12, "DOCE-012"},
		{"DOCE", "FEST", 1000, "DOCE-FEST-1000"},
	}
	for _, tt := range tests {
		if got := FormatSKU(tt.category, tt.subcategory, tt.sequence); got != tt.want {
			t.Errorf("FormatSKU(%q, %q, %d) = %q, want %q", tt.category, tt.subcategory, tt.sequence, got, tt.want)
		}
	}
}
