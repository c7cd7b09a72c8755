package service

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/momento-cake/admin-sub007/internal/config"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

func TestNewServicesReportsMinioInitFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	cfg := &config.Config{}
	cfg.MinIO.Endpoint = "not a valid endpoint"

	svcs := NewServices(&repository.Repositories{}, nil, cfg, zap.New(core))
	if svcs == nil {
		t.Fatal("services not created")
	}

	if logs.FilterMessage("Failed to init MinIO client, image storage disabled").Len() != 1 {
		t.Errorf("minio init failure not logged, got %d entries", logs.Len())
	}
}
