package services

import (
	"context"
	"net/http"
	"testing"

	"filevault/models"
)

func TestGetStorageQuota(t *testing.T) {
	setTestConfig(t)
	repo := newFakeUserRepo()
	repo.users[1] = &models.User{ID: 1, StorageQuota: 1000, StorageUsed: 300}
	svc := NewUserService(repo)

	out, err := svc.GetStorageQuota(context.Background(), 1)
	if err != nil {
		t.Fatalf("quota failed: %v", err)
	}
	if out.StorageQuota != 1000 || out.StorageUsed != 300 || out.AvailableSpace != 700 {
		t.Fatalf("unexpected quota output: %+v", out)
	}
}

func TestGetStorageQuotaClampsAvailable(t *testing.T) {
	setTestConfig(t)
	repo := newFakeUserRepo()
	repo.users[1] = &models.User{ID: 1, StorageQuota: 100, StorageUsed: 150}
	svc := NewUserService(repo)

	out, err := svc.GetStorageQuota(context.Background(), 1)
	if err != nil {
		t.Fatalf("quota failed: %v", err)
	}
	if out.AvailableSpace != 0 {
		t.Fatalf("available space must not go negative, got %d", out.AvailableSpace)
	}
}

func TestGetStorageQuotaUnknownUser(t *testing.T) {
	setTestConfig(t)
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.GetStorageQuota(context.Background(), 42)
	mustAppError(t, err, KindNotFound, http.StatusNotFound)
}
