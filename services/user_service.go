package services

import (
	"context"
	"errors"
	"net/http"

	"filevault/repositories"

	"gorm.io/gorm"
)

type StorageQuotaOutput struct {
	StorageQuota   int64 `json:"storage_quota"`
	StorageUsed    int64 `json:"storage_used"`
	AvailableSpace int64 `json:"available_space"`
}

type UserService interface {
	GetStorageQuota(ctx context.Context, userID uint) (StorageQuotaOutput, error)
}

type userService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetStorageQuota(ctx context.Context, userID uint) (StorageQuotaOutput, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StorageQuotaOutput{}, newAppError(http.StatusNotFound, KindNotFound, "user not found", nil)
		}
		return StorageQuotaOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "failed to query user", err)
	}

	available := user.StorageQuota - user.StorageUsed
	if available < 0 {
		available = 0
	}

	return StorageQuotaOutput{
		StorageQuota:   user.StorageQuota,
		StorageUsed:    user.StorageUsed,
		AvailableSpace: available,
	}, nil
}
