package services

import (
	"context"
	"errors"
	"net/http"

	"filevault/models"
	"filevault/repositories"

	"gorm.io/gorm"
)

// TransitionOutput reports a favorite/unfavorite result. Already is the
// non-fatal "nothing to do" case: a second favorite click must not error and
// must not touch the row again.
type TransitionOutput struct {
	File    models.File `json:"file"`
	Already bool        `json:"already"`
}

// LifecycleService owns the status transitions. Every mutation goes through a
// state-matched update filtered on (id, user_id, expected status); zero
// affected rows is never reported as success.
type LifecycleService interface {
	Favorite(ctx context.Context, userID uint, fileID string) (TransitionOutput, error)
	Unfavorite(ctx context.Context, userID uint, fileID string) (TransitionOutput, error)
	Delete(ctx context.Context, userID uint, fileID string) (models.File, error)
	Restore(ctx context.Context, userID uint, fileID string) (models.File, error)
	PermanentDelete(ctx context.Context, userID uint, fileID string) error
}

type lifecycleService struct {
	txManager TxManager
	users     repositories.UserRepository
	files     repositories.FileRepository
}

func NewLifecycleService(txManager TxManager, users repositories.UserRepository, files repositories.FileRepository) LifecycleService {
	return &lifecycleService{txManager: txManager, users: users, files: files}
}

func (s *lifecycleService) Favorite(ctx context.Context, userID uint, fileID string) (TransitionOutput, error) {
	rows, err := s.files.UpdateStatus(ctx, nil, fileID, userID, []models.FileStatus{models.StatusActive}, models.StatusFavorite)
	if err != nil {
		return TransitionOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "收藏文件失败", err)
	}

	if rows == 0 {
		file, err := s.loadCurrent(ctx, userID, fileID)
		if err != nil {
			return TransitionOutput{}, err
		}
		if file.Status == models.StatusFavorite {
			return TransitionOutput{File: file, Already: true}, nil
		}
		return TransitionOutput{}, newAppError(http.StatusConflict, KindInvalidTransition, "回收站中的文件不能收藏", nil)
	}

	file, err := s.loadCurrent(ctx, userID, fileID)
	if err != nil {
		return TransitionOutput{}, err
	}
	return TransitionOutput{File: file}, nil
}

func (s *lifecycleService) Unfavorite(ctx context.Context, userID uint, fileID string) (TransitionOutput, error) {
	rows, err := s.files.UpdateStatus(ctx, nil, fileID, userID, []models.FileStatus{models.StatusFavorite}, models.StatusActive)
	if err != nil {
		return TransitionOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "取消收藏失败", err)
	}

	if rows == 0 {
		file, err := s.loadCurrent(ctx, userID, fileID)
		if err != nil {
			return TransitionOutput{}, err
		}
		if file.Status == models.StatusActive {
			return TransitionOutput{File: file, Already: true}, nil
		}
		return TransitionOutput{}, newAppError(http.StatusConflict, KindInvalidTransition, "回收站中的文件不能取消收藏", nil)
	}

	file, err := s.loadCurrent(ctx, userID, fileID)
	if err != nil {
		return TransitionOutput{}, err
	}
	return TransitionOutput{File: file}, nil
}

func (s *lifecycleService) Delete(ctx context.Context, userID uint, fileID string) (models.File, error) {
	from := []models.FileStatus{models.StatusActive, models.StatusFavorite}
	rows, err := s.files.UpdateStatus(ctx, nil, fileID, userID, from, models.StatusDeleted)
	if err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, KindInternal, "删除文件失败", err)
	}

	if rows == 0 {
		if _, err := s.loadCurrent(ctx, userID, fileID); err != nil {
			return models.File{}, err
		}
		return models.File{}, newAppError(http.StatusConflict, KindInvalidTransition, "文件已在回收站中", nil)
	}

	return s.loadCurrent(ctx, userID, fileID)
}

func (s *lifecycleService) Restore(ctx context.Context, userID uint, fileID string) (models.File, error) {
	// Restore always lands on ACTIVE: a favorite flag does not survive the
	// trip through the recycle bin.
	rows, err := s.files.UpdateStatus(ctx, nil, fileID, userID, []models.FileStatus{models.StatusDeleted}, models.StatusActive)
	if err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, KindInternal, "恢复文件失败", err)
	}

	if rows == 0 {
		if _, err := s.loadCurrent(ctx, userID, fileID); err != nil {
			return models.File{}, err
		}
		return models.File{}, newAppError(http.StatusConflict, KindInvalidTransition, "文件不在回收站中", nil)
	}

	return s.loadCurrent(ctx, userID, fileID)
}

func (s *lifecycleService) PermanentDelete(ctx context.Context, userID uint, fileID string) error {
	file, err := s.loadCurrent(ctx, userID, fileID)
	if err != nil {
		return err
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		rows, err := s.files.DeleteByIDAndUser(ctx, tx, fileID, userID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return gorm.ErrRecordNotFound
		}
		return s.users.SubStorageUsed(ctx, tx, userID, file.FileSize)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, KindNotFound, "文件不存在", nil)
		}
		return newAppError(http.StatusInternalServerError, KindInternal, "永久删除失败", err)
	}
	return nil
}

// loadCurrent re-reads the row after (or instead of) a transition. A missing
// row and a foreign row collapse into the same not-found error on purpose.
func (s *lifecycleService) loadCurrent(ctx context.Context, userID uint, fileID string) (models.File, error) {
	file, err := s.files.GetByIDAndUser(ctx, nil, fileID, userID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.File{}, newAppError(http.StatusNotFound, KindNotFound, "文件不存在", nil)
		}
		return models.File{}, newAppError(http.StatusInternalServerError, KindInternal, "查询文件失败", err)
	}
	return file, nil
}
