package repositories

import (
	"context"
	"time"

	"filevault/models"

	"gorm.io/gorm"
)

type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type UserRepository interface {
	CountByUsername(ctx context.Context, username string) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (models.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uint) (models.User, error)
	AddStorageUsed(ctx context.Context, tx *gorm.DB, userID uint, delta int64) error
	SubStorageUsed(ctx context.Context, tx *gorm.DB, userID uint, delta int64) error
}

// FileRepository enforces ownership at the query level: every lookup and
// mutation matches id AND user_id, so a row that exists under another owner
// is indistinguishable from a missing one.
type FileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, file *models.File) error
	// GetByIDAndUser loads a file; the data and thumbnail blobs are omitted
	// unless withData is set.
	GetByIDAndUser(ctx context.Context, tx *gorm.DB, fileID string, userID uint, withData bool) (models.File, error)
	// GetByID skips the ownership predicate. Only the view-handle path uses
	// it: a resolved token is already proof of access.
	GetByID(ctx context.Context, tx *gorm.DB, fileID string, withData bool) (models.File, error)
	// ListByUserAndStatuses returns the owner's files in any of the given
	// statuses, newest first, without blob columns.
	ListByUserAndStatuses(ctx context.Context, tx *gorm.DB, userID uint, statuses []models.FileStatus) ([]models.File, error)
	// UpdateStatus applies a state-matched update: only a row matching id,
	// user_id and one of the expected current statuses is touched. The
	// affected-row count lets the caller tell a lost race from success.
	UpdateStatus(ctx context.Context, tx *gorm.DB, fileID string, userID uint, from []models.FileStatus, to models.FileStatus) (int64, error)
	// DeleteByIDAndUser removes the row permanently. Same ownership predicate
	// as every other mutation.
	DeleteByIDAndUser(ctx context.Context, tx *gorm.DB, fileID string, userID uint) (int64, error)
}

// ViewTokenRepository stores ephemeral view handles. Tokens live only in
// Redis with a TTL; they are never persisted and die with the session.
type ViewTokenRepository interface {
	Save(ctx context.Context, token string, fileID string, ttl time.Duration) error
	Resolve(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

type Container struct {
	TxManager  TxManager
	Users      UserRepository
	Files      FileRepository
	ViewTokens ViewTokenRepository
}
