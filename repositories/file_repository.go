package repositories

import (
	"context"

	"filevault/models"

	"gorm.io/gorm"
)

type GormFileRepository struct {
	db *gorm.DB
}

func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

func (r *GormFileRepository) Create(_ context.Context, tx *gorm.DB, file *models.File) error {
	return useTx(r.db, tx).Create(file).Error
}

func (r *GormFileRepository) GetByIDAndUser(_ context.Context, tx *gorm.DB, fileID string, userID uint, withData bool) (models.File, error) {
	db := useTx(r.db, tx)
	if !withData {
		db = db.Omit("data", "thumbnail")
	}
	var file models.File
	err := db.Where("id = ? AND user_id = ?", fileID, userID).First(&file).Error
	return file, err
}

func (r *GormFileRepository) GetByID(_ context.Context, tx *gorm.DB, fileID string, withData bool) (models.File, error) {
	db := useTx(r.db, tx)
	if !withData {
		db = db.Omit("data", "thumbnail")
	}
	var file models.File
	err := db.Where("id = ?", fileID).First(&file).Error
	return file, err
}

func (r *GormFileRepository) ListByUserAndStatuses(_ context.Context, tx *gorm.DB, userID uint, statuses []models.FileStatus) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).
		Omit("data", "thumbnail").
		Where("user_id = ? AND status IN ?", userID, statuses).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

func (r *GormFileRepository) UpdateStatus(_ context.Context, tx *gorm.DB, fileID string, userID uint, from []models.FileStatus, to models.FileStatus) (int64, error) {
	result := useTx(r.db, tx).Model(&models.File{}).
		Where("id = ? AND user_id = ? AND status IN ?", fileID, userID, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *GormFileRepository) DeleteByIDAndUser(_ context.Context, tx *gorm.DB, fileID string, userID uint) (int64, error) {
	result := useTx(r.db, tx).Where("id = ? AND user_id = ?", fileID, userID).Delete(&models.File{})
	return result.RowsAffected, result.Error
}
