package models

import "time"

// FileStatus is the single lifecycle state of a file. DELETED is a soft
// state: the row stays queryable and restorable until permanently removed.
type FileStatus string

const (
	StatusActive   FileStatus = "ACTIVE"
	StatusFavorite FileStatus = "FAVORITE"
	StatusDeleted  FileStatus = "DELETED"
)

func (s FileStatus) Valid() bool {
	switch s {
	case StatusActive, StatusFavorite, StatusDeleted:
		return true
	}
	return false
}

// File has no gorm.DeletedAt: the status column carries the soft-delete
// state so DELETED rows remain visible to normal queries.
type File struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name       string     `gorm:"type:varchar(200);not null" json:"name"`
	MimeType   string     `gorm:"type:varchar(100);not null" json:"type"`
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	Status     FileStatus `gorm:"type:varchar(10);not null;default:ACTIVE;index" json:"status"`
	Data       []byte     `gorm:"type:longblob" json:"-"`
	Thumbnail  []byte     `gorm:"type:mediumblob" json:"-"`
	StorageKey string     `gorm:"type:varchar(255)" json:"storage_key,omitempty"`
	FileSize   int64      `gorm:"not null" json:"file_size"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
