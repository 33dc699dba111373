package services

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"math"
	"net/http"
	"strings"

	"filevault/config"
	"filevault/dataurl"
	"filevault/models"
	"filevault/repositories"
	"filevault/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateFileInput struct {
	Name string
	Type string
	// Data carries the base64 data-URL payload in database storage mode.
	Data string
	// StorageKey and FileSize replace Data in s3 storage mode.
	StorageKey string
	FileSize   int64
}

type FileListOutput struct {
	Files      []models.File        `json:"files"`
	Pagination utils.PaginationData `json:"pagination"`
}

type DownloadOutput struct {
	Name     string
	MimeType string
	Data     []byte
	// URL is set instead of Data when the bytes live in object storage.
	URL string
}

type FileService interface {
	Create(ctx context.Context, userID uint, in CreateFileInput) (models.File, error)
	Get(ctx context.Context, userID uint, fileID string) (models.File, error)
	List(ctx context.Context, userID uint, statusFilter string, search string, page int, pageSize int) (FileListOutput, error)
	Download(ctx context.Context, userID uint, fileID string) (DownloadOutput, error)
	Thumbnail(ctx context.Context, userID uint, fileID string) ([]byte, error)
}

type fileService struct {
	txManager TxManager
	users     repositories.UserRepository
	files     repositories.FileRepository
	storage   ObjectStorageService
}

func NewFileService(txManager TxManager, users repositories.UserRepository, files repositories.FileRepository, storage ObjectStorageService) FileService {
	return &fileService{txManager: txManager, users: users, files: files, storage: storage}
}

func (s *fileService) Create(ctx context.Context, userID uint, in CreateFileInput) (models.File, error) {
	if !validateFileName(in.Name) {
		return models.File{}, newAppError(http.StatusBadRequest, KindValidation, "文件名不能为空且不能超过200个字符", nil)
	}
	if !isMimeTypeAllowed(in.Type) {
		return models.File{}, newAppError(http.StatusBadRequest, KindValidation, "不支持的文件类型", nil)
	}

	var data []byte
	var fileSize int64

	if config.AppConfig.Storage.Mode == "s3" {
		if in.StorageKey == "" || in.FileSize <= 0 {
			return models.File{}, newAppError(http.StatusBadRequest, KindValidation, "缺少 storage_key 或文件大小", nil)
		}
		fileSize = in.FileSize
	} else {
		// Inline storage: any client-supplied object key is ignored, otherwise
		// Download would take the object-storage branch for a row whose bytes
		// live in the data column.
		in.StorageKey = ""
		if in.Data == "" {
			return models.File{}, newAppError(http.StatusBadRequest, KindValidation, "文件内容不能为空", nil)
		}
		decoded, _, err := dataurl.Decode(in.Data)
		if err != nil {
			return models.File{}, newAppError(http.StatusBadRequest, KindInvalidEncoding, "文件内容编码无效", err)
		}
		if len(decoded) == 0 {
			return models.File{}, newAppError(http.StatusBadRequest, KindValidation, "文件内容不能为空", nil)
		}
		data = decoded
		fileSize = int64(len(decoded))
	}

	if fileSize > config.AppConfig.Storage.MaxFileSize {
		return models.File{}, newAppError(http.StatusBadRequest, KindValidation, "文件大小超出限制", nil)
	}

	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, KindInternal, "查询用户失败", err)
	}
	if user.StorageUsed+fileSize > user.StorageQuota {
		return models.File{}, newAppErrorWithData(http.StatusBadRequest, KindValidation, "存储空间不足", map[string]interface{}{
			"storage_quota":   user.StorageQuota,
			"storage_used":    user.StorageUsed,
			"available_space": user.StorageQuota - user.StorageUsed,
			"required_space":  fileSize,
		}, nil)
	}

	file := models.File{
		ID:         uuid.New().String(),
		Name:       in.Name,
		MimeType:   in.Type,
		UserID:     userID,
		Status:     models.StatusActive,
		Data:       data,
		StorageKey: in.StorageKey,
		FileSize:   fileSize,
	}

	// Best effort: a failed thumbnail never fails the upload.
	if len(data) > 0 && isThumbnailable(in.Type) {
		if thumb, thumbErr := makeThumbnail(data); thumbErr == nil {
			file.Thumbnail = thumb
		}
	}

	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.files.Create(ctx, tx, &file); err != nil {
			return err
		}
		return s.users.AddStorageUsed(ctx, tx, userID, fileSize)
	})
	if err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, KindInternal, "保存文件记录失败", err)
	}

	file.Data = nil
	file.Thumbnail = nil
	return file, nil
}

func (s *fileService) Get(ctx context.Context, userID uint, fileID string) (models.File, error) {
	file, err := s.files.GetByIDAndUser(ctx, nil, fileID, userID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.File{}, newAppError(http.StatusNotFound, KindNotFound, "文件不存在", nil)
		}
		return models.File{}, newAppError(http.StatusInternalServerError, KindInternal, "查询文件失败", err)
	}
	return file, nil
}

func (s *fileService) List(ctx context.Context, userID uint, statusFilter string, search string, page int, pageSize int) (FileListOutput, error) {
	pcfg := config.AppConfig.Pagination
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > pcfg.MaxPageSize {
		pageSize = pcfg.DefaultPageSize
	}

	statuses := statusesForFilter(statusFilter)

	files, err := s.files.ListByUserAndStatuses(ctx, nil, userID, statuses)
	if err != nil {
		return FileListOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "查询文件列表失败", err)
	}

	// Search stays an in-memory substring filter over the loaded list, the
	// same O(n) check the dashboard runs on every keystroke. Pagination is
	// applied after it so the counts describe the filtered set.
	if search != "" {
		needle := strings.ToLower(search)
		filtered := files[:0]
		for _, f := range files {
			if strings.Contains(strings.ToLower(f.Name), needle) {
				filtered = append(filtered, f)
			}
		}
		files = filtered
	}

	total := int64(len(files))
	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	start := (page - 1) * pageSize
	if start > len(files) {
		start = len(files)
	}
	end := start + pageSize
	if end > len(files) {
		end = len(files)
	}

	return FileListOutput{
		Files: files[start:end],
		Pagination: utils.PaginationData{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	}, nil
}

func (s *fileService) Download(ctx context.Context, userID uint, fileID string) (DownloadOutput, error) {
	file, err := s.files.GetByIDAndUser(ctx, nil, fileID, userID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DownloadOutput{}, newAppError(http.StatusNotFound, KindNotFound, "文件不存在", nil)
		}
		return DownloadOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "查询文件失败", err)
	}

	if file.StorageKey != "" {
		if s.storage == nil {
			return DownloadOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "对象存储未配置", nil)
		}
		url, err := s.storage.PresignDownload(ctx, file.StorageKey)
		if err != nil {
			return DownloadOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "生成下载链接失败", err)
		}
		return DownloadOutput{Name: file.Name, MimeType: file.MimeType, URL: url}, nil
	}

	return DownloadOutput{Name: file.Name, MimeType: file.MimeType, Data: file.Data}, nil
}

func (s *fileService) Thumbnail(ctx context.Context, userID uint, fileID string) ([]byte, error) {
	file, err := s.files.GetByIDAndUser(ctx, nil, fileID, userID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newAppError(http.StatusNotFound, KindNotFound, "文件不存在", nil)
		}
		return nil, newAppError(http.StatusInternalServerError, KindInternal, "查询文件失败", err)
	}
	if len(file.Thumbnail) == 0 {
		return nil, newAppError(http.StatusNotFound, KindNotFound, "缩略图不存在", nil)
	}
	return file.Thumbnail, nil
}

// statusesForFilter maps the dashboard views onto status sets. The normal
// listing includes favorited files; only the trash view shows DELETED rows.
func statusesForFilter(filter string) []models.FileStatus {
	switch strings.ToLower(filter) {
	case "favorite", "favorites":
		return []models.FileStatus{models.StatusFavorite}
	case "trash", "deleted":
		return []models.FileStatus{models.StatusDeleted}
	default:
		return []models.FileStatus{models.StatusActive, models.StatusFavorite}
	}
}

func makeThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	cfg := config.AppConfig.Thumbnail
	thumb := imaging.Thumbnail(img, cfg.Width, cfg.Height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: cfg.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
