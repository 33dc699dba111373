package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"filevault/config"
	"filevault/models"
	"filevault/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ViewHandleOutput struct {
	Token     string `json:"token"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}

type ViewContentOutput struct {
	Name     string
	MimeType string
	Data     []byte
}

// ViewService mints short-lived view handles for in-browser display. The
// token is the capability: resolving it needs no auth header. Handles expire
// on TTL; releasing early is the caller's job, the same contract as a browser
// object URL.
type ViewService interface {
	CreateHandle(ctx context.Context, userID uint, fileID string) (ViewHandleOutput, error)
	ResolveHandle(ctx context.Context, token string) (ViewContentOutput, error)
	ReleaseHandle(ctx context.Context, token string) error
}

type viewService struct {
	files  repositories.FileRepository
	tokens repositories.ViewTokenRepository
}

func NewViewService(files repositories.FileRepository, tokens repositories.ViewTokenRepository) ViewService {
	return &viewService{files: files, tokens: tokens}
}

func (s *viewService) CreateHandle(ctx context.Context, userID uint, fileID string) (ViewHandleOutput, error) {
	// Ownership is checked when the handle is minted; after that the token
	// alone grants read access until it expires or is released.
	file, err := s.files.GetByIDAndUser(ctx, nil, fileID, userID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ViewHandleOutput{}, newAppError(http.StatusNotFound, KindNotFound, "文件不存在", nil)
		}
		return ViewHandleOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "查询文件失败", err)
	}
	if file.Status == models.StatusDeleted {
		return ViewHandleOutput{}, newAppError(http.StatusConflict, KindInvalidTransition, "回收站中的文件不能预览", nil)
	}

	token := uuid.New().String()
	ttlSeconds := config.AppConfig.View.TokenTTLSeconds
	if err := s.tokens.Save(ctx, token, file.ID, time.Duration(ttlSeconds)*time.Second); err != nil {
		return ViewHandleOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "创建预览令牌失败", err)
	}

	return ViewHandleOutput{
		Token:     token,
		URL:       fmt.Sprintf("/api/view/%s", token),
		ExpiresIn: ttlSeconds,
	}, nil
}

func (s *viewService) ResolveHandle(ctx context.Context, token string) (ViewContentOutput, error) {
	fileID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return ViewContentOutput{}, newAppError(http.StatusNotFound, KindNotFound, "预览令牌无效或已过期", nil)
		}
		return ViewContentOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "查询预览令牌失败", err)
	}

	var file models.File
	// The token already proves access; load by id alone since the owner id is
	// not part of the handle.
	if err := s.loadByID(ctx, fileID, &file); err != nil {
		return ViewContentOutput{}, err
	}

	return ViewContentOutput{Name: file.Name, MimeType: file.MimeType, Data: file.Data}, nil
}

func (s *viewService) ReleaseHandle(ctx context.Context, token string) error {
	if err := s.tokens.Delete(ctx, token); err != nil {
		return newAppError(http.StatusInternalServerError, KindInternal, "释放预览令牌失败", err)
	}
	return nil
}

func (s *viewService) loadByID(ctx context.Context, fileID string, out *models.File) error {
	file, err := s.files.GetByID(ctx, nil, fileID, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, KindNotFound, "文件不存在", nil)
		}
		return newAppError(http.StatusInternalServerError, KindInternal, "查询文件失败", err)
	}
	*out = file
	return nil
}
