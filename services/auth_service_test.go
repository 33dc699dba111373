package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"filevault/config"
	"filevault/models"
	"filevault/utils"

	"gorm.io/gorm"
)

// setTestConfig installs a minimal config so the services that read the
// global config work under test.
func setTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
		Storage: config.StorageConfig{
			Mode:             "database",
			MaxFileSize:      16 << 20,
			DefaultUserQuota: 1 << 30,
		},
		Thumbnail:  config.ThumbnailConfig{Width: 200, Height: 200, Quality: 80},
		View:       config.ViewConfig{TokenTTLSeconds: 600},
		Pagination: config.PaginationConfig{DefaultPageSize: 20, MaxPageSize: 100},
	}
}

type fakeTxManager struct{}

func (m *fakeTxManager) WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeUserRepo struct {
	users     map[uint]*models.User
	nextID    uint
	addDeltas []int64
	subDeltas []int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) CountByUsername(ctx context.Context, username string) (int64, error) {
	var count int64
	for _, u := range r.users {
		if u.Username == username {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, tx *gorm.DB, username string) (models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return *u, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uint) (models.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return *u, nil
}

func (r *fakeUserRepo) AddStorageUsed(ctx context.Context, tx *gorm.DB, userID uint, delta int64) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.StorageUsed += delta
	r.addDeltas = append(r.addDeltas, delta)
	return nil
}

func (r *fakeUserRepo) SubStorageUsed(ctx context.Context, tx *gorm.DB, userID uint, delta int64) error {
	u, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.StorageUsed -= delta
	if u.StorageUsed < 0 {
		u.StorageUsed = 0
	}
	r.subDeltas = append(r.subDeltas, delta)
	return nil
}

// mustAppError asserts the error is an AppError of the expected kind and
// status.
func mustAppError(t *testing.T, err error, kind ErrorKind, httpCode int) *AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s", kind, appErr.Kind)
	}
	if appErr.HTTPCode != httpCode {
		t.Fatalf("expected http code %d, got %d", httpCode, appErr.HTTPCode)
	}
	return appErr
}

func TestRegisterAndLogin(t *testing.T) {
	setTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Password: "secret123",
		Nickname: "Alice",
		Email:    "alice@example.com",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected a user id to be assigned")
	}

	stored := repo.users[user.ID]
	if stored.Password == "secret123" {
		t.Fatalf("password must not be stored in plain text")
	}
	if stored.StorageQuota != config.AppConfig.Storage.DefaultUserQuota {
		t.Fatalf("expected default quota %d, got %d", config.AppConfig.Storage.DefaultUserQuota, stored.StorageQuota)
	}

	out, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "secret123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := utils.ParseToken(out.Token)
	if err != nil {
		t.Fatalf("token does not parse: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected token for user %d, got %d", user.ID, claims.UserID)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret123"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "other456"})
	mustAppError(t, err, KindValidation, http.StatusBadRequest)
}

func TestRegisterMissingFields(t *testing.T) {
	setTestConfig(t)
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), RegisterInput{Username: "", Password: "x"})
	mustAppError(t, err, KindValidation, http.StatusBadRequest)

	_, err = svc.Register(context.Background(), RegisterInput{Username: "bob", Password: ""})
	mustAppError(t, err, KindValidation, http.StatusBadRequest)
}

func TestLoginWrongPassword(t *testing.T) {
	setTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, err := svc.Login(context.Background(), LoginInput{Username: "alice", Password: "wrong"})
	mustAppError(t, err, KindValidation, http.StatusUnauthorized)

	// Unknown users get the same answer as wrong passwords.
	_, err = svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "secret123"})
	mustAppError(t, err, KindValidation, http.StatusUnauthorized)
}

func TestGetProfile(t *testing.T) {
	setTestConfig(t)
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Password: "secret123", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	profile, err := svc.GetProfile(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if profile.Username != "alice" || profile.Email != "alice@example.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	_, err = svc.GetProfile(context.Background(), 999)
	mustAppError(t, err, KindNotFound, http.StatusNotFound)
}
