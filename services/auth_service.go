package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"filevault/config"
	"filevault/models"
	"filevault/repositories"
	"filevault/utils"

	"gorm.io/gorm"
)

type RegisterInput struct {
	Username string
	Password string
	Nickname string
	Email    string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
}

type LoginOutput struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type ProfileOutput struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Nickname     string    `json:"nickname"`
	Email        string    `json:"email"`
	StorageQuota int64     `json:"storage_quota"`
	StorageUsed  int64     `json:"storage_used"`
	CreatedAt    time.Time `json:"created_at"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (AuthUser, error)
	Login(ctx context.Context, in LoginInput) (LoginOutput, error)
	GetProfile(ctx context.Context, userID uint) (ProfileOutput, error)
}

type authService struct {
	users repositories.UserRepository
}

func NewAuthService(users repositories.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (AuthUser, error) {
	if in.Username == "" || in.Password == "" {
		return AuthUser{}, newAppError(http.StatusBadRequest, KindValidation, "username and password are required", nil)
	}

	count, err := s.users.CountByUsername(ctx, in.Username)
	if err != nil {
		return AuthUser{}, newAppError(http.StatusInternalServerError, KindInternal, "failed to check username", err)
	}
	if count > 0 {
		return AuthUser{}, newAppError(http.StatusBadRequest, KindValidation, "username already exists", nil)
	}

	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		return AuthUser{}, newAppError(http.StatusInternalServerError, KindInternal, "failed to hash password", err)
	}

	user := models.User{
		Username:     in.Username,
		Password:     hashedPassword,
		Nickname:     in.Nickname,
		Email:        in.Email,
		StorageQuota: config.AppConfig.Storage.DefaultUserQuota,
	}
	if err := s.users.Create(ctx, nil, &user); err != nil {
		return AuthUser{}, newAppError(http.StatusInternalServerError, KindInternal, "failed to create user", err)
	}

	return AuthUser{ID: user.ID, Username: user.Username, Nickname: user.Nickname, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	user, err := s.users.GetByUsername(ctx, nil, in.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginOutput{}, newAppError(http.StatusUnauthorized, KindValidation, "invalid username or password", nil)
		}
		return LoginOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "failed to query user", err)
	}

	if !utils.CheckPassword(in.Password, user.Password) {
		return LoginOutput{}, newAppError(http.StatusUnauthorized, KindValidation, "invalid username or password", nil)
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return LoginOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "failed to generate token", err)
	}

	return LoginOutput{
		Token: token,
		User:  AuthUser{ID: user.ID, Username: user.Username, Nickname: user.Nickname, Email: user.Email},
	}, nil
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (ProfileOutput, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileOutput{}, newAppError(http.StatusNotFound, KindNotFound, "user not found", nil)
		}
		return ProfileOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "failed to query user", err)
	}

	return ProfileOutput{
		ID:           user.ID,
		Username:     user.Username,
		Nickname:     user.Nickname,
		Email:        user.Email,
		StorageQuota: user.StorageQuota,
		StorageUsed:  user.StorageUsed,
		CreatedAt:    user.CreatedAt,
	}, nil
}
