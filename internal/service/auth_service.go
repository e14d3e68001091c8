package service

import (
	"context"
	"errors"
	"fmt"

	"show-booking/internal/model"
	"show-booking/internal/repository"
	apperrors "show-booking/pkg/app_errors"
	"show-booking/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type SignupParams struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Signup(ctx context.Context, params SignupParams) (*model.User, error)
	// Login 驗證帳密；帳號不存在與密碼錯誤都回傳 ErrInvalidCredentials
	Login(ctx context.Context, username, password string) (*model.User, error)
	// EnsureAdmin 確保指定的管理員帳號存在
	EnsureAdmin(ctx context.Context, params SignupParams) (*model.User, error)
}

type AuthServiceImpl struct {
	repo       repository.UserRepository
	bcryptCost int
	// 帳號不存在時仍做一次比對，避免回應時間洩漏帳號是否存在
	dummyHash []byte
}

func NewAuthService(repo repository.UserRepository, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummyHash, _ := bcrypt.GenerateFromPassword([]byte("show-booking"), bcryptCost)
	return &AuthServiceImpl{repo: repo, bcryptCost: bcryptCost, dummyHash: dummyHash}
}

func (s *AuthServiceImpl) Signup(ctx context.Context, params SignupParams) (*model.User, error) {
	return s.createUser(ctx, params, model.RoleUser)
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthServiceImpl) EnsureAdmin(ctx context.Context, params SignupParams) (*model.User, error) {
	log := logger.WithComponent("service").With(zap.String("username", params.Username))

	existing, err := s.repo.FindByUsername(ctx, params.Username)
	if err == nil {
		if !existing.IsAdmin() {
			log.Warn("Admin username is taken by a regular user")
			return nil, apperrors.ErrUsernameExists
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	admin, err := s.createUser(ctx, params, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	log.Info("Admin user created", zap.Int("user_id", admin.ID))
	return admin, nil
}

func (s *AuthServiceImpl) createUser(ctx context.Context, params SignupParams, role model.Role) (*model.User, error) {
	// email 重複時優先回報，唯一約束仍作為最後防線
	if _, err := s.repo.FindByEmail(ctx, params.Email); err == nil {
		return nil, apperrors.ErrEmailExists
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.bcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperrors.ErrInvalidInput
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Create(ctx, &model.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
		Role:         role,
	})
}
