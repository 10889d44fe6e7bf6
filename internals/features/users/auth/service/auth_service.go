// internals/features/users/auth/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	database "attendance_backend/internals/databases"
	"attendance_backend/internals/features/users/auth/dto"
	authRepo "attendance_backend/internals/features/users/auth/repository"
	userModel "attendance_backend/internals/features/users/user/model"
	"attendance_backend/internals/helpers/logger"
)

var (
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New(constants.MsgInvalidCredentials)
	ErrInactiveAccount    = errors.New("Account is deactivated")
)

// ========================== REGISTER ==========================
func Register(ctx context.Context, db *gorm.DB, req dto.RegisterRequest) (*userModel.UserModel, error) {
	user := userModel.UserModel{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		IsActive: true,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}

	// Hash password
	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %w", err)
	}
	user.Password = hash

	if err := authRepo.CreateUser(ctx, db, &user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log := logger.WithComponent("auth")
	log.Info().Str("email", user.Email).Str("role", user.Role).Msg("✅ user registered")
	return &user, nil
}

// ========================== LOGIN ==========================
func Login(ctx context.Context, db *gorm.DB, secret string, ttl time.Duration, req dto.LoginRequest) (*dto.LoginResponse, error) {
	log := logger.WithComponent("auth")
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := authRepo.FindUserByEmail(ctx, db, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Info().Str("email", email).Msg("❌ User not found")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !CheckPassword(user.Password, req.Password) {
		log.Info().Str("email", email).Msg("❌ Password incorrect")
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	token, err := IssueAccessToken(secret, ttl, user, time.Now())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	log.Info().Str("email", user.Email).Msg("✅ Login success")
	return &dto.LoginResponse{Token: token, User: dto.FromModel(user)}, nil
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
