package user

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"attendance_backend/internals/features/users/auth/dto"
	authService "attendance_backend/internals/features/users/auth/service"
	"attendance_backend/internals/helpers/logger"
)

type UserSeed struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SeedUsersFromJSON: email yang sudah ada dilewati. Kembalikan jumlah user baru.
func SeedUsersFromJSON(ctx context.Context, db *gorm.DB, filePath string) (int, error) {
	log := logger.WithComponent("seed.users")
	log.Info().Str("file", filePath).Msg("📥 Membaca file user")

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var inputs []UserSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}

	created := 0
	for _, data := range inputs {
		_, err := authService.Register(ctx, db, dto.RegisterRequest{
			Name:     data.Name,
			Email:    data.Email,
			Password: data.Password,
			Role:     data.Role,
		})
		switch {
		case errors.Is(err, authService.ErrEmailTaken):
			log.Info().Str("email", data.Email).Msg("ℹ️ user sudah ada, dilewati")
		case err != nil:
			log.Error().Err(err).Str("email", data.Email).Msg("❌ gagal insert user")
		default:
			created++
			log.Info().Str("email", data.Email).Str("role", data.Role).Msg("✅ user dibuat")
		}
	}
	return created, nil
}
