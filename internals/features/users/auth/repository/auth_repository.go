// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
	userModel "attendance_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.WithContext(ctx).Where("id = ?", userID).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(ctx context.Context, db *gorm.DB, user *userModel.UserModel) error {
	return db.WithContext(ctx).Create(user).Error
}

// ListNonAdminUsers semua user selain admin, urut nama
func ListNonAdminUsers(ctx context.Context, db *gorm.DB) ([]userModel.UserModel, error) {
	users := make([]userModel.UserModel, 0)
	err := db.WithContext(ctx).
		Select("id", "name", "email", "role").
		Where("role <> ?", constants.RoleAdmin).
		Order("name ASC").
		Find(&users).Error
	return users, err
}
