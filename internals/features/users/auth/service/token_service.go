// internals/features/users/auth/service/token_service.go
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	userModel "attendance_backend/internals/features/users/user/model"
)

// IssueAccessToken: HS256 dengan klaim id, role, name, exp
func IssueAccessToken(secret string, ttl time.Duration, user *userModel.UserModel, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("missing JWT secret")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"id":   user.ID.String(),
		"role": user.Role,
		"name": user.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
