package dto

import (
	"github.com/google/uuid"

	userModel "attendance_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=employee admin"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserListItem bentuk list user untuk admin
type UserListItem struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func FromModel(u *userModel.UserModel) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func ToListItems(users []userModel.UserModel) []UserListItem {
	out := make([]UserListItem, 0, len(users))
	for _, u := range users {
		out = append(out, UserListItem{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role})
	}
	return out
}
