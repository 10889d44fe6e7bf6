package model

import (
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"attendance_backend/internals/constants"
)

// Validator instance
var validate = validator.New()

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name" validate:"required,min=1,max=100"`
	Email     string    `gorm:"size:255;uniqueIndex:uq_users_email;not null" json:"email" validate:"required,email"`
	Password  string    `gorm:"not null" json:"-" validate:"required"`
	Role      string    `gorm:"type:varchar(20);not null;default:'employee'" json:"role" validate:"oneof=employee admin"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate isi ID di sisi aplikasi (jalan di postgres maupun sqlite)
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// SetDefaultValues memastikan nilai default sebelum validasi
func (u *UserModel) SetDefaultValues() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)
	if u.Role == "" {
		u.Role = constants.RoleEmployee
	}
}

// Validate memeriksa apakah input sesuai aturan yang telah didefinisikan
func (u *UserModel) Validate() error {
	u.SetDefaultValues()

	if err := validate.Struct(u); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError mengubah error validasi menjadi format yang lebih jelas
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	errorMessages := make(map[string]string)
	for _, fieldErr := range validationErrs {
		switch fieldErr.Tag() {
		case "required":
			errorMessages[fieldErr.Field()] = fieldErr.Field() + " is required"
		case "email":
			errorMessages[fieldErr.Field()] = "invalid email format"
		case "min":
			errorMessages[fieldErr.Field()] = fieldErr.Field() + " must be at least " + fieldErr.Param() + " characters"
		case "max":
			errorMessages[fieldErr.Field()] = fieldErr.Field() + " must be at most " + fieldErr.Param() + " characters"
		case "oneof":
			errorMessages[fieldErr.Field()] = fieldErr.Field() + " must be one of " + fieldErr.Param()
		default:
			errorMessages[fieldErr.Field()] = "invalid value"
		}
	}
	return &ValidationError{Msg: formatErrorMessage(errorMessages)}
}

// ValidationError input user tidak valid (400 di controller)
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// formatErrorMessage gabung map error jadi satu baris (urutan field stabil)
func formatErrorMessage(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+errs[f])
	}
	return strings.Join(parts, "; ")
}
