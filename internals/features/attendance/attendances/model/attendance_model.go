package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	userModel "attendance_backend/internals/features/users/user/model"
)

// GeoPoint koordinat check-in/check-out
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewLocation bungkus GeoPoint ke kolom JSON (nil → NULL)
func NewLocation(p *GeoPoint) *datatypes.JSONType[GeoPoint] {
	if p == nil {
		return nil
	}
	loc := datatypes.NewJSONType(*p)
	return &loc
}

// LocationOf kebalikan NewLocation
func LocationOf(col *datatypes.JSONType[GeoPoint]) *GeoPoint {
	if col == nil {
		return nil
	}
	p := col.Data()
	return &p
}

/*
AttendanceModel = satu record per (user, tanggal sipil).

	NoRecord → CheckedIn (check_in_at terisi) → CheckedOut (check_out_at terisi, final)

Uniknya (user_id, date) dijaga index uq_attendances_user_date di DB.
*/
type AttendanceModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_user_date,priority:1" json:"user_id"`
	Date   string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_attendances_user_date,priority:2;index:idx_attendances_date" json:"date"` // YYYY-MM-DD (zona sipil)

	CheckInAt       *time.Time                    `json:"check_in_at,omitempty"`
	CheckInLocation *datatypes.JSONType[GeoPoint] `json:"check_in_location,omitempty"`
	CheckInPhoto    *string                       `gorm:"type:text" json:"check_in_photo,omitempty"`

	CheckOutAt       *time.Time                    `json:"check_out_at,omitempty"`
	CheckOutLocation *datatypes.JSONType[GeoPoint] `json:"check_out_location,omitempty"`
	CheckOutPhoto    *string                       `gorm:"type:text" json:"check_out_photo,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// identitas user (preload di query admin)
	User *userModel.UserModel `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (AttendanceModel) TableName() string {
	return "attendances"
}

func (a *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *AttendanceModel) IsCheckedOut() bool {
	return a.CheckOutAt != nil
}
