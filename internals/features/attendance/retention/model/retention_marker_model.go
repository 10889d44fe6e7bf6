package model

import "time"

// Marker: bulan terakhir yang purge-nya sudah selesai
type Marker struct {
	Month int `json:"month"` // 1–12
	Year  int `json:"year"`
}

func (m Marker) Equal(month, year int) bool {
	return m.Month == month && m.Year == year
}

// RetentionMarkerModel satu baris (id=1) di tabel retention_markers
type RetentionMarkerModel struct {
	ID        int       `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Month     int       `gorm:"not null" json:"month"`
	Year      int       `gorm:"not null" json:"year"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RetentionMarkerModel) TableName() string {
	return "retention_markers"
}
