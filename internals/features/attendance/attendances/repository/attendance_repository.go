// internals/features/attendance/attendances/repository/attendance_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	database "attendance_backend/internals/databases"
	attModel "attendance_backend/internals/features/attendance/attendances/model"
)

var (
	// ErrDuplicateKey: (user_id, date) sudah ada
	ErrDuplicateKey = errors.New("attendance: duplicate record for user and date")
	// ErrNotFound: record hilang di antara lookup dan update (mis. terhapus retensi)
	ErrNotFound = errors.New("attendance: record not found")
)

// Filter query admin; semua field opsional, tanggal inklusif (YYYY-MM-DD)
type Filter struct {
	DateFrom string
	DateTo   string
	UserID   *uuid.UUID
}

type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

/* ====================== READ ====================== */

// FindByUserAndDate → (nil, nil) kalau belum ada record
func (r *AttendanceRepository) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*attModel.AttendanceModel, error) {
	var rec attModel.AttendanceModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find attendance: %w", err)
	}
	return &rec, nil
}

// Query: page=0 && pageSize=0 → semua baris; selain itu halaman mulai dari 1.
func (r *AttendanceRepository) Query(ctx context.Context, f Filter, page, pageSize int) ([]attModel.AttendanceModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&attModel.AttendanceModel{})
	if f.DateFrom != "" {
		q = q.Where("date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		q = q.Where("date <= ?", f.DateTo)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	// session baru → aman dipakai ulang untuk count & find
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count attendance: %w", err)
	}

	list := make([]attModel.AttendanceModel, 0)
	find := q.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	}).Order("date DESC").Order("check_in_at DESC")

	if !(page == 0 && pageSize == 0) {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			pageSize = 10
		}
		find = find.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	if err := find.Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("query attendance: %w", err)
	}
	return list, total, nil
}

/* ====================== WRITE ====================== */

// Insert → ErrDuplicateKey kalau (user_id, date) bentrok
func (r *AttendanceRepository) Insert(ctx context.Context, rec *attModel.AttendanceModel) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return uuid.Nil, ErrDuplicateKey
		}
		return uuid.Nil, fmt.Errorf("insert attendance: %w", err)
	}
	return rec.ID, nil
}

// Update: baca-ubah-tulis dalam transaksi dengan row lock (FOR UPDATE di postgres).
// Error dari mutate membatalkan tanpa menulis apa pun.
func (r *AttendanceRepository) Update(ctx context.Context, id uuid.UUID, mutate func(*attModel.AttendanceModel) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec attModel.AttendanceModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			Take(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock attendance: %w", err)
		}

		if err := mutate(&rec); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Save(&rec).Error; err != nil {
			return fmt.Errorf("save attendance: %w", err)
		}
		return nil
	})
}

// DeleteBefore hapus permanen semua record dengan date < civilDate.
func (r *AttendanceRepository) DeleteBefore(ctx context.Context, civilDate string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("date < ?", civilDate).
		Delete(&attModel.AttendanceModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete attendance before %s: %w", civilDate, res.Error)
	}
	return res.RowsAffected, nil
}
