package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	attModel "attendance_backend/internals/features/attendance/attendances/model"
	"attendance_backend/internals/helpers/dbtime"
)

// ReportUser identitas minimal user di laporan admin
type ReportUser struct {
	ID    uuid.UUID `json:"_id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// FormattedRecord satu baris laporan admin
type FormattedRecord struct {
	ID               uuid.UUID          `json:"_id"`
	User             *ReportUser        `json:"user"`
	Date             string             `json:"date"`
	CheckInTime      *string            `json:"checkInTime"`
	CheckOutTime     *string            `json:"checkOutTime"`
	CheckInLocation  *attModel.GeoPoint `json:"checkInLocation"`
	CheckOutLocation *attModel.GeoPoint `json:"checkOutLocation"`
	CheckInPhoto     *string            `json:"checkInPhoto"`
	CheckOutPhoto    *string            `json:"checkOutPhoto"`
	Duration         *string            `json:"duration"`
	DurationAnomaly  bool               `json:"durationAnomaly,omitempty"`
}

// FormatRecords ubah record mentah ke bentuk tampilan (jam & tanggal di zona sipil).
func FormatRecords(cal *dbtime.Calendar, recs []attModel.AttendanceModel) []FormattedRecord {
	out := make([]FormattedRecord, 0, len(recs))
	for i := range recs {
		out = append(out, FormatRecord(cal, &recs[i]))
	}
	return out
}

func FormatRecord(cal *dbtime.Calendar, rec *attModel.AttendanceModel) FormattedRecord {
	f := FormattedRecord{
		ID:               rec.ID,
		Date:             cal.DisplayDate(rec.Date),
		CheckInTime:      displayTime(cal, rec.CheckInAt),
		CheckOutTime:     displayTime(cal, rec.CheckOutAt),
		CheckInLocation:  attModel.LocationOf(rec.CheckInLocation),
		CheckOutLocation: attModel.LocationOf(rec.CheckOutLocation),
		CheckInPhoto:     rec.CheckInPhoto,
		CheckOutPhoto:    rec.CheckOutPhoto,
	}
	if rec.User != nil {
		f.User = &ReportUser{ID: rec.User.ID, Name: rec.User.Name, Email: rec.User.Email}
	}

	if rec.CheckInAt != nil && rec.CheckOutAt != nil {
		d := rec.CheckOutAt.Sub(*rec.CheckInAt)
		if d < 0 {
			f.DurationAnomaly = true
		} else {
			s := FormatDuration(d)
			f.Duration = &s
		}
	}
	return f
}

// FormatDuration → "8 hrs 30 mins", "1 hr 1 min", "0 hrs 0 mins" (dibulatkan ke bawah)
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%d %s %d %s", h, plural(h, "hr", "hrs"), m, plural(m, "min", "mins"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func displayTime(cal *dbtime.Calendar, t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := cal.DisplayTime(*t)
	return &s
}
