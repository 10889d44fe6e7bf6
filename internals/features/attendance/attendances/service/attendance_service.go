// internals/features/attendance/attendances/service/attendance_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	attModel "attendance_backend/internals/features/attendance/attendances/model"
	attRepo "attendance_backend/internals/features/attendance/attendances/repository"
	"attendance_backend/internals/helpers/blob"
	"attendance_backend/internals/helpers/dbtime"
	"attendance_backend/internals/helpers/logger"
	"attendance_backend/internals/helpers/metrics"
)

// Store: bagian Day-Record Store yang dipakai lifecycle
type Store interface {
	FindByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*attModel.AttendanceModel, error)
	Insert(ctx context.Context, rec *attModel.AttendanceModel) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*attModel.AttendanceModel) error) error
}

// Outcome hasil transisi check-in / check-out
type Outcome int

const (
	OutcomeCheckedIn Outcome = iota + 1
	OutcomeAlreadyCheckedIn
	OutcomeCheckedOut
	OutcomeNoCheckInFound
	OutcomeAlreadyCheckedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCheckedIn:
		return "checked_in"
	case OutcomeAlreadyCheckedIn:
		return "already_checked_in"
	case OutcomeCheckedOut:
		return "checked_out"
	case OutcomeNoCheckInFound:
		return "no_check_in_found"
	case OutcomeAlreadyCheckedOut:
		return "already_checked_out"
	default:
		return "unknown"
	}
}

// Photo foto mentah dari request (nama asli hanya untuk ekstensi)
type Photo struct {
	Data     []byte
	Filename string
}

// Command input check-in / check-out yang sudah tervalidasi di controller
type Command struct {
	UserID   uuid.UUID
	Location *attModel.GeoPoint
	Photo    *Photo
}

type Result struct {
	Outcome  Outcome
	PhotoURL *string
	Record   *attModel.AttendanceModel
}

var errAlreadyCheckedOut = errors.New("already checked out")

type AttendanceService struct {
	store Store
	blob  blob.Store
	cal   *dbtime.Calendar
	log   zerolog.Logger
}

func NewAttendanceService(store Store, blobStore blob.Store, cal *dbtime.Calendar) *AttendanceService {
	return &AttendanceService{
		store: store,
		blob:  blobStore,
		cal:   cal,
		log:   logger.WithComponent("attendance"),
	}
}

/* ====================== CHECK-IN ====================== */

// CheckIn: NoRecord → CheckedIn. Record yang sudah ada (atau kalah race insert) → AlreadyCheckedIn.
func (s *AttendanceService) CheckIn(ctx context.Context, cmd Command) (Result, error) {
	today := s.cal.Today()

	existing, err := s.store.FindByUserAndDate(ctx, cmd.UserID, today)
	if err != nil {
		return s.fail("checkin", err)
	}
	if existing != nil {
		return s.done("checkin", Result{Outcome: OutcomeAlreadyCheckedIn, Record: existing}), nil
	}

	// upload dulu; gagal → tidak ada record yang ditulis
	photoURL, err := s.upload(ctx, cmd)
	if err != nil {
		return s.fail("checkin", err)
	}

	now := s.cal.Now()
	rec := &attModel.AttendanceModel{
		UserID:          cmd.UserID,
		Date:            today,
		CheckInAt:       &now,
		CheckInLocation: attModel.NewLocation(cmd.Location),
		CheckInPhoto:    photoURL,
	}
	if _, err := s.store.Insert(ctx, rec); err != nil {
		if errors.Is(err, attRepo.ErrDuplicateKey) {
			s.log.Info().Str("user_id", cmd.UserID.String()).Str("date", today).
				Msg("check-in race lost, treating as already checked in")
			return s.done("checkin", Result{Outcome: OutcomeAlreadyCheckedIn}), nil
		}
		return s.fail("checkin", err)
	}

	s.log.Info().Str("user_id", cmd.UserID.String()).Str("date", today).Msg("✅ checked in")
	return s.done("checkin", Result{Outcome: OutcomeCheckedIn, PhotoURL: photoURL, Record: rec}), nil
}

/* ====================== CHECK-OUT ====================== */

// CheckOut: CheckedIn → CheckedOut (final). Tanpa record → NoCheckInFound.
func (s *AttendanceService) CheckOut(ctx context.Context, cmd Command) (Result, error) {
	today := s.cal.Today()

	existing, err := s.store.FindByUserAndDate(ctx, cmd.UserID, today)
	if err != nil {
		return s.fail("checkout", err)
	}
	if existing == nil {
		return s.done("checkout", Result{Outcome: OutcomeNoCheckInFound}), nil
	}
	if existing.IsCheckedOut() {
		return s.done("checkout", Result{Outcome: OutcomeAlreadyCheckedOut, Record: existing}), nil
	}

	photoURL, err := s.upload(ctx, cmd)
	if err != nil {
		return s.fail("checkout", err)
	}

	now := s.cal.Now()
	var updated attModel.AttendanceModel
	err = s.store.Update(ctx, existing.ID, func(rec *attModel.AttendanceModel) error {
		// cek ulang di bawah lock: checkout paralel yang menang duluan
		if rec.IsCheckedOut() {
			return errAlreadyCheckedOut
		}
		rec.CheckOutAt = &now
		rec.CheckOutLocation = attModel.NewLocation(cmd.Location)
		rec.CheckOutPhoto = photoURL
		updated = *rec
		return nil
	})
	switch {
	case errors.Is(err, errAlreadyCheckedOut):
		return s.done("checkout", Result{Outcome: OutcomeAlreadyCheckedOut}), nil
	case errors.Is(err, attRepo.ErrNotFound):
		// terhapus retensi di antara lookup & update
		return s.done("checkout", Result{Outcome: OutcomeNoCheckInFound}), nil
	case err != nil:
		return s.fail("checkout", err)
	}

	if updated.CheckInAt != nil && now.Before(*updated.CheckInAt) {
		s.log.Warn().
			Str("attendance_id", updated.ID.String()).
			Time("check_in_at", *updated.CheckInAt).
			Time("check_out_at", now).
			Msg("⚠️ check-out precedes check-in")
	}

	s.log.Info().Str("user_id", cmd.UserID.String()).Str("date", today).Msg("✅ checked out")
	return s.done("checkout", Result{Outcome: OutcomeCheckedOut, PhotoURL: photoURL, Record: &updated}), nil
}

/* ====================== helpers ====================== */

func (s *AttendanceService) upload(ctx context.Context, cmd Command) (*string, error) {
	if cmd.Photo == nil || len(cmd.Photo.Data) == 0 {
		return nil, nil
	}
	if s.blob == nil {
		return nil, fmt.Errorf("%w: no blob store configured", blob.ErrUploadFailed)
	}
	name := blob.ObjectName(cmd.UserID, s.cal.Now(), cmd.Photo.Filename)
	url, err := s.blob.Upload(ctx, cmd.Photo.Data, name)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

func (s *AttendanceService) done(event string, r Result) Result {
	metrics.LifecycleEvents.WithLabelValues(event, r.Outcome.String()).Inc()
	return r
}

func (s *AttendanceService) fail(event string, err error) (Result, error) {
	metrics.LifecycleEvents.WithLabelValues(event, "error").Inc()
	return Result{}, fmt.Errorf("%s: %w", event, err)
}
