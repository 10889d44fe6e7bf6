package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	attModel "attendance_backend/internals/features/attendance/attendances/model"
	attRepo "attendance_backend/internals/features/attendance/attendances/repository"
	"attendance_backend/internals/helpers/blob"
	"attendance_backend/internals/helpers/dbtime"
)

// fakeStore: map in-memory dengan constraint unik (user, date) seperti DB
type fakeStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*attModel.AttendanceModel

	// dipanggil sekali sebelum Insert / Update (simulasi race)
	beforeInsert func()
	beforeUpdate func()
	findErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[uuid.UUID]*attModel.AttendanceModel{}}
}

func (f *fakeStore) FindByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*attModel.AttendanceModel, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.UserID == userID && r.Date == date {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Insert(ctx context.Context, rec *attModel.AttendanceModel) (uuid.UUID, error) {
	if hook := f.beforeInsert; hook != nil {
		f.beforeInsert = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.UserID == rec.UserID && r.Date == rec.Date {
			return uuid.Nil, attRepo.ErrDuplicateKey
		}
	}
	rec.ID = uuid.New()
	cp := *rec
	f.rows[rec.ID] = &cp
	return rec.ID, nil
}

func (f *fakeStore) Update(ctx context.Context, id uuid.UUID, mutate func(*attModel.AttendanceModel) error) error {
	if hook := f.beforeUpdate; hook != nil {
		f.beforeUpdate = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[id]
	if !ok {
		return attRepo.ErrNotFound
	}
	cp := *r
	if err := mutate(&cp); err != nil {
		return err
	}
	f.rows[id] = &cp
	return nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

var ist = time.FixedZone("IST", dbtime.DefaultOffsetSeconds)

func localAt(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, ist)
}

type fixture struct {
	svc   *AttendanceService
	store *fakeStore
	blob  *blob.Mock
	clock *dbtime.FixedClock
}

func newFixture(at time.Time) *fixture {
	store := newFakeStore()
	mock := &blob.Mock{}
	clock := &dbtime.FixedClock{At: at}
	cal := dbtime.NewCalendar(ist, clock)
	return &fixture{
		svc:   NewAttendanceService(store, mock, cal),
		store: store,
		blob:  mock,
		clock: clock,
	}
}

func cmd(user uuid.UUID) Command {
	return Command{
		UserID:   user,
		Location: &attModel.GeoPoint{Lat: 12.9, Lon: 77.6},
		Photo:    &Photo{Data: []byte("jpeg-bytes"), Filename: "selfie.jpg"},
	}
}

func TestCheckIn_Idempotent(t *testing.T) {
	fx := newFixture(localAt(2024, 1, 15, 9, 0))
	ctx := context.Background()
	user := uuid.New()

	res, err := fx.svc.CheckIn(ctx, cmd(user))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedIn, res.Outcome)
	require.NotNil(t, res.PhotoURL)
	assert.Contains(t, *res.PhotoURL, user.String())
	require.NotNil(t, res.Record)
	assert.Equal(t, "2024-01-15", res.Record.Date)

	fx.clock.Advance(30 * time.Minute)
	res, err = fx.svc.CheckIn(ctx, cmd(user))
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyCheckedIn, res.Outcome)
	assert.Nil(t, res.PhotoURL)

	assert.Equal(t, 1, fx.store.count())
	// foto kedua tidak di-upload
	assert.Len(t, fx.blob.Names, 1)
}

func TestCheckOut_BeforeCheckIn(t *testing.T) {
	fx := newFixture(localAt(2024, 1, 15, 9, 0))

	res, err := fx.svc.CheckOut(context.Background(), cmd(uuid.New()))
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoCheckInFound, res.Outcome)
	assert.Equal(t, 0, fx.store.count())
	assert.Empty(t, fx.blob.Names)
}

func TestCheckOut_TerminalState(t *testing.T) {
	fx := newFixture(localAt(2024, 1, 15, 9, 0))
	ctx := context.Background()
	user := uuid.New()

	_, err := fx.svc.CheckIn(ctx, cmd(user))
	require.NoError(t, err)

	fx.clock.Set(localAt(2024, 1, 15, 17, 30))
	res, err := fx.svc.CheckOut(ctx, cmd(user))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedOut, res.Outcome)
	require.NotNil(t, res.Record)
	require.NotNil(t, res.Record.CheckOutAt)
	firstOut := *res.Record.CheckOutAt
	require.NotNil(t, res.PhotoURL)

	fx.clock.Set(localAt(2024, 1, 15, 18, 0))
	res, err = fx.svc.CheckOut(ctx, cmd(user))
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyCheckedOut, res.Outcome)

	rec, err := fx.store.FindByUserAndDate(ctx, user, "2024-01-15")
	require.NoError(t, err)
	assert.True(t, firstOut.Equal(*rec.CheckOutAt))
	assert.Equal(t, "8 hrs 30 mins", *FormatRecord(fx.svc.cal, rec).Duration)
}

func TestCheckIn_CivilDayPartition(t *testing.T) {
	// 18:15Z = 23:45 IST tgl 15, 18:45Z = 00:15 IST tgl 16; sama-sama 15 Jan di UTC
	fx := newFixture(time.Date(2024, 1, 15, 18, 15, 0, 0, time.UTC))
	ctx := context.Background()
	user := uuid.New()

	res, err := fx.svc.CheckIn(ctx, cmd(user))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedIn, res.Outcome)
	assert.Equal(t, "2024-01-15", res.Record.Date)

	fx.clock.Advance(30 * time.Minute)
	res, err = fx.svc.CheckIn(ctx, cmd(user))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedIn, res.Outcome)
	assert.Equal(t, "2024-01-16", res.Record.Date)

	assert.Equal(t, 2, fx.store.count())
}

func TestCheckIn_UploadFailureWritesNothing(t *testing.T) {
	fx := newFixture(localAt(2024, 1, 15, 9, 0))
	fx.blob.Err = errors.New("bucket down")

	_, err := fx.svc.CheckIn(context.Background(), cmd(uuid.New()))
	require.Error(t, err)
	assert.ErrorIs(t, err, blob.ErrUploadFailed)
	assert.Equal(t, 0, fx.store.count())
}

func TestCheckOut_UploadFailureLeavesRecordOpen(t *testing.T) {
	fx := newFixture(localAt(2024, 1, 15, 9, 0))
	ctx := context.Background()
	user := uuid.New()

	_, err := fx.svc.CheckIn(ctx, cmd(user))
	require.NoError(t, err)

	fx.blob.Err = errors.New("bucket down")
	_, err = fx.svc.CheckOut(ctx, cmd(user))
	assert.ErrorIs(t, err, blob.ErrUploadFailed)

	rec, err := fx.store.FindByUserAndDate(ctx, user, "2024-01-15")
	require.NoError(t, err)
	assert.Nil(t, rec.CheckOutAt)
}

func TestCheckIn_WithoutPhoto(t *testing.T) {
	fx := newFixture(localAt(2024, 1, 15, 9, 0))

	c := cmd(uuid.New())
	c.Photo = nil
	res, err := fx.svc.CheckIn(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCheckedIn, res.Outcome)
	assert.Nil(t, res.PhotoURL)
	assert.Empty(t, fx.blob.Names)
}

func TestCheckIn_LostInsertRaceIsAlreadyCheckedIn(t *testing.T) {
	fx := newFixture(localAt(2024, 1, 15, 9, 0))
	user := uuid.New()

	// request lain menyisipkan record antara lookup dan insert
	fx.store.beforeInsert = func() {
		at := fx.clock.Now()
		_, err := fx.store.Insert(context.Background(), &attModel.AttendanceModel{UserID: user, Date: "2024-01-15", CheckInAt: &at})
		require.NoError(t, err)
	}

	res, err := fx.svc.CheckIn(context.Background(), cmd(user))
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyCheckedIn, res.Outcome)
	assert.Equal(t, 1, fx.store.count())
}

func TestCheckOut_LostUpdateRaceIsAlreadyCheckedOut(t *testing.T) {
	fx := newFixture(localAt(2024, 1, 15, 9, 0))
	ctx := context.Background()
	user := uuid.New()

	in, err := fx.svc.CheckIn(ctx, cmd(user))
	require.NoError(t, err)
	fx.clock.Set(localAt(2024, 1, 15, 17, 0))

	winner := localAt(2024, 1, 15, 16, 59)
	fx.store.beforeUpdate = func() {
		require.NoError(t, fx.store.Update(ctx, in.Record.ID, func(r *attModel.AttendanceModel) error {
			r.CheckOutAt = &winner
			return nil
		}))
	}

	res, err := fx.svc.CheckOut(ctx, cmd(user))
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyCheckedOut, res.Outcome)

	rec, err := fx.store.FindByUserAndDate(ctx, user, "2024-01-15")
	require.NoError(t, err)
	assert.True(t, winner.Equal(*rec.CheckOutAt))
}

func TestCheckOut_RecordPurgedMidway(t *testing.T) {
	fx := newFixture(localAt(2024, 1, 15, 9, 0))
	ctx := context.Background()
	user := uuid.New()

	in, err := fx.svc.CheckIn(ctx, cmd(user))
	require.NoError(t, err)
	fx.store.beforeUpdate = func() {
		fx.store.mu.Lock()
		delete(fx.store.rows, in.Record.ID)
		fx.store.mu.Unlock()
	}

	res, err := fx.svc.CheckOut(ctx, cmd(user))
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoCheckInFound, res.Outcome)
}

func TestCheckIn_StoreErrorPropagates(t *testing.T) {
	fx := newFixture(localAt(2024, 1, 15, 9, 0))
	fx.store.findErr = errors.New("connection reset")

	_, err := fx.svc.CheckIn(context.Background(), cmd(uuid.New()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Empty(t, fx.blob.Names)
}
