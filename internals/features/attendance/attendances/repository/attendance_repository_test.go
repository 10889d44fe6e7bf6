package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	database "attendance_backend/internals/databases"
	attModel "attendance_backend/internals/features/attendance/attendances/model"
	userModel "attendance_backend/internals/features/users/user/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attendance.db")
	db, err := database.Open(sqlite.Open(path + "?_busy_timeout=5000"))
	require.NoError(t, err)
	database.TunePool(db, "sqlite")
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{Name: name, Email: name + "@example.com", Password: "x", Role: "employee", IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func checkIn(userID uuid.UUID, date string, at time.Time) *attModel.AttendanceModel {
	photo := "http://blob.test/" + date + ".webp"
	return &attModel.AttendanceModel{
		UserID:          userID,
		Date:            date,
		CheckInAt:       &at,
		CheckInLocation: attModel.NewLocation(&attModel.GeoPoint{Lat: 12.97, Lon: 77.59}),
		CheckInPhoto:    &photo,
	}
}

func TestInsertAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "asha")

	got, err := repo.FindByUserAndDate(ctx, u.ID, "2024-01-15")
	require.NoError(t, err)
	assert.Nil(t, got)

	at := time.Date(2024, 1, 15, 3, 30, 0, 0, time.UTC)
	id, err := repo.Insert(ctx, checkIn(u.ID, "2024-01-15", at))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	got, err = repo.FindByUserAndDate(ctx, u.ID, "2024-01-15")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	require.NotNil(t, got.CheckInAt)
	assert.True(t, at.Equal(*got.CheckInAt))
	assert.Equal(t, &attModel.GeoPoint{Lat: 12.97, Lon: 77.59}, attModel.LocationOf(got.CheckInLocation))
	assert.Nil(t, got.CheckOutAt)
	assert.Nil(t, got.CheckOutLocation)
}

func TestInsert_DuplicateKey(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "ravi")
	now := time.Now().UTC()

	_, err := repo.Insert(ctx, checkIn(u.ID, "2024-01-15", now))
	require.NoError(t, err)

	_, err = repo.Insert(ctx, checkIn(u.ID, "2024-01-15", now.Add(time.Minute)))
	assert.ErrorIs(t, err, ErrDuplicateKey)

	// tanggal lain tetap boleh
	_, err = repo.Insert(ctx, checkIn(u.ID, "2024-01-16", now))
	assert.NoError(t, err)
}

func TestInsert_ConcurrentSameDayOnlyOneWins(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	u := seedUser(t, db, "meena")

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok, dup int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Insert(context.Background(), checkIn(u.ID, "2024-02-01", time.Now().UTC()))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrDuplicateKey):
				dup++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, dup)
}

func TestUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "kiran")

	in := time.Date(2024, 1, 15, 3, 30, 0, 0, time.UTC)
	id, err := repo.Insert(ctx, checkIn(u.ID, "2024-01-15", in))
	require.NoError(t, err)

	out := in.Add(8*time.Hour + 30*time.Minute)
	err = repo.Update(ctx, id, func(rec *attModel.AttendanceModel) error {
		rec.CheckOutAt = &out
		rec.CheckOutLocation = attModel.NewLocation(&attModel.GeoPoint{Lat: 1, Lon: 2})
		return nil
	})
	require.NoError(t, err)

	got, err := repo.FindByUserAndDate(ctx, u.ID, "2024-01-15")
	require.NoError(t, err)
	require.NotNil(t, got.CheckOutAt)
	assert.True(t, out.Equal(*got.CheckOutAt))
	assert.True(t, in.Equal(*got.CheckInAt))
	assert.Equal(t, &attModel.GeoPoint{Lat: 1, Lon: 2}, attModel.LocationOf(got.CheckOutLocation))

	// error dari mutator → tidak ada yang ditulis
	stop := errors.New("stop")
	err = repo.Update(ctx, id, func(rec *attModel.AttendanceModel) error {
		later := out.Add(time.Hour)
		rec.CheckOutAt = &later
		return stop
	})
	assert.ErrorIs(t, err, stop)
	got, err = repo.FindByUserAndDate(ctx, u.ID, "2024-01-15")
	require.NoError(t, err)
	assert.True(t, out.Equal(*got.CheckOutAt))

	err = repo.Update(ctx, uuid.New(), func(*attModel.AttendanceModel) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuery_FilterSortAndPaging(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	a := seedUser(t, db, "anil")
	b := seedUser(t, db, "bina")

	base := time.Date(2024, 1, 10, 3, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		d := base.AddDate(0, 0, i)
		_, err := repo.Insert(ctx, checkIn(a.ID, d.Format("2006-01-02"), d))
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, checkIn(b.ID, "2024-01-12", base.AddDate(0, 0, 2).Add(time.Hour)))
	require.NoError(t, err)

	// semua, urut tanggal turun
	all, total, err := repo.Query(ctx, Filter{}, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	require.Len(t, all, 6)
	assert.Equal(t, "2024-01-14", all[0].Date)
	assert.Equal(t, "2024-01-10", all[5].Date)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Date, all[i].Date)
	}
	require.NotNil(t, all[0].User)
	assert.Equal(t, "anil", all[0].User.Name)
	assert.Equal(t, "anil@example.com", all[0].User.Email)

	// halaman 2 ukuran 4
	page, total, err := repo.Query(ctx, Filter{}, 2, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 6, total)
	assert.Len(t, page, 2)

	// rentang tanggal inklusif
	ranged, total, err := repo.Query(ctx, Filter{DateFrom: "2024-01-11", DateTo: "2024-01-12"}, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, ranged, 3)

	// per user
	only, total, err := repo.Query(ctx, Filter{UserID: &b.ID}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, only, 1)
	assert.Equal(t, b.ID, only[0].UserID)
}

func TestDeleteBefore(t *testing.T) {
	db := newTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	u := seedUser(t, db, "dev")
	now := time.Now().UTC()

	for _, d := range []string{"2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"} {
		_, err := repo.Insert(ctx, checkIn(u.ID, d, now))
		require.NoError(t, err)
	}

	n, err := repo.DeleteBefore(ctx, "2024-02-01")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// idempoten
	n, err = repo.DeleteBefore(ctx, "2024-02-01")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	left, total, err := repo.Query(ctx, Filter{}, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, rec := range left {
		assert.GreaterOrEqual(t, rec.Date, "2024-02-01")
	}
}
