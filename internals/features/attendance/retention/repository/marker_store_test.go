package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"

	database "attendance_backend/internals/databases"
	retModel "attendance_backend/internals/features/attendance/retention/model"
)

func exerciseMarkerStore(t *testing.T, s MarkerStore) {
	t.Helper()
	ctx := context.Background()

	m, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, m)

	require.NoError(t, s.Save(ctx, retModel.Marker{Month: 1, Year: 2024}))
	m, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, &retModel.Marker{Month: 1, Year: 2024}, m)

	require.NoError(t, s.Save(ctx, retModel.Marker{Month: 12, Year: 2024}))
	m, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, &retModel.Marker{Month: 12, Year: 2024}, m)
}

func TestBoltMarkerStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last-cleanup.db")
	s, err := NewBoltMarkerStore(path)
	require.NoError(t, err)
	exerciseMarkerStore(t, s)
	require.NoError(t, s.Close())

	// durable: buka ulang file yang sama
	s, err = NewBoltMarkerStore(path)
	require.NoError(t, err)
	defer s.Close()
	m, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &retModel.Marker{Month: 12, Year: 2024}, m)
}

func TestGormMarkerStore(t *testing.T) {
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "marker.db")))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	s := NewGormMarkerStore(db)
	exerciseMarkerStore(t, s)

	var count int64
	require.NoError(t, db.Model(&retModel.RetentionMarkerModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestMemoryMarkerStore(t *testing.T) {
	exerciseMarkerStore(t, &MemoryMarkerStore{})
}
