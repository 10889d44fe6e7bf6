package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance_backend/internals/configs"
	retRepo "attendance_backend/internals/features/attendance/retention/repository"
	"attendance_backend/internals/helpers/logger"
)

func testConfig(t *testing.T) *configs.Config {
	t.Helper()
	dir := t.TempDir()
	return &configs.Config{
		Port:                 "notaport",
		RequestTimeout:       5 * time.Second,
		DBDriver:             "sqlite",
		SQLitePath:           filepath.Join(dir, "main.db"),
		JWTSecret:            "main-secret",
		JWTTTL:               time.Hour,
		Timezone:             "UTC",
		BlobBackend:          "local",
		UploadDir:            filepath.Join(dir, "uploads"),
		PublicBaseURL:        "http://localhost:5000",
		MaxPhotoSizeKB:       512,
		PhotoMaxPixels:       64,
		PhotoWebPQuality:     80,
		RetentionMarkerStore: "bolt",
		RetentionMarkerPath:  filepath.Join(dir, "last-cleanup.db"),
	}
}

func TestRun_ListenFailureReleasesMarkerStore(t *testing.T) {
	cfg := testConfig(t)

	err := run(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server error")

	// file lock bolt harus sudah dilepas, kalau tidak Open kena timeout
	store, err := retRepo.NewBoltMarkerStore(cfg.RetentionMarkerPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestRun_InvalidScheduleReleasesMarkerStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.RetentionCron = "every month"

	err := run(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retention scheduler")

	store, err := retRepo.NewBoltMarkerStore(cfg.RetentionMarkerPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}
