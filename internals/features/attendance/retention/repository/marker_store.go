package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	bolt "go.etcd.io/bbolt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	retModel "attendance_backend/internals/features/attendance/retention/model"
)

// MarkerStore simpan RetentionMarker secara durable.
// Load → (nil, nil) kalau belum pernah ada purge yang selesai.
type MarkerStore interface {
	Load(ctx context.Context) (*retModel.Marker, error)
	Save(ctx context.Context, m retModel.Marker) error
}

/* ====================== BOLT ====================== */

var (
	bucketRetention = []byte("retention")
	keyLastCleanup  = []byte("last_cleanup")
)

// BoltMarkerStore: file bbolt kecil, bucket "retention", key "last_cleanup" (JSON {month, year})
type BoltMarkerStore struct {
	db *bolt.DB
}

func NewBoltMarkerStore(path string) (*BoltMarkerStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open marker file: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketRetention); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketRetention, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltMarkerStore{db: db}, nil
}

func (s *BoltMarkerStore) Close() error {
	return s.db.Close()
}

func (s *BoltMarkerStore) Load(ctx context.Context) (*retModel.Marker, error) {
	var m *retModel.Marker
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketRetention).Get(keyLastCleanup)
		if data == nil {
			return nil
		}
		var got retModel.Marker
		if err := sonic.Unmarshal(data, &got); err != nil {
			return fmt.Errorf("decode marker: %w", err)
		}
		m = &got
		return nil
	})
	return m, err
}

func (s *BoltMarkerStore) Save(ctx context.Context, m retModel.Marker) error {
	data, err := sonic.Marshal(m)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRetention).Put(keyLastCleanup, data)
	})
}

/* ====================== GORM ====================== */

const markerRowID = 1

// GormMarkerStore: satu baris id=1 di tabel retention_markers
type GormMarkerStore struct {
	db *gorm.DB
}

func NewGormMarkerStore(db *gorm.DB) *GormMarkerStore {
	return &GormMarkerStore{db: db}
}

func (s *GormMarkerStore) Load(ctx context.Context) (*retModel.Marker, error) {
	var row retModel.RetentionMarkerModel
	err := s.db.WithContext(ctx).Where("id = ?", markerRowID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load retention marker: %w", err)
	}
	return &retModel.Marker{Month: row.Month, Year: row.Year}, nil
}

func (s *GormMarkerStore) Save(ctx context.Context, m retModel.Marker) error {
	row := retModel.RetentionMarkerModel{ID: markerRowID, Month: m.Month, Year: m.Year}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"month", "year", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save retention marker: %w", err)
	}
	return nil
}

/* ====================== MEMORY ====================== */

// MemoryMarkerStore untuk test (tidak durable)
type MemoryMarkerStore struct {
	mu      sync.Mutex
	marker  *retModel.Marker
	SaveErr error
}

func (s *MemoryMarkerStore) Load(ctx context.Context) (*retModel.Marker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.marker == nil {
		return nil, nil
	}
	cp := *s.marker
	return &cp, nil
}

func (s *MemoryMarkerStore) Save(ctx context.Context, m retModel.Marker) error {
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marker = &m
	return nil
}
