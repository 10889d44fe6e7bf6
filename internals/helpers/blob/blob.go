package blob

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrUploadFailed dibungkus oleh semua backend saat upload gagal.
var ErrUploadFailed = errors.New("photo upload failed")

// Store adalah facade upload foto absensi yang dipakai service.
type Store interface {
	Upload(ctx context.Context, data []byte, name string) (publicURL string, err error)
}

// ObjectName → "<userID>-<unixms><ext>", ext dari nama file asli (default .jpg).
func ObjectName(userID uuid.UUID, at time.Time, originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" || len(ext) > 6 {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s-%d%s", userID, at.UnixMilli(), ext)
}

// DetectImage sniff 512 byte pertama; hanya jpeg/png/webp/gif yang diterima.
func DetectImage(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	switch {
	case strings.HasPrefix(ct, "image/jpeg"),
		strings.HasPrefix(ct, "image/png"),
		strings.HasPrefix(ct, "image/webp"),
		strings.HasPrefix(ct, "image/gif"):
		return ct, true
	}
	return ct, false
}

func uploadErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUploadFailed, op, err)
}

// Mock untuk test: simpan nama yang di-upload, bisa dipaksa gagal.
type Mock struct {
	BaseURL string
	Err     error

	mu    sync.Mutex
	Names []string
}

func (m *Mock) Upload(ctx context.Context, data []byte, name string) (string, error) {
	if m.Err != nil {
		return "", uploadErr("mock", m.Err)
	}
	m.mu.Lock()
	m.Names = append(m.Names, name)
	m.mu.Unlock()
	base := m.BaseURL
	if base == "" {
		base = "http://blob.test/uploads"
	}
	return base + "/" + name, nil
}
