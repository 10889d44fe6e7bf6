package blob

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/prometheus/client_golang/prometheus"

	"attendance_backend/internals/helpers/metrics"
)

// LocalStore simpan foto di disk (UPLOAD_DIR) sebagai WebP, dilayani lewat /uploads.
type LocalStore struct {
	Dir       string
	PublicURL string // contoh: http://localhost:5000
	MaxPixels int
	Quality   float32
}

func NewLocalStore(dir, publicBaseURL string, maxPixels, quality int) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if maxPixels <= 0 {
		maxPixels = 1280
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &LocalStore{
		Dir:       dir,
		PublicURL: strings.TrimRight(publicBaseURL, "/"),
		MaxPixels: maxPixels,
		Quality:   float32(quality),
	}, nil
}

func (s *LocalStore) Upload(ctx context.Context, data []byte, name string) (string, error) {
	timer := prometheus.NewTimer(metrics.PhotoUploadDuration.WithLabelValues("local"))
	defer timer.ObserveDuration()

	if err := ctx.Err(); err != nil {
		metrics.PhotoUploadFailures.WithLabelValues("local").Inc()
		return "", uploadErr("local", err)
	}

	out, err := s.toWebP(data)
	if err != nil {
		metrics.PhotoUploadFailures.WithLabelValues("local").Inc()
		return "", uploadErr("local encode", err)
	}

	file := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)) + ".webp"
	if err := os.WriteFile(filepath.Join(s.Dir, file), out, 0o644); err != nil {
		metrics.PhotoUploadFailures.WithLabelValues("local").Inc()
		return "", uploadErr("local write", err)
	}
	return s.PublicURL + "/uploads/" + file, nil
}

// decode (jpeg/png/gif/webp) → fit ke MaxPixels → encode WebP lossy
func (s *LocalStore) toWebP(data []byte) ([]byte, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if b.Dx() > s.MaxPixels || b.Dy() > s.MaxPixels {
		img = imaging.Fit(img, s.MaxPixels, s.MaxPixels, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: s.Quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeImage(data []byte) (image.Image, error) {
	ct, ok := DetectImage(data)
	if !ok {
		return nil, fmt.Errorf("format tidak didukung: %s", ct)
	}
	if strings.HasPrefix(ct, "image/webp") {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}
