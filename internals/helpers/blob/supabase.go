package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"attendance_backend/internals/helpers/logger"
	"attendance_backend/internals/helpers/metrics"
)

// SupabaseStore upload foto mentah ke bucket Supabase Storage.
type SupabaseStore struct {
	ProjectURL string
	ServiceKey string
	Bucket     string
	Client     *http.Client
}

func NewSupabaseStore(projectURL, serviceKey, bucket string) *SupabaseStore {
	return &SupabaseStore{
		ProjectURL: strings.TrimRight(projectURL, "/"),
		ServiceKey: serviceKey,
		Bucket:     bucket,
		Client:     &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *SupabaseStore) Upload(ctx context.Context, data []byte, name string) (string, error) {
	timer := prometheus.NewTimer(metrics.PhotoUploadDuration.WithLabelValues("supabase"))
	defer timer.ObserveDuration()

	if err := s.put(ctx, data, name); err != nil {
		metrics.PhotoUploadFailures.WithLabelValues("supabase").Inc()
		log := logger.WithComponent("blob")
		log.Error().Err(err).Str("object", name).Msg("❌ Upload ke Supabase gagal")
		return "", uploadErr("supabase", err)
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.ProjectURL, s.Bucket, url.PathEscape(name)), nil
}

func (s *SupabaseStore) put(ctx context.Context, data []byte, name string) error {
	if s.ProjectURL == "" || s.ServiceKey == "" {
		return fmt.Errorf("SUPABASE_PROJECT_URL atau SUPABASE_SERVICE_ROLE_KEY belum diset")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.ProjectURL, s.Bucket, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("gagal membuat request upload: %w", err)
	}

	contentType, _ := DetectImage(data)
	req.Header.Set("Authorization", "Bearer "+s.ServiceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("gagal mengirim request upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload gagal status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
