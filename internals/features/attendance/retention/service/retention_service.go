package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	retModel "attendance_backend/internals/features/attendance/retention/model"
	retRepo "attendance_backend/internals/features/attendance/retention/repository"
	"attendance_backend/internals/helpers/dbtime"
	"attendance_backend/internals/helpers/logger"
	"attendance_backend/internals/helpers/metrics"
)

const (
	ReasonInFlight    = "in_flight"
	ReasonAlreadyDone = "already_done"
)

// Deleter: hapus record absensi dengan tanggal sipil < cutoff
type Deleter interface {
	DeleteBefore(ctx context.Context, civilDate string) (int64, error)
}

type Result struct {
	Skipped bool
	Reason  string
	Cutoff  string
	Deleted int64
}

// Engine purge bulanan: sekali per bulan sipil, dijaga marker durable.
type Engine struct {
	records  Deleter
	markers  retRepo.MarkerStore
	cal      *dbtime.Calendar
	log      zerolog.Logger
	inFlight atomic.Bool
}

func NewEngine(records Deleter, markers retRepo.MarkerStore, cal *dbtime.Calendar) *Engine {
	return &Engine{
		records: records,
		markers: markers,
		cal:     cal,
		log:     logger.WithComponent("retention"),
	}
}

// RunMonthlyCleanup aman dipanggil di tiap request admin; murah kalau bulan ini sudah beres.
// Gagal → marker tidak ditulis, panggilan berikutnya mengulang purge penuh.
func (e *Engine) RunMonthlyCleanup(ctx context.Context) (Result, error) {
	if !e.inFlight.CompareAndSwap(false, true) {
		metrics.RetentionRuns.WithLabelValues(ReasonInFlight).Inc()
		return Result{Skipped: true, Reason: ReasonInFlight}, nil
	}
	defer e.inFlight.Store(false)

	cutoff, month, year := e.cal.MonthStart(e.cal.Now())

	last, err := e.markers.Load(ctx)
	if err != nil {
		metrics.RetentionRuns.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("load retention marker: %w", err)
	}
	if last != nil && last.Equal(month, year) {
		metrics.RetentionRuns.WithLabelValues(ReasonAlreadyDone).Inc()
		return Result{Skipped: true, Reason: ReasonAlreadyDone, Cutoff: cutoff}, nil
	}

	deleted, err := e.records.DeleteBefore(ctx, cutoff)
	if err != nil {
		metrics.RetentionRuns.WithLabelValues("error").Inc()
		return Result{Cutoff: cutoff}, fmt.Errorf("purge before %s: %w", cutoff, err)
	}
	metrics.RetentionDeleted.Add(float64(deleted))

	if err := e.markers.Save(ctx, retModel.Marker{Month: month, Year: year}); err != nil {
		metrics.RetentionRuns.WithLabelValues("error").Inc()
		return Result{Cutoff: cutoff, Deleted: deleted}, fmt.Errorf("save retention marker: %w", err)
	}

	metrics.RetentionRuns.WithLabelValues("purged").Inc()
	e.log.Info().Str("cutoff", cutoff).Int64("deleted", deleted).Msg("🧹 monthly cleanup done")
	return Result{Cutoff: cutoff, Deleted: deleted}, nil
}
