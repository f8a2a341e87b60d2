package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"coach-backend/internal/shared/storage/object"
	"coach-backend/internal/shared/telemetry"
)

// Report is the assembled daily report view: the normalized records plus
// fetch metadata. Normalized records exist only for the response that
// produced them; nothing here is persisted.
type Report struct {
	Date            string                 `json:"date"`
	Envelope        *ReportEnvelope        `json:"envelope,omitempty"`
	Recommendations []RecommendationRecord `json:"recommendations"`
	GeneratedAt     *time.Time             `json:"generatedAt,omitempty"`
	FetchedAt       time.Time              `json:"fetchedAt"`
}

// Service fetches stored reports and runs them through the normalizer.
type Service struct {
	Repo       Repo
	Exports    ExportRepo
	Store      object.ObjectStore
	Dispatcher *Dispatcher
	now        func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo, exports ExportRepo, store object.ObjectStore, dispatcher *Dispatcher) *Service {
	return &Service{
		Repo:       repo,
		Exports:    exports,
		Store:      store,
		Dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Daily returns the normalized report for the user on the given date. A
// missing row or an unreadable payload both yield an empty report, never an
// error visible to the caller beyond infrastructure failures.
func (s *Service) Daily(ctx context.Context, userID, date string) (Report, error) {
	report := Report{
		Date:            date,
		Recommendations: []RecommendationRecord{},
		FetchedAt:       s.clock()().UTC(),
	}

	row, err := s.Repo.LatestForDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return report, nil
		}
		return Report{}, err
	}

	env, records := NormalizeJSON(row.Payload)
	report.Envelope = env
	report.Recommendations = records
	created := row.CreatedAt.UTC()
	report.GeneratedAt = &created

	telemetry.Info("report.normalized", map[string]any{
		"user_id":     userID,
		"report_date": date,
		"records":     len(records),
		"envelope":    env != nil,
	})
	return report, nil
}

// Generate dispatches a generate-report command to the webhook. The outcome
// beyond network acceptance is unknown by design.
func (s *Service) Generate(ctx context.Context, userID, date string, scheduled bool, scheduledTime string) error {
	if s.Dispatcher == nil {
		return errors.New("report generation not configured")
	}
	return s.Dispatcher.Dispatch(ctx, userID, date, scheduled, scheduledTime)
}

// Export snapshots the normalized report as JSON into the object store and
// records the export.
func (s *Service) Export(ctx context.Context, userID, date string) (ReportExport, error) {
	if s.Store == nil {
		return ReportExport{}, errors.New("object store not configured")
	}

	report, err := s.Daily(ctx, userID, date)
	if err != nil {
		return ReportExport{}, err
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return ReportExport{}, err
	}

	fileName := fmt.Sprintf("report_%s.json", date)
	key, size, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(payload))
	if err != nil {
		return ReportExport{}, fmt.Errorf("save export: %w", err)
	}

	export := ReportExport{
		ID:         uuid.NewString(),
		UserID:     userID,
		ReportDate: date,
		StorageKey: key,
		SizeBytes:  size,
		CreatedAt:  s.clock()().UTC(),
	}
	if s.Exports != nil {
		if err := s.Exports.Create(ctx, export); err != nil {
			return ReportExport{}, err
		}
	}
	return export, nil
}

// OpenExport returns a previously created export and a reader over its
// stored snapshot. The caller closes the reader.
func (s *Service) OpenExport(ctx context.Context, userID, exportID string) (ReportExport, io.ReadCloser, error) {
	if s.Exports == nil || s.Store == nil {
		return ReportExport{}, nil, errors.New("exports not configured")
	}

	export, err := s.Exports.GetByID(ctx, userID, exportID)
	if err != nil {
		return ReportExport{}, nil, err
	}

	body, err := s.Store.Open(ctx, export.StorageKey)
	if err != nil {
		return ReportExport{}, nil, fmt.Errorf("open export: %w", err)
	}
	return export, body, nil
}

func (s *Service) clock() func() time.Time {
	if s.now != nil {
		return s.now
	}
	return time.Now
}
