package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"
)

type fakeStore struct {
	saved map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string][]byte)}
}

func (s *fakeStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	key := userID + "/" + fileName
	s.saved[key] = data
	return key, int64(len(data)), nil
}

func (s *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := s.saved[storageKey]
	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestDailyMissingRowYieldsEmptyReport(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, repo, nil, nil)

	report, err := svc.Daily(context.Background(), "user-1", "2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Date != "2024-06-01" {
		t.Errorf("unexpected date: %q", report.Date)
	}
	if len(report.Recommendations) != 0 || report.Envelope != nil || report.GeneratedAt != nil {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestDailyNormalizesStoredPayload(t *testing.T) {
	repo := NewMemoryRepo()
	created := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	repo.Put(DailyRecommendation{
		ID:        "row-1",
		UserID:    "user-1",
		Payload:   []byte(`{"suggestions":[{"task":"Batch email","recommendation":"Check email twice daily"}]}`),
		CreatedAt: created,
	})
	svc := NewService(repo, repo, nil, nil)

	report, err := svc.Daily(context.Background(), "user-1", "2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Recommendations) != 1 {
		t.Fatalf("expected 1 record, got %d", len(report.Recommendations))
	}
	if report.Recommendations[0].Title != "Batch email" {
		t.Errorf("unexpected title: %q", report.Recommendations[0].Title)
	}
	if report.GeneratedAt == nil || !report.GeneratedAt.Equal(created) {
		t.Errorf("unexpected generatedAt: %v", report.GeneratedAt)
	}
}

func TestDailyPicksNewestRowForDate(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Put(DailyRecommendation{
		ID:        "row-1",
		UserID:    "user-1",
		Payload:   []byte(`{"suggestions":[{"title":"old"}]}`),
		CreatedAt: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	})
	repo.Put(DailyRecommendation{
		ID:        "row-2",
		UserID:    "user-1",
		Payload:   []byte(`{"suggestions":[{"title":"new"}]}`),
		CreatedAt: time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC),
	})
	svc := NewService(repo, repo, nil, nil)

	report, err := svc.Daily(context.Background(), "user-1", "2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Recommendations) != 1 || report.Recommendations[0].Title != "new" {
		t.Fatalf("expected newest row, got %+v", report.Recommendations)
	}
}

func TestGenerateWithoutDispatcher(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, repo, nil, nil)
	if err := svc.Generate(context.Background(), "user-1", "2024-06-01", false, ""); err == nil {
		t.Fatal("expected error when dispatcher not configured")
	}
}

func TestExportWritesSnapshotAndRecordsIt(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Put(DailyRecommendation{
		ID:        "row-1",
		UserID:    "user-1",
		Payload:   []byte(`{"suggestions":[{"title":"x"}]}`),
		CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	})
	store := newFakeStore()
	svc := NewService(repo, repo, store, nil)

	export, err := svc.Export(context.Background(), "user-1", "2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if export.ID == "" || export.UserID != "user-1" || export.ReportDate != "2024-06-01" {
		t.Errorf("unexpected export: %+v", export)
	}
	data, ok := store.saved[export.StorageKey]
	if !ok {
		t.Fatalf("snapshot not saved under %q", export.StorageKey)
	}
	if export.SizeBytes != int64(len(data)) {
		t.Errorf("size mismatch: %d vs %d", export.SizeBytes, len(data))
	}

	var snapshot Report
	if err := json.Unmarshal(data, &snapshot); err != nil {
		t.Fatalf("snapshot not valid JSON: %v", err)
	}
	if len(snapshot.Recommendations) != 1 || snapshot.Recommendations[0].Title != "x" {
		t.Errorf("unexpected snapshot: %+v", snapshot)
	}

	stored, err := repo.GetByID(context.Background(), "user-1", export.ID)
	if err != nil {
		t.Fatalf("export not recorded: %v", err)
	}
	if stored.StorageKey != export.StorageKey {
		t.Errorf("stored key mismatch: %q vs %q", stored.StorageKey, export.StorageKey)
	}
}

func TestExportWithoutStore(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, repo, nil, nil)
	if _, err := svc.Export(context.Background(), "user-1", "2024-06-01"); err == nil {
		t.Fatal("expected error when store not configured")
	}
}

func TestOpenExportRoundTrip(t *testing.T) {
	repo := NewMemoryRepo()
	repo.Put(DailyRecommendation{
		ID:        "row-1",
		UserID:    "user-1",
		Payload:   []byte(`{"suggestions":[{"title":"x"}]}`),
		CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	})
	store := newFakeStore()
	svc := NewService(repo, repo, store, nil)

	export, err := svc.Export(context.Background(), "user-1", "2024-06-01")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	got, body, err := svc.OpenExport(context.Background(), "user-1", export.ID)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer body.Close()
	if got.ID != export.ID {
		t.Errorf("unexpected export: %+v", got)
	}
	data, _ := io.ReadAll(body)
	if len(data) == 0 {
		t.Error("expected snapshot bytes")
	}
}

func TestOpenExportUnknownID(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, repo, newFakeStore(), nil)
	if _, _, err := svc.OpenExport(context.Background(), "user-1", "missing"); err == nil {
		t.Fatal("expected error for unknown export")
	}
}
