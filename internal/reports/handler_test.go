package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func seededService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	repo.Put(DailyRecommendation{
		ID:        "row-1",
		UserID:    "user-1",
		Payload:   []byte(`{"suggestions":[{"task":"Batch email"}]}`),
		CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	})
	return NewService(repo, repo, newFakeStore(), nil), repo
}

func TestDailyHandlerReturnsReport(t *testing.T) {
	svc, _ := seededService(t)
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/daily?date=2024-06-01", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var report Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(report.Recommendations) != 1 || report.Recommendations[0].Title != "Batch email" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestDailyHandlerRejectsBadDate(t *testing.T) {
	svc, _ := seededService(t)
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/daily?date=June+1st", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "validation_error") {
		t.Fatalf("expected validation_error, got %s", w.Body.String())
	}
}

func TestGenerateHandlerDispatches(t *testing.T) {
	hits := 0
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer webhook.Close()

	repo := NewMemoryRepo()
	svc := NewService(repo, repo, nil, NewDispatcher(webhook.URL))
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/generate",
		strings.NewReader(`{"date":"2024-06-01"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	if hits != 1 {
		t.Fatalf("expected 1 webhook hit, got %d", hits)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp["dispatched"] != true || resp["date"] != "2024-06-01" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestGenerateHandlerScheduledNeedsTime(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, repo, nil, NewDispatcher("http://unused"))
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/generate",
		strings.NewReader(`{"date":"2024-06-01","scheduled":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGenerateHandlerWebhookFailure(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, repo, nil, nil)
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/generate", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "webhook_failed") {
		t.Fatalf("expected webhook_failed, got %s", w.Body.String())
	}
}

func TestExportHandlerCreatesExport(t *testing.T) {
	svc, _ := seededService(t)
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/export",
		strings.NewReader(`{"date":"2024-06-01"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp["exportId"] == "" || resp["storageKey"] == "" {
		t.Fatalf("unexpected response: %v", resp)
	}
}

func TestDownloadExportHandler(t *testing.T) {
	svc, _ := seededService(t)
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/export",
		strings.NewReader(`{"date":"2024-06-01"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("export failed: %d", w.Code)
	}
	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	exportID, _ := created["exportId"].(string)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/reports/export/"+exportID, nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}
	var snapshot Report
	if err := json.Unmarshal(w.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("snapshot not valid JSON: %v", err)
	}
}

func TestDownloadExportHandlerNotFound(t *testing.T) {
	svc, _ := seededService(t)
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/export/missing", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
