package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BigPhill11/market-brief/app/cfg"
	"github.com/BigPhill11/market-brief/app/database"
	"github.com/BigPhill11/market-brief/app/headline"
	"github.com/BigPhill11/market-brief/app/news"
	"github.com/BigPhill11/market-brief/app/tasks"
)

// MockSnapshotRepository implements a simple mock for testing
type MockSnapshotRepository struct {
	snapshots map[string]*database.Snapshot
	saved     []string
	err       error
}

func (m *MockSnapshotRepository) SaveSnapshot(query, provider string, fetchedAt time.Time, headlines []headline.ProcessedHeadline) error {
	m.saved = append(m.saved, query)
	return nil
}

func (m *MockSnapshotRepository) GetLatestSnapshot(query string) (*database.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.snapshots[query], nil
}

func (m *MockSnapshotRepository) GetSnapshotCount() (int, error) {
	return len(m.snapshots), nil
}

func (m *MockSnapshotRepository) PruneSnapshots(query string, keep int) error {
	return nil
}

type MockNewsClient struct {
	articles []news.RawArticle
	err      error
}

func (m *MockNewsClient) FetchBusinessNews(_ context.Context, _ string) ([]news.RawArticle, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.articles, nil
}

func (m *MockNewsClient) Name() string { return "mock" }

type MockScheduler struct {
	enqueued []tasks.TaskInterface
	err      error
}

func (m *MockScheduler) Start() {}
func (m *MockScheduler) Stop()  {}

func (m *MockScheduler) EnqueueTask(task tasks.TaskInterface) error {
	if m.err != nil {
		return m.err
	}
	m.enqueued = append(m.enqueued, task)
	return nil
}

func setupTestConfig(t *testing.T) {
	t.Helper()

	oldArgs := os.Args
	os.Args = []string{"market-brief-test"}
	t.Cleanup(func() { os.Args = oldArgs })

	if _, err := cfg.Load(); err != nil {
		t.Fatalf("Failed to load test configuration: %v", err)
	}
}

func setupTestServer(t *testing.T, client news.Client, repo database.SnapshotRepository, scheduler tasks.TaskSchedulerInterface) *gin.Engine {
	t.Helper()

	setupTestConfig(t)
	gin.SetMode(gin.TestMode)

	pipeline := headline.NewPipeline(client, headline.DefaultVocabulary())
	handler := NewHandler(pipeline, repo, scheduler, "mock")
	return NewServer(handler)
}

func doRequest(t *testing.T, router *gin.Engine, method, path string) (*httptest.ResponseRecorder, *headline.Brief) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)

	var brief headline.Brief
	if err := json.Unmarshal(w.Body.Bytes(), &brief); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return w, &brief
}

func TestGetMarketHeadlines_LiveFetch(t *testing.T) {
	client := &MockNewsClient{
		articles: []news.RawArticle{
			{Title: "Stocks climb on earnings optimism", Description: "Major indexes finished higher after a run of better than expected quarterly results from large companies."},
		},
	}
	repo := &MockSnapshotRepository{snapshots: map[string]*database.Snapshot{}}
	router := setupTestServer(t, client, repo, &MockScheduler{})

	w, brief := doRequest(t, router, http.MethodGet, "/api/market-headlines")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if brief.Error != "" {
		t.Errorf("Expected no error message, got %q", brief.Error)
	}
	if len(brief.Headlines) != 1 {
		t.Fatalf("Expected 1 headline, got %d", len(brief.Headlines))
	}
	if brief.LastUpdated == "" {
		t.Error("Expected lastUpdated to be set")
	}
	if len(repo.saved) != 1 || repo.saved[0] != "" {
		t.Errorf("Expected live result to be snapshotted, saved=%v", repo.saved)
	}
}

func TestGetMarketHeadlines_FreshSnapshotSkipsFetch(t *testing.T) {
	client := &MockNewsClient{err: &news.ProviderError{Provider: "mock", StatusCode: 500}}
	repo := &MockSnapshotRepository{
		snapshots: map[string]*database.Snapshot{
			"": {
				Query:     "",
				Provider:  "mock",
				FetchedAt: time.Now().Add(-time.Minute),
				Headlines: []headline.ProcessedHeadline{
					{ID: "cached-1", Title: "Cached Market Story", Summary: "From the cache.", Tldr: "Quick take: cached."},
				},
			},
		},
	}
	router := setupTestServer(t, client, repo, &MockScheduler{})

	w, brief := doRequest(t, router, http.MethodGet, "/api/market-headlines")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if brief.Error != "" {
		t.Errorf("Expected no error when serving a fresh snapshot, got %q", brief.Error)
	}
	if len(brief.Headlines) != 1 || brief.Headlines[0].ID != "cached-1" {
		t.Errorf("Expected cached headlines, got %+v", brief.Headlines)
	}
}

func TestGetMarketHeadlines_StaleSnapshotOnFetchFailure(t *testing.T) {
	client := &MockNewsClient{err: &news.ProviderError{Provider: "mock", StatusCode: 503}}
	repo := &MockSnapshotRepository{
		snapshots: map[string]*database.Snapshot{
			"": {
				Query:     "",
				FetchedAt: time.Now().Add(-2 * time.Hour),
				Headlines: []headline.ProcessedHeadline{
					{ID: "stale-1", Title: "Older Market Story", Summary: "From an older snapshot.", Tldr: "Quick take: stale."},
				},
			},
		},
	}
	router := setupTestServer(t, client, repo, &MockScheduler{})

	w, brief := doRequest(t, router, http.MethodGet, "/api/market-headlines")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if brief.Error == "" {
		t.Error("Expected degraded mode message when serving a stale snapshot after a failed fetch")
	}
	if len(brief.Headlines) != 1 || brief.Headlines[0].ID != "stale-1" {
		t.Errorf("Expected stale snapshot headlines, got %+v", brief.Headlines)
	}
}

func TestGetMarketHeadlines_FallbackOnFetchFailure(t *testing.T) {
	client := &MockNewsClient{err: &news.ProviderError{Provider: "mock", StatusCode: 500}}
	repo := &MockSnapshotRepository{snapshots: map[string]*database.Snapshot{}}
	router := setupTestServer(t, client, repo, &MockScheduler{})

	w, brief := doRequest(t, router, http.MethodGet, "/api/market-headlines")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200 even on provider failure, got %d", w.Code)
	}
	if len(brief.Headlines) != 8 {
		t.Errorf("Expected 8 fallback headlines, got %d", len(brief.Headlines))
	}
	if brief.Error != headline.DegradedModeMessage {
		t.Errorf("Expected degraded mode message, got %q", brief.Error)
	}
	if len(brief.MarketRecap.Paragraphs) != 2 {
		t.Errorf("Expected recap paragraphs alongside fallback headlines, got %d", len(brief.MarketRecap.Paragraphs))
	}
}

func TestGetMarketHeadlines_FallbackOnEmptyResults(t *testing.T) {
	client := &MockNewsClient{
		articles: []news.RawArticle{{Title: "Local library extends hours"}},
	}
	repo := &MockSnapshotRepository{snapshots: map[string]*database.Snapshot{}}
	router := setupTestServer(t, client, repo, &MockScheduler{})

	_, brief := doRequest(t, router, http.MethodGet, "/api/market-headlines")

	if len(brief.Headlines) != 8 {
		t.Errorf("Expected 8 fallback headlines, got %d", len(brief.Headlines))
	}
	if brief.Error != "" {
		t.Errorf("Expected no error message for an empty batch, got %q", brief.Error)
	}
}

func TestGetMarketHeadlines_LevelParameter(t *testing.T) {
	client := &MockNewsClient{
		articles: []news.RawArticle{
			{Title: "Tech stocks surge on chip demand", Description: "Semiconductor names rallied after strong results, lifting the broader technology sector through the session."},
		},
	}
	repo := &MockSnapshotRepository{snapshots: map[string]*database.Snapshot{}}
	router := setupTestServer(t, client, repo, &MockScheduler{})

	_, beginner := doRequest(t, router, http.MethodGet, "/api/market-headlines?level=beginner")
	_, advanced := doRequest(t, router, http.MethodGet, "/api/market-headlines?level=advanced")

	if beginner.MarketRecap.Paragraphs[0] == advanced.MarketRecap.Paragraphs[0] {
		t.Error("Expected level parameter to change the recap narrative")
	}
	if beginner.MarketRecap.Sentiment != advanced.MarketRecap.Sentiment {
		t.Error("Expected level parameter to leave classification unchanged")
	}
}

func TestGetMarketOverview_UsesMarketQuery(t *testing.T) {
	client := &MockNewsClient{
		articles: []news.RawArticle{
			{Title: "Markets open higher across the board", Description: "Stocks advanced at the open with broad participation across sectors, extending the prior session's gains."},
		},
	}
	repo := &MockSnapshotRepository{snapshots: map[string]*database.Snapshot{}}
	router := setupTestServer(t, client, repo, &MockScheduler{})

	w, _ := doRequest(t, router, http.MethodGet, "/api/market-overview")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if len(repo.saved) != 1 || repo.saved[0] != "market" {
		t.Errorf("Expected overview snapshot under the market query, saved=%v", repo.saved)
	}
}

func TestGetHealth(t *testing.T) {
	repo := &MockSnapshotRepository{snapshots: map[string]*database.Snapshot{}}
	router := setupTestServer(t, &MockNewsClient{}, repo, &MockScheduler{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var health map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &health); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if health["provider"] != "mock" {
		t.Errorf("Expected provider mock, got %v", health["provider"])
	}
	if _, ok := health["timestamp"]; !ok {
		t.Error("Expected timestamp in health response")
	}
}

func TestGetStats(t *testing.T) {
	repo := &MockSnapshotRepository{
		snapshots: map[string]*database.Snapshot{
			"": {
				Query:     "",
				FetchedAt: time.Now().Add(-time.Minute),
				Headlines: []headline.ProcessedHeadline{{ID: "h-1"}},
			},
		},
	}
	router := setupTestServer(t, &MockNewsClient{}, repo, &MockScheduler{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var stats map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if stats["provider"] != "mock" {
		t.Errorf("Expected provider mock, got %v", stats["provider"])
	}

	snapshots, ok := stats["snapshots"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected snapshots map, got %T", stats["snapshots"])
	}
	if _, ok := snapshots["headlines"]; !ok {
		t.Error("Expected headlines snapshot entry in stats")
	}
}

func TestAPIRefreshBriefs(t *testing.T) {
	scheduler := &MockScheduler{}
	repo := &MockSnapshotRepository{snapshots: map[string]*database.Snapshot{}}
	router := setupTestServer(t, &MockNewsClient{}, repo, scheduler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if len(scheduler.enqueued) != 2 {
		t.Errorf("Expected 2 enqueued tasks, got %d", len(scheduler.enqueued))
	}
}

func TestCORSPreflight(t *testing.T) {
	repo := &MockSnapshotRepository{snapshots: map[string]*database.Snapshot{}}
	router := setupTestServer(t, &MockNewsClient{}, repo, &MockScheduler{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/market-headlines", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS headers on preflight response")
	}
}
