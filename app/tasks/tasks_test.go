package tasks

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/BigPhill11/market-brief/app/cfg"
	"github.com/BigPhill11/market-brief/app/database"
	"github.com/BigPhill11/market-brief/app/headline"
	"github.com/BigPhill11/market-brief/app/news"
)

// MockSnapshotRepository implements a simple mock for testing. Scheduler
// workers call it concurrently, so access is mutex-guarded.
type MockSnapshotRepository struct {
	mu            sync.Mutex
	savedQueries  []string
	prunedQueries []string
	err           error
}

var _ database.SnapshotRepository = (*MockSnapshotRepository)(nil)

func (m *MockSnapshotRepository) SaveSnapshot(query, provider string, fetchedAt time.Time, headlines []headline.ProcessedHeadline) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedQueries = append(m.savedQueries, query)
	return nil
}

func (m *MockSnapshotRepository) GetLatestSnapshot(query string) (*database.Snapshot, error) {
	return nil, nil
}

func (m *MockSnapshotRepository) GetSnapshotCount() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.savedQueries), nil
}

func (m *MockSnapshotRepository) PruneSnapshots(query string, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prunedQueries = append(m.prunedQueries, query)
	return nil
}

func (m *MockSnapshotRepository) savedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.savedQueries)
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

func setupTestConfig(t *testing.T) {
	t.Helper()

	oldArgs := os.Args
	os.Args = []string{"market-brief-test"}
	t.Cleanup(func() { os.Args = oldArgs })

	if _, err := cfg.Load(); err != nil {
		t.Fatalf("Failed to load test configuration: %v", err)
	}
}

func testPipeline(client news.Client) *headline.Pipeline {
	return headline.NewPipeline(client, headline.DefaultVocabulary())
}

func TestNewTask(t *testing.T) {
	task := NewTask(TaskTypeRefreshBrief, "market")

	if task.ID == "" {
		t.Error("Expected task ID to be generated")
	}
	if task.Type != TaskTypeRefreshBrief {
		t.Errorf("Expected type %s, got %s", TaskTypeRefreshBrief, task.Type)
	}
	if task.GetQuery() != "market" {
		t.Errorf("Expected query market, got %q", task.GetQuery())
	}
	if task.GetMaxRetries() != DefaultMaxRetries {
		t.Errorf("Expected max retries %d, got %d", DefaultMaxRetries, task.GetMaxRetries())
	}
}

func TestTask_RetryAccounting(t *testing.T) {
	task := NewTask(TaskTypeRefreshBrief, "")

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Error("Expected retries to be exhausted")
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
}

func TestRefreshBriefTask_Execute(t *testing.T) {
	client := &MockNewsClient{
		articles: []news.RawArticle{
			{Title: "Stocks gain on upbeat outlook", Description: "Equities moved higher through the session as investors responded to a batch of encouraging company updates."},
		},
	}
	repo := &MockSnapshotRepository{}
	task := NewRefreshBriefTask("", "mock", testPipeline(client), repo)

	task.Start()
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected successful execution, got error: %v", err)
	}

	if len(repo.savedQueries) != 1 {
		t.Fatalf("Expected 1 saved snapshot, got %d", len(repo.savedQueries))
	}
	if len(repo.prunedQueries) != 1 {
		t.Errorf("Expected pruning after save, got %d prune calls", len(repo.prunedQueries))
	}
}

func TestRefreshBriefTask_FetchFailure(t *testing.T) {
	client := &MockNewsClient{err: &news.ProviderError{Provider: "mock", StatusCode: 500}}
	repo := &MockSnapshotRepository{}
	task := NewRefreshBriefTask("", "mock", testPipeline(client), repo)

	if err := task.Execute(context.Background()); err == nil {
		t.Fatal("Expected error when fetch fails")
	}
	if len(repo.savedQueries) != 0 {
		t.Errorf("Expected no snapshot on fetch failure, got %d", len(repo.savedQueries))
	}
}

func TestRefreshBriefTask_EmptyResultsKeepPreviousSnapshot(t *testing.T) {
	client := &MockNewsClient{
		articles: []news.RawArticle{{Title: "Community garden expands"}},
	}
	repo := &MockSnapshotRepository{}
	task := NewRefreshBriefTask("", "mock", testPipeline(client), repo)

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error for an empty batch, got %v", err)
	}
	if len(repo.savedQueries) != 0 {
		t.Errorf("Expected no snapshot for an empty batch, got %d", len(repo.savedQueries))
	}
}

func TestRefreshBriefTask_CancelledContext(t *testing.T) {
	client := &MockNewsClient{}
	repo := &MockSnapshotRepository{}
	task := NewRefreshBriefTask("", "mock", testPipeline(client), repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := task.Execute(ctx); err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}

func TestScheduler_EnqueueAndExecute(t *testing.T) {
	setupTestConfig(t)

	client := &MockNewsClient{
		articles: []news.RawArticle{
			{Title: "Markets advance on broad gains", Description: "Stocks rose across most sectors in an unusually broad move that lifted all the major indexes by midday."},
		},
	}
	repo := &MockSnapshotRepository{}
	scheduler := NewScheduler(testPipeline(client), "mock", repo)

	scheduler.Start()

	task := NewRefreshBriefTask("market", "mock", testPipeline(client), repo)
	if err := scheduler.EnqueueTask(task); err != nil {
		t.Fatalf("Failed to enqueue task: %v", err)
	}

	// Startup enqueues refresh tasks for both brief variants, plus the
	// manually enqueued one.
	deadline := time.After(5 * time.Second)
	for repo.savedCount() < 3 {
		select {
		case <-deadline:
			t.Fatalf("Timed out waiting for tasks, saved=%d", repo.savedCount())
		case <-time.After(10 * time.Millisecond):
		}
	}

	scheduler.Stop()
}

func TestScheduler_QueueFull(t *testing.T) {
	setupTestConfig(t)

	client := &MockNewsClient{}
	repo := &MockSnapshotRepository{}
	scheduler := NewScheduler(testPipeline(client), "mock", repo)

	// Workers are not started, so the buffered queue fills up.
	var err error
	for i := 0; i < 100; i++ {
		task := NewRefreshBriefTask("", "mock", testPipeline(client), repo)
		if err = scheduler.EnqueueTask(task); err != nil {
			break
		}
	}

	if err == nil {
		t.Error("Expected queue-full error, got nil")
	}
}
