package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BigPhill11/market-brief/app/database"
	"github.com/BigPhill11/market-brief/app/headline"
)

// snapshotsToKeep bounds snapshot history per query so the database stays
// small; only the newest snapshot is ever served.
const snapshotsToKeep = 5

// RefreshBriefTask runs the fetch → filter → summarize stages for one
// query variant and persists the result as a snapshot. Recaps are computed
// per request, so only headlines are stored.
type RefreshBriefTask struct {
	Task
	pipeline     *headline.Pipeline
	provider     string
	snapshotRepo database.SnapshotRepository
}

func NewRefreshBriefTask(query, provider string, pipeline *headline.Pipeline, snapshotRepo database.SnapshotRepository) *RefreshBriefTask {
	return &RefreshBriefTask{
		Task:         NewTask(TaskTypeRefreshBrief, query),
		pipeline:     pipeline,
		provider:     provider,
		snapshotRepo: snapshotRepo,
	}
}

func (t *RefreshBriefTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	headlines, err := t.pipeline.FetchHeadlines(ctx, t.Query)
	if err != nil {
		return fmt.Errorf("failed to fetch headlines: %w", err)
	}

	if len(headlines) == 0 {
		slog.Debug("Refresh produced no finance-relevant headlines, keeping previous snapshot", "query", t.Query)
		return nil
	}

	if err := t.snapshotRepo.SaveSnapshot(t.Query, t.provider, time.Now().UTC(), headlines); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	if err := t.snapshotRepo.PruneSnapshots(t.Query, snapshotsToKeep); err != nil {
		slog.Warn("Failed to prune old snapshots", "query", t.Query, "error", err)
	}

	slog.Info("Task completed",
		"type", "RefreshBrief",
		"query", t.Query,
		"duration", t.GetDuration(),
		"headlines", len(headlines))

	return nil
}
