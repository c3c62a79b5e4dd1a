package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BigPhill11/market-brief/app/cfg"
	"github.com/BigPhill11/market-brief/app/database"
	"github.com/BigPhill11/market-brief/app/headline"
	"github.com/BigPhill11/market-brief/app/tasks"
)

func NewHandler(pipeline *headline.Pipeline, snapshotRepo database.SnapshotRepository,
	scheduler tasks.TaskSchedulerInterface, provider string) *Handler {
	return &Handler{
		pipeline:     pipeline,
		snapshotRepo: snapshotRepo,
		scheduler:    scheduler,
		provider:     provider,
	}
}

// GetMarketHeadlines serves the plain business brief.
func (h *Handler) GetMarketHeadlines(c *gin.Context) {
	h.serveBrief(c, "")
}

// GetMarketOverview serves the market-overview variant (provider query
// "market").
func (h *Handler) GetMarketOverview(c *gin.Context) {
	h.serveBrief(c, "market")
}

// serveBrief always answers HTTP 200 with usable data. Preference order:
// fresh snapshot, live fetch, stale snapshot, compiled-in fallback.
func (h *Handler) serveBrief(c *gin.Context, query string) {
	level := headline.ParseLevel(c.Query("level"))
	now := time.Now()
	ttl := time.Duration(cfg.Get().SnapshotTTL) * time.Second

	snapshot, err := h.snapshotRepo.GetLatestSnapshot(query)
	if err != nil {
		slog.Error("Database error", "operation", "get_snapshot", "query", query, "error", err)
		snapshot = nil
	}

	if snapshot != nil && now.Sub(snapshot.FetchedAt) <= ttl {
		c.JSON(http.StatusOK, h.pipeline.Compose(snapshot.Headlines, level, ""))
		return
	}

	headlines, fetchErr := h.pipeline.FetchHeadlines(c.Request.Context(), query)

	switch {
	case fetchErr == nil && len(headlines) > 0:
		h.storeSnapshot(query, now, headlines)
		c.JSON(http.StatusOK, h.pipeline.Compose(headlines, level, ""))

	case snapshot != nil:
		// Stale snapshot beats canned fallback content.
		errMsg := ""
		if fetchErr != nil {
			slog.Warn("News fetch failed, serving stale snapshot", "query", query, "error", fetchErr)
			errMsg = headline.DegradedModeMessage
		}
		c.JSON(http.StatusOK, h.pipeline.Compose(snapshot.Headlines, level, errMsg))

	case fetchErr != nil:
		slog.Warn("News fetch failed, serving fallback dataset", "query", query, "error", fetchErr)
		c.JSON(http.StatusOK, h.pipeline.Compose(headline.FallbackHeadlines(now), level, headline.DegradedModeMessage))

	default:
		slog.Info("No finance-relevant headlines, serving fallback dataset", "query", query)
		c.JSON(http.StatusOK, h.pipeline.Compose(headline.FallbackHeadlines(now), level, ""))
	}
}

func (h *Handler) storeSnapshot(query string, fetchedAt time.Time, headlines []headline.ProcessedHeadline) {
	if err := h.snapshotRepo.SaveSnapshot(query, h.provider, fetchedAt.UTC(), headlines); err != nil {
		slog.Warn("Failed to store snapshot", "query", query, "error", err)
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"provider":  h.provider,
	}

	if count, err := h.snapshotRepo.GetSnapshotCount(); err == nil {
		health["snapshots"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"provider": h.provider,
		"version":  cfg.Get().Version,
	}

	if count, err := h.snapshotRepo.GetSnapshotCount(); err == nil {
		stats["snapshot_count"] = count
	}

	queries := map[string]interface{}{}
	for _, query := range []string{"", "market"} {
		name := query
		if name == "" {
			name = "headlines"
		}
		if snapshot, err := h.snapshotRepo.GetLatestSnapshot(query); err == nil && snapshot != nil {
			queries[name] = map[string]interface{}{
				"fetched_at": snapshot.FetchedAt.Format(time.RFC3339),
				"age":        time.Since(snapshot.FetchedAt).Truncate(time.Second).String(),
				"headlines":  len(snapshot.Headlines),
			}
		}
	}
	stats["snapshots"] = queries

	c.JSON(http.StatusOK, stats)
}

// APIRefreshBriefs enqueues refresh tasks for both brief variants.
func (h *Handler) APIRefreshBriefs(c *gin.Context) {
	enqueued := make([]gin.H, 0, 2)
	for _, query := range []string{"", "market"} {
		task := tasks.NewRefreshBriefTask(query, h.provider, h.pipeline, h.snapshotRepo)
		if err := h.scheduler.EnqueueTask(task); err != nil {
			slog.Error("Error enqueueing refresh task", "query", query, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to enqueue refresh task",
				"details": err.Error(),
			})
			return
		}
		enqueued = append(enqueued, gin.H{
			"id":    task.ID,
			"type":  task.Type,
			"query": query,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Refresh tasks enqueued successfully",
		"tasks":   enqueued,
	})
}
