package headline

import (
	"context"
	"log/slog"
	"time"

	"github.com/BigPhill11/market-brief/app/news"
)

// DegradedModeMessage signals to callers that cached or fallback content
// is being served. The response is still HTTP 200 with usable data.
const DegradedModeMessage = "live news unavailable, showing fallback headlines"

// Pipeline runs the full fetch → filter → summarize → analyze chain. Each
// invocation is independent and stateless, so concurrent requests need no
// coordination.
type Pipeline struct {
	client     news.Client
	filterer   *Filterer
	summarizer *Summarizer
	analyzer   *Analyzer
	now        func() time.Time
}

func NewPipeline(client news.Client, vocab *Vocabulary) *Pipeline {
	return &Pipeline{
		client:     client,
		filterer:   NewFilterer(vocab),
		summarizer: NewSummarizer(),
		analyzer:   NewAnalyzer(vocab),
		now:        time.Now,
	}
}

// FetchHeadlines fetches from the provider and runs the map stages. Only
// provider failures propagate; every later stage is total.
func (p *Pipeline) FetchHeadlines(ctx context.Context, query string) ([]ProcessedHeadline, error) {
	articles, err := p.client.FetchBusinessNews(ctx, query)
	if err != nil {
		return nil, err
	}

	relevant := p.filterer.Run(articles)
	slog.Debug("Relevance filter applied",
		"provider", p.client.Name(),
		"fetched", len(articles),
		"relevant", len(relevant))

	return p.summarizer.Run(relevant), nil
}

// Run produces a complete Brief for one request. A provider failure or an
// empty result set degrades to the fallback dataset; no error ever escapes
// to the caller.
func (p *Pipeline) Run(ctx context.Context, query string, level Level) *Brief {
	headlines, err := p.FetchHeadlines(ctx, query)
	if err != nil {
		slog.Warn("News fetch failed, serving fallback dataset",
			"provider", p.client.Name(), "error", err)
		return p.Compose(FallbackHeadlines(p.now()), level, DegradedModeMessage)
	}

	if len(headlines) == 0 {
		slog.Info("No finance-relevant headlines, serving fallback dataset",
			"provider", p.client.Name())
		return p.Compose(FallbackHeadlines(p.now()), level, "")
	}

	return p.Compose(headlines, level, "")
}

// Compose analyzes a headline batch and wraps it into the response shape.
func (p *Pipeline) Compose(headlines []ProcessedHeadline, level Level, errMsg string) *Brief {
	return &Brief{
		Headlines:   headlines,
		MarketRecap: p.analyzer.Run(headlines, level),
		LastUpdated: p.now().UTC().Format(time.RFC3339),
		Error:       errMsg,
	}
}
