package news

import (
	"context"
	"fmt"
)

// RawArticle is a provider-neutral article as received from a news source.
// Only Title is expected to be present; every other field may be empty and
// is defaulted downstream.
type RawArticle struct {
	ArticleID   string
	Title       string
	Description string
	Content     string
	Link        string
	PubDate     string
	SourceID    string
	ImageURL    string
	Keywords    []string
}

// Client fetches business news articles from a provider.
type Client interface {
	FetchBusinessNews(ctx context.Context, query string) ([]RawArticle, error)
	Name() string
}

// ProviderError indicates the news provider returned a non-success HTTP
// status or an unusable response. Callers recover from it by substituting
// cached or fallback data; it is never surfaced to end users.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s provider returned HTTP %d", e.Provider, e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
