package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// RSSClient fetches business news from a set of RSS/Atom feeds. It serves
// as the alternate provider when no news API key is configured. Items that
// arrive without a description or content can optionally be enriched by
// fetching the article page and extracting readable text.
type RSSClient struct {
	feedURLs   []string
	userAgent  string
	httpClient *http.Client
	parser     *gofeed.Parser
	extractor  *ContentExtractor
}

func NewRSSClient(feedURLs []string, userAgent string, extractor *ContentExtractor) *RSSClient {
	return &RSSClient{
		feedURLs:   feedURLs,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: fetchTimeout},
		parser:     gofeed.NewParser(),
		extractor:  extractor,
	}
}

func (c *RSSClient) Name() string {
	return "rss"
}

func (c *RSSClient) FetchBusinessNews(ctx context.Context, query string) ([]RawArticle, error) {
	if len(c.feedURLs) == 0 {
		return nil, &ProviderError{Provider: c.Name(), Err: fmt.Errorf("no RSS feeds configured")}
	}

	var articles []RawArticle
	var lastErr error

	for _, feedURL := range c.feedURLs {
		if len(articles) >= MaxArticles {
			break
		}

		items, err := c.fetchFeed(ctx, feedURL)
		if err != nil {
			slog.Warn("Failed to fetch RSS feed", "url", feedURL, "error", err)
			lastErr = err
			continue
		}
		articles = append(articles, items...)
	}

	if len(articles) == 0 {
		if lastErr != nil {
			return nil, &ProviderError{Provider: c.Name(), Err: lastErr}
		}
		return nil, nil
	}

	if len(articles) > MaxArticles {
		articles = articles[:MaxArticles]
	}

	return articles, nil
}

func (c *RSSClient) fetchFeed(ctx context.Context, feedURL string) ([]RawArticle, error) {
	data, err := c.fetchURL(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	feed, err := c.parser.ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	site := feed.Title

	articles := make([]RawArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		articles = append(articles, c.normalizeItem(ctx, item, site))
	}

	return articles, nil
}

func (c *RSSClient) normalizeItem(ctx context.Context, item *gofeed.Item, site string) RawArticle {
	article := RawArticle{
		ArticleID:   item.GUID,
		Title:       item.Title,
		Description: item.Description,
		Content:     item.Content,
		Link:        item.Link,
		SourceID:    site,
		Keywords:    item.Categories,
	}

	if item.PublishedParsed != nil {
		article.PubDate = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else {
		article.PubDate = item.Published
	}

	if item.Image != nil {
		article.ImageURL = item.Image.URL
	}

	if article.Description == "" && article.Content == "" {
		article.Content = c.extractPageContent(ctx, article.Link)
	}

	return article
}

// extractPageContent is best-effort enrichment: any failure leaves the
// article as-is and the summarizer synthesizes from the title instead.
func (c *RSSClient) extractPageContent(ctx context.Context, link string) string {
	if c.extractor == nil || link == "" {
		return ""
	}

	data, err := c.fetchURL(ctx, link)
	if err != nil {
		slog.Debug("Failed to fetch article page", "url", link, "error", err)
		return ""
	}

	text, err := c.extractor.Run(data)
	if err != nil {
		slog.Debug("Failed to extract article content", "url", link, "error", err)
		return ""
	}

	return text
}

func (c *RSSClient) fetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
