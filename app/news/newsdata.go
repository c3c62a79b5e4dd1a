package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	// MaxArticles is the number of articles requested per fetch.
	MaxArticles = 10

	fetchTimeout = 10 * time.Second
)

// NewsDataClient fetches business-category articles from the newsdata.io
// JSON API. Single best-effort attempt per invocation: no retries, no
// caching, no rate-limit handling.
type NewsDataClient struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
}

func NewNewsDataClient(baseURL, apiKey, userAgent string) *NewsDataClient {
	return &NewsDataClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

func (c *NewsDataClient) Name() string {
	return "newsdata"
}

func (c *NewsDataClient) FetchBusinessNews(ctx context.Context, query string) ([]RawArticle, error) {
	params := url.Values{
		"apikey":   {c.apiKey},
		"category": {"business"},
		"language": {"en"},
		"country":  {"us"},
		"size":     {fmt.Sprintf("%d", MaxArticles)},
	}
	if query != "" {
		params.Set("q", query)
	}

	reqURL := c.baseURL + "/api/1/news?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: c.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: c.Name(), StatusCode: resp.StatusCode}
	}

	var raw newsDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &ProviderError{Provider: c.Name(), Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	articles := make([]RawArticle, 0, len(raw.Results))
	for _, item := range raw.Results {
		articles = append(articles, RawArticle{
			ArticleID:   item.ArticleID,
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			Link:        item.Link,
			PubDate:     item.PubDate,
			SourceID:    item.SourceID,
			ImageURL:    item.ImageURL,
			Keywords:    item.Keywords,
		})
	}

	return articles, nil
}

type newsDataResponse struct {
	Status  string           `json:"status"`
	Results []newsDataResult `json:"results"`
}

type newsDataResult struct {
	ArticleID   string   `json:"article_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Link        string   `json:"link"`
	PubDate     string   `json:"pubDate"`
	SourceID    string   `json:"source_id"`
	ImageURL    string   `json:"image_url"`
	Keywords    []string `json:"keywords"`
}
