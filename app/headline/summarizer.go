package headline

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonreiter/govader"

	"github.com/BigPhill11/market-brief/app/news"
)

const (
	// paywallPlaceholder is a literal string some providers substitute for
	// article bodies on free plans. It must never reach the frontend.
	paywallPlaceholder = "ONLY AVAILABLE IN PAID PLANS"

	defaultTitle = "Business Update"
	defaultSite  = "News Source"

	summaryMaxLen      = 300
	summaryTruncateAt  = 280
	summaryMinStopPos  = 100
	summaryMaxSents    = 4
	minSentenceLen     = 20
	minSourceTextLen   = 50
	maxMatchesPerClass = 2
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	dollarRe        = regexp.MustCompile(`\$[0-9][0-9,.]*(?:\s?(?:million|billion|trillion)|[MBT]\b)?`)
	percentRe       = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?%`)
	movementRe      = regexp.MustCompile(`(?i)(?:up|down|rose|fell|gained|lost|jumped|dropped|surged|plunged)\s+[0-9]+(?:\.[0-9]+)?%`)
)

// tldrKeywords are finance terms scanned for the key-point extraction.
var tldrKeywords = []string{
	"earnings", "revenue", "profit", "gdp", "inflation",
	"interest rate", "federal reserve", "unemployment", "dividend",
}

// jargonSubstitutions maps finance jargon to plain-language equivalents,
// applied by literal substring replacement. Longer phrases come first so
// "Federal Reserve" is rewritten before a bare "Fed" could match inside it.
var jargonSubstitutions = []struct{ from, to string }{
	{"federal reserve", "the Fed (central bank)"},
	{"interest rate", "borrowing cost"},
	{"revenue", "money earned"},
	{"gdp", "economic growth"},
	{"inflation", "rising prices"},
	{"unemployment", "joblessness"},
}

// Summarizer turns filtered raw articles into ProcessedHeadline records.
// Summary and tldr generation are deterministic functions of the article
// text; the reading level only affects downstream narrative phrasing, not
// this stage.
type Summarizer struct {
	scorer *govader.SentimentIntensityAnalyzer
	now    func() time.Time
}

func NewSummarizer() *Summarizer {
	return &Summarizer{
		scorer: govader.NewSentimentIntensityAnalyzer(),
		now:    time.Now,
	}
}

// Run maps each article to a ProcessedHeadline, defaulting every missing
// field. A malformed article never aborts the batch.
func (s *Summarizer) Run(articles []news.RawArticle) []ProcessedHeadline {
	headlines := make([]ProcessedHeadline, 0, len(articles))
	for i, article := range articles {
		headlines = append(headlines, s.process(article, i))
	}
	return headlines
}

func (s *Summarizer) process(article news.RawArticle, index int) ProcessedHeadline {
	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = defaultTitle
	}

	id := article.ArticleID
	if id == "" {
		id = fmt.Sprintf("headline-%d", index)
	}

	url := article.Link
	if url == "" {
		url = "#"
	}

	site := article.SourceID
	if site == "" {
		site = defaultSite
	}

	var image *string
	if article.ImageURL != "" {
		imageURL := article.ImageURL
		image = &imageURL
	}

	summary := s.Summarize(title, article.Description, article.Content)
	tldr := s.ExtractTldr(title, article.Description, article.Content)

	return ProcessedHeadline{
		ID:             id,
		Title:          title,
		Summary:        summary,
		Tldr:           tldr,
		URL:            url,
		PublishedDate:  s.normalizeDate(article.PubDate),
		Site:           site,
		Image:          image,
		SentimentScore: s.scorer.PolarityScores(title + ". " + summary).Compound,
	}
}

// Summarize builds a 1-4 sentence summary from the article's description or
// content, synthesizing a generic one from the title when neither is
// usable.
func (s *Summarizer) Summarize(title, description, content string) string {
	source := selectSourceText(description, content)
	if source == "" {
		return synthesizeSummary(title)
	}

	sentences := splitSentences(source)
	if len(sentences) == 0 {
		return synthesizeSummary(title)
	}
	if len(sentences) > summaryMaxSents {
		sentences = sentences[:summaryMaxSents]
	}

	summary := strings.Join(sentences, ". ")
	summary = ensureTerminalPunctuation(summary)

	if utf8.RuneCountInString(summary) > summaryMaxLen {
		summary = truncateSummary(summary)
	}

	return summary
}

// selectSourceText picks the first usable body text: non-empty, longer than
// 50 characters, and not a paywall placeholder.
func selectSourceText(description, content string) string {
	for _, candidate := range []string{description, content} {
		candidate = strings.TrimSpace(candidate)
		if len(candidate) <= minSourceTextLen {
			continue
		}
		if strings.Contains(strings.ToUpper(candidate), paywallPlaceholder) {
			continue
		}
		return candidate
	}
	return ""
}

func splitSentences(text string) []string {
	fragments := sentenceSplitRe.Split(text, -1)
	sentences := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) >= minSentenceLen {
			sentences = append(sentences, fragment)
		}
	}
	return sentences
}

// truncateSummary cuts an over-long summary at the last sentence stop past
// position 100, or hard-cuts at 280 with an ellipsis. Positions count
// runes, not bytes, so multibyte text is never split mid-character.
func truncateSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) <= summaryTruncateAt {
		return summary
	}
	head := runes[:summaryTruncateAt]
	for i := len(head) - 1; i > summaryMinStopPos; i-- {
		if head[i] == '.' {
			return string(head[:i+1])
		}
	}
	return string(head) + "..."
}

func ensureTerminalPunctuation(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	last := text[len(text)-1]
	if last != '.' && last != '!' && last != '?' {
		return text + "."
	}
	return text
}

// synthesizeSummary produces a generic 3-4 sentence summary from title
// keywords when the article body is missing, trivial, or paywalled.
func synthesizeSummary(title string) string {
	base := strings.TrimRight(strings.TrimSpace(title), ".!? ")
	if base == "" {
		base = defaultTitle
	}
	lower := strings.ToLower(base)

	switch {
	case strings.Contains(lower, "stock") || strings.Contains(lower, "share"):
		return base + ". This development is making waves in the stock market. " +
			"Investors are watching closely to see how share prices react. " +
			"Moves like this can ripple into retirement accounts and investment portfolios."
	case strings.Contains(lower, "bank") || strings.Contains(lower, "financial") ||
		strings.Contains(lower, "fed") || strings.Contains(lower, "interest rate"):
		return base + ". This story comes from the banking and financial sector. " +
			"Banks sit at the center of how money moves through the economy. " +
			"Changes here can influence loans, savings rates, and everyday financial services."
	case strings.Contains(lower, "economy") || strings.Contains(lower, "economic"):
		return base + ". This is a story about the wider economy. " +
			"Economic shifts affect jobs, prices, and how much things cost day to day. " +
			"Analysts are tracking what it could mean for future growth."
	case strings.Contains(lower, "trade") || strings.Contains(lower, "business"):
		return base + ". This business story could affect companies and their customers. " +
			"Trade and business decisions shape what products cost and where they are made. " +
			"Watch for follow-up announcements in the coming days."
	default:
		return base + ". This is a developing story in the world of finance. " +
			"It may influence markets, companies, or consumers in the days ahead. " +
			"Check back for updates as more details emerge."
	}
}

// ExtractTldr produces a one-sentence key point by scanning the combined
// title and body text for dollar amounts, percentages, directional moves,
// and finance keywords.
func (s *Summarizer) ExtractTldr(title, description, content string) string {
	body := description
	if body == "" {
		body = content
	}
	if strings.Contains(strings.ToUpper(body), paywallPlaceholder) {
		body = ""
	}
	text := title + " " + body

	matches := collectKeyPoints(text)
	if len(matches) == 0 {
		return genericTldr(title)
	}

	for i, match := range matches {
		matches[i] = simplifyJargon(match)
	}
	top := matches
	if len(top) > 2 {
		top = top[:2]
	}
	points := strings.Join(top, " and ")

	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "stock") || strings.Contains(lower, "market"):
		return ensureTerminalPunctuation(fmt.Sprintf("Quick take: the market is moving on %s", points))
	case strings.Contains(lower, "earnings") || strings.Contains(lower, "profit"):
		return ensureTerminalPunctuation(fmt.Sprintf("Quick take: company results are in focus, featuring %s", points))
	case strings.Contains(lower, "economy") || strings.Contains(lower, "gdp"):
		return ensureTerminalPunctuation(fmt.Sprintf("Quick take: the economy is in the spotlight with %s", points))
	default:
		return ensureTerminalPunctuation(fmt.Sprintf("Quick take: keep an eye on %s", points))
	}
}

// collectKeyPoints gathers up to two matches per pattern class, in class
// order: directional moves, dollar amounts, percentages, keywords. A
// percentage already embedded in a collected movement match ("5%" inside
// "up 5%") is skipped so the tldr does not repeat it.
func collectKeyPoints(text string) []string {
	var points []string

	movements := capMatches(movementRe.FindAllString(text, -1))
	points = append(points, movements...)
	points = append(points, capMatches(dollarRe.FindAllString(text, -1))...)
	for _, pct := range capMatches(percentRe.FindAllString(text, -1)) {
		if !containedInAny(movements, pct) {
			points = append(points, pct)
		}
	}

	lower := strings.ToLower(text)
	var keywordHits []string
	for _, keyword := range tldrKeywords {
		if strings.Contains(lower, keyword) {
			keywordHits = append(keywordHits, keyword)
		}
	}
	points = append(points, capMatches(keywordHits)...)

	return dedupe(points)
}

func containedInAny(matches []string, s string) bool {
	for _, match := range matches {
		if strings.Contains(match, s) {
			return true
		}
	}
	return false
}

func capMatches(matches []string) []string {
	if len(matches) > maxMatchesPerClass {
		return matches[:maxMatchesPerClass]
	}
	return matches
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		key := strings.ToLower(value)
		if !seen[key] {
			seen[key] = true
			result = append(result, value)
		}
	}
	return result
}

func simplifyJargon(text string) string {
	// Substitution happens on the lowercased form so it is insensitive to
	// the source casing.
	lower := strings.ToLower(text)
	replaced := false
	for _, sub := range jargonSubstitutions {
		if strings.Contains(lower, sub.from) {
			lower = strings.ReplaceAll(lower, sub.from, sub.to)
			replaced = true
		}
	}
	if replaced {
		return lower
	}
	return text
}

func genericTldr(title string) string {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "stock") || strings.Contains(lower, "market"):
		return "Quick take: stock market activity worth watching today."
	case strings.Contains(lower, "bank") || strings.Contains(lower, "finance"):
		return "Quick take: news from the banking and finance world."
	case strings.Contains(lower, "economy"):
		return "Quick take: a development that touches the wider economy."
	default:
		return "Quick take: a finance story to keep on your radar."
	}
}

// normalizeDate coerces provider timestamps into RFC 3339, defaulting to
// the current time when the value is absent or unparseable.
func (s *Summarizer) normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		layouts := []string{
			time.RFC3339,
			"2006-01-02 15:04:05",
			time.RFC1123Z,
			time.RFC1123,
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t.UTC().Format(time.RFC3339)
			}
		}
	}
	return s.now().UTC().Format(time.RFC3339)
}
