package headline

import (
	"strings"
)

// Reading level for narrative generation. Unknown values fall back to
// beginner.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func ParseLevel(s string) Level {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelIntermediate:
		return LevelIntermediate
	case LevelAdvanced:
		return LevelAdvanced
	default:
		return LevelBeginner
	}
}

type Sector string

const (
	SectorTech       Sector = "tech"
	SectorFinance    Sector = "finance"
	SectorEnergy     Sector = "energy"
	SectorHealthcare Sector = "healthcare"
	SectorRetail     Sector = "retail"
	SectorCrypto     Sector = "crypto"
	SectorGeneral    Sector = "general"
)

// sectorPriority is the fixed classification and tie-break order. A
// headline matching multiple sector vocabularies is assigned to the first
// matching sector; a count tie between sectors resolves to the earlier one.
var sectorPriority = []Sector{
	SectorTech,
	SectorFinance,
	SectorEnergy,
	SectorHealthcare,
	SectorRetail,
	SectorCrypto,
	SectorGeneral,
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// sentimentPriority is the tie-break order for the dominant sentiment.
var sentimentPriority = []Sentiment{
	SentimentPositive,
	SentimentNegative,
	SentimentNeutral,
}

// ProcessedHeadline is one finance headline after filtering and
// summarization. Summary and Tldr are always non-empty, end with terminal
// punctuation, and never contain provider paywall placeholders.
type ProcessedHeadline struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Summary        string  `json:"summary"`
	Tldr           string  `json:"tldr"`
	URL            string  `json:"url"`
	PublishedDate  string  `json:"publishedDate"`
	Site           string  `json:"site"`
	Image          *string `json:"image"`
	SentimentScore float64 `json:"sentimentScore"`
}

// MarketRecap aggregates a batch of headlines into a level-appropriate
// narrative.
type MarketRecap struct {
	Paragraphs     []string  `json:"paragraphs"`
	Tldr           string    `json:"tldr"`
	Sentiment      Sentiment `json:"sentiment"`
	DominantSector Sector    `json:"dominantSector"`
}

// Brief is the response shape served to the frontend. It always carries
// usable data: on provider failure Headlines come from a cached snapshot or
// the compiled-in fallback dataset and Error signals degraded mode.
type Brief struct {
	Headlines   []ProcessedHeadline `json:"headlines"`
	MarketRecap MarketRecap         `json:"marketRecap"`
	LastUpdated string              `json:"lastUpdated"`
	Error       string              `json:"error,omitempty"`
}
