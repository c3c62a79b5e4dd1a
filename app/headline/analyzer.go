package headline

import (
	"strings"
)

// Analyzer aggregates a batch of processed headlines into a MarketRecap:
// sector and sentiment classification by keyword containment, dominant
// bucket selection, and a level-appropriate two-paragraph narrative. The
// function is total: any batch, including an empty one, yields a recap.
type Analyzer struct {
	vocab *Vocabulary
}

func NewAnalyzer(vocab *Vocabulary) *Analyzer {
	return &Analyzer{vocab: vocab}
}

// recapStats carries the aggregate counts the narrative templates render.
type recapStats struct {
	Total          int
	DominantSector Sector
	Sentiment      Sentiment
	SectorCount    int
	PositiveCount  int
	NegativeCount  int
	NeutralCount   int
	AverageScore   float64
}

func (a *Analyzer) Run(headlines []ProcessedHeadline, level Level) MarketRecap {
	if len(headlines) == 0 {
		return emptyRecap(level)
	}

	stats := a.aggregate(headlines)

	return MarketRecap{
		Paragraphs: []string{
			narrativeParagraph1(level, stats),
			narrativeParagraph2(level, stats),
		},
		Tldr:           narrativeTldr(level, stats),
		Sentiment:      stats.Sentiment,
		DominantSector: stats.DominantSector,
	}
}

func (a *Analyzer) aggregate(headlines []ProcessedHeadline) recapStats {
	sectorCounts := make(map[Sector]int)
	sentimentCounts := make(map[Sentiment]int)
	var scoreSum float64

	for _, h := range headlines {
		text := strings.ToLower(h.Title + " " + h.Summary)
		sectorCounts[a.ClassifySector(text)]++
		sentimentCounts[a.ClassifySentiment(text)]++
		scoreSum += h.SentimentScore
	}

	return recapStats{
		Total:          len(headlines),
		DominantSector: dominantSector(sectorCounts),
		Sentiment:      dominantSentiment(sentimentCounts),
		SectorCount:    len(sectorCounts),
		PositiveCount:  sentimentCounts[SentimentPositive],
		NegativeCount:  sentimentCounts[SentimentNegative],
		NeutralCount:   sentimentCounts[SentimentNeutral],
		AverageScore:   scoreSum / float64(len(headlines)),
	}
}

// ClassifySector assigns a single sector by first-match-wins over the
// vocabulary's sector order. No match yields the general bucket.
func (a *Analyzer) ClassifySector(text string) Sector {
	text = strings.ToLower(text)
	for _, sector := range a.vocab.Sectors {
		for _, keyword := range sector.Keywords {
			if strings.Contains(text, keyword) {
				return sector.Sector
			}
		}
	}
	return SectorGeneral
}

// ClassifySentiment checks positive words before negative ones; a headline
// matching neither is neutral.
func (a *Analyzer) ClassifySentiment(text string) Sentiment {
	text = strings.ToLower(text)
	for _, word := range a.vocab.PositiveWords {
		if strings.Contains(text, word) {
			return SentimentPositive
		}
	}
	for _, word := range a.vocab.NegativeWords {
		if strings.Contains(text, word) {
			return SentimentNegative
		}
	}
	return SentimentNeutral
}

// dominantSector picks the highest-count sector; ties resolve to the
// earlier entry in the fixed priority order rather than map iteration
// order.
func dominantSector(counts map[Sector]int) Sector {
	best := SectorGeneral
	bestCount := 0
	for _, sector := range sectorPriority {
		if counts[sector] > bestCount {
			best = sector
			bestCount = counts[sector]
		}
	}
	return best
}

func dominantSentiment(counts map[Sentiment]int) Sentiment {
	best := SentimentNeutral
	bestCount := 0
	for _, sentiment := range sentimentPriority {
		if counts[sentiment] > bestCount {
			best = sentiment
			bestCount = counts[sentiment]
		}
	}
	return best
}
