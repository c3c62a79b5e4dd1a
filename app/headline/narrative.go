package headline

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var sectorDisplayNames = map[Sector]string{
	SectorTech:       "technology",
	SectorFinance:    "finance and banking",
	SectorEnergy:     "energy",
	SectorHealthcare: "healthcare",
	SectorRetail:     "retail and consumer",
	SectorCrypto:     "crypto",
	SectorGeneral:    "general business",
}

var titleCaser = cases.Title(language.English)

func sectorDisplayName(s Sector) string {
	if name, ok := sectorDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

func sectorHeading(s Sector) string {
	return titleCaser.String(sectorDisplayName(s))
}

func narrativeParagraph1(level Level, stats recapStats) string {
	switch level {
	case LevelIntermediate:
		return intermediateParagraph1(stats)
	case LevelAdvanced:
		return advancedParagraph1(stats)
	default:
		return beginnerParagraph1(stats)
	}
}

func narrativeParagraph2(level Level, stats recapStats) string {
	switch level {
	case LevelIntermediate:
		return intermediateParagraph2(stats)
	case LevelAdvanced:
		return advancedParagraph2(stats)
	default:
		return beginnerParagraph2(stats)
	}
}

func narrativeTldr(level Level, stats recapStats) string {
	switch level {
	case LevelIntermediate:
		return intermediateTldr(stats)
	case LevelAdvanced:
		return advancedTldr(stats)
	default:
		return beginnerTldr(stats)
	}
}

// Beginner templates: plain language with everyday analogies.

func beginnerParagraph1(stats recapStats) string {
	sector := sectorDisplayName(stats.DominantSector)
	switch stats.Sentiment {
	case SentimentPositive:
		return fmt.Sprintf("Today's headlines bring mostly good news and rising prices. "+
			"Think of the market like a mood ring, and right now the mood is upbeat. "+
			"A lot of the buzz is coming from the %s world, which is getting the most attention in today's stories.", sector)
	case SentimentNegative:
		return fmt.Sprintf("Today's headlines lean toward worrying news and falling prices. "+
			"Picture the market as a mood ring that has turned a little gloomy. "+
			"Much of the concern centers on the %s world, which dominates today's stories.", sector)
	default:
		return fmt.Sprintf("Today's market news is pretty calm, like a quiet day at school. "+
			"Nothing dramatic is pushing prices strongly up or down. "+
			"Most of the chatter is about the %s world, which leads today's headlines.", sector)
	}
}

func beginnerParagraph2(stats recapStats) string {
	return fmt.Sprintf("Looking across all %d stories, the news touches %d different corners of the economy. "+
		"%d stories sounded upbeat, %d sounded gloomy, and %d were somewhere in the middle. "+
		"Just like a report card, one day's grades don't tell the whole year's story, so there's no need to react to every headline.",
		stats.Total, stats.SectorCount, stats.PositiveCount, stats.NegativeCount, stats.NeutralCount)
}

func beginnerTldr(stats recapStats) string {
	return fmt.Sprintf("Big picture: %s news leads the day and the overall mood is %s.",
		sectorDisplayName(stats.DominantSector), string(stats.Sentiment))
}

// Intermediate templates: finance-professional vocabulary.

func intermediateParagraph1(stats recapStats) string {
	heading := sectorHeading(stats.DominantSector)
	switch stats.Sentiment {
	case SentimentPositive:
		return fmt.Sprintf("Risk appetite is constructive today, with positive headlines outnumbering negative ones. "+
			"%s leads the tape, suggesting sector rotation is favoring that corner of the market. "+
			"Breadth of this kind typically supports momentum strategies in the near term.", heading)
	case SentimentNegative:
		return fmt.Sprintf("Risk-off tone dominates today's flow, with negative headlines setting the agenda. "+
			"%s is the most-covered sector, and defensives may benefit if the rotation out of it continues. "+
			"Watch for follow-through before reading too much into a single session's news.", heading)
	default:
		return fmt.Sprintf("The news flow is balanced today, with no clear directional bias in the headlines. "+
			"%s draws the most coverage, though conviction appears low across the board. "+
			"Range-bound conditions tend to reward patience over positioning.", heading)
	}
}

func intermediateParagraph2(stats recapStats) string {
	directional := stats.PositiveCount + stats.NegativeCount
	ratio := "an even split between bulls and bears"
	if directional > 0 {
		pct := 100 * stats.PositiveCount / directional
		ratio = fmt.Sprintf("%d%% of directional headlines skewing positive", pct)
	}
	return fmt.Sprintf("Coverage spans %d sectors across %d headlines, with %s. "+
		"Sector dispersion at this level usually signals stock-picking conditions rather than a broad macro trade. "+
		"Earnings-driven names and rate-sensitive sectors deserve the closest monitoring.",
		stats.SectorCount, stats.Total, ratio)
}

func intermediateTldr(stats recapStats) string {
	return fmt.Sprintf("%s leads sector coverage with %s news sentiment; position sizing should reflect the day's conviction.",
		sectorHeading(stats.DominantSector), string(stats.Sentiment))
}

// Advanced templates: quantitative-finance jargon.

func advancedParagraph1(stats recapStats) string {
	heading := sectorHeading(stats.DominantSector)
	switch stats.Sentiment {
	case SentimentPositive:
		return fmt.Sprintf("Headline flow skews risk-on, consistent with positive factor loadings on momentum and short-gamma positioning getting squeezed. "+
			"%s concentration in the tape implies idiosyncratic dispersion is compressing toward a single-factor regime. "+
			"Mean headline polarity of %+.2f corroborates the constructive skew.", heading, stats.AverageScore)
	case SentimentNegative:
		return fmt.Sprintf("Headline flow is risk-off, with negative skew dominating and dealers likely long gamma into the move. "+
			"%s concentration suggests factor crowding, raising the odds of correlated drawdowns across adjacent names. "+
			"Mean headline polarity of %+.2f quantifies the bearish tilt.", heading, stats.AverageScore)
	default:
		return fmt.Sprintf("Headline flow is directionally flat; realized news polarity is hugging zero and vol sellers remain in control. "+
			"%s carries the highest story count, but without sentiment confirmation the factor signal is weak. "+
			"Mean headline polarity of %+.2f sits inside the noise band.", heading, stats.AverageScore)
	}
}

func advancedParagraph2(stats recapStats) string {
	return fmt.Sprintf("Cross-sectional coverage spans %d sector buckets over %d observations (%d positive / %d negative / %d neutral). "+
		"Dispersion of this order typically degrades index-level Sharpe while improving long/short alpha capture. "+
		"Treat single-session news counts as a low-signal input until corroborated by flows.",
		stats.SectorCount, stats.Total, stats.PositiveCount, stats.NegativeCount, stats.NeutralCount)
}

func advancedTldr(stats recapStats) string {
	return fmt.Sprintf("%s dominates the news factor with %s polarity; recalibrate sector exposures accordingly.",
		sectorHeading(stats.DominantSector), string(stats.Sentiment))
}

// emptyRecap covers the zero-headline case with a neutral, general recap so
// the analyzer stays total.
func emptyRecap(level Level) MarketRecap {
	var paragraphs []string
	var tldr string

	switch level {
	case LevelIntermediate:
		paragraphs = []string{
			"No significant market headlines crossed the wire in this window. " +
				"Light news flow typically accompanies range-bound, low-volume sessions.",
			"With nothing driving sector rotation, existing positioning carries the day. " +
				"Use the lull to review watchlists rather than chase stale stories.",
		}
		tldr = "Quiet tape: no market-moving headlines this session."
	case LevelAdvanced:
		paragraphs = []string{
			"The news factor is dark this window: zero qualifying observations, so polarity and dispersion metrics are undefined. " +
				"Treat any model consuming this feed as operating on priors.",
			"Absent fresh information, expect realized vol to track implied and factor exposures to drift with the index. " +
				"No recalibration is warranted on an empty sample.",
		}
		tldr = "Empty news sample: no signal, no recalibration."
	default:
		paragraphs = []string{
			"It's a quiet news day for the markets, like a snow day at school. " +
				"No big finance stories are making waves right now.",
			"Quiet days are normal and even healthy. " +
				"Check back later for fresh headlines and what they mean for the economy.",
		}
		tldr = "Quiet day: no big market news right now."
	}

	return MarketRecap{
		Paragraphs:     paragraphs,
		Tldr:           tldr,
		Sentiment:      SentimentNeutral,
		DominantSector: SectorGeneral,
	}
}
