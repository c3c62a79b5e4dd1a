package headline

import (
	"time"
)

// fallbackRecords is the compiled-in availability floor: when the news
// provider is unreachable and no usable snapshot exists, these eight
// generic finance headlines are served instead of an error page.
var fallbackRecords = []ProcessedHeadline{
	{
		ID:    "fallback-1",
		Title: "Markets Mixed as Investors Weigh Economic Signals",
		Summary: "Stock markets showed mixed results as investors weighed encouraging data against lingering uncertainty. " +
			"Some sectors gained ground while others slipped. " +
			"Analysts say this back-and-forth is normal when the economic picture is unclear. " +
			"Long-term investors are advised to focus on fundamentals.",
		Tldr: "Quick take: markets are split while investors wait for clearer economic signals.",
		URL:  "#",
		Site: "Market Brief",
	},
	{
		ID:    "fallback-2",
		Title: "Federal Reserve Holds Interest Rates Steady",
		Summary: "The Federal Reserve kept its benchmark interest rate unchanged at its latest meeting. " +
			"Policymakers pointed to steady employment and cooling inflation. " +
			"Borrowing costs for mortgages, car loans, and credit cards stay where they were. " +
			"Attention now turns to the Fed's next scheduled decision.",
		Tldr: "Quick take: the Fed (central bank) left borrowing costs unchanged.",
		URL:  "#",
		Site: "Market Brief",
	},
	{
		ID:    "fallback-3",
		Title: "Tech Companies Report Strong Quarterly Earnings",
		Summary: "Several major technology companies beat expectations in their latest quarterly reports. " +
			"Cloud computing and advertising revenue led the gains. " +
			"Strong tech results often lift the broader market because the sector carries heavy index weight. " +
			"Executives sounded cautiously optimistic about the year.",
		Tldr: "Quick take: big tech profits came in stronger than expected.",
		URL:  "#",
		Site: "Market Brief",
	},
	{
		ID:    "fallback-4",
		Title: "Oil Prices Fluctuate on Global Supply Concerns",
		Summary: "Crude oil prices moved up and down as traders weighed global supply questions. " +
			"Production decisions by major exporters remain the key swing factor. " +
			"Energy prices feed into the cost of gasoline, shipping, and many everyday goods. " +
			"Analysts expect continued volatility until the supply picture settles.",
		Tldr: "Quick take: oil prices are swinging on supply questions.",
		URL:  "#",
		Site: "Market Brief",
	},
	{
		ID:    "fallback-5",
		Title: "Cryptocurrency Market Sees Renewed Investor Interest",
		Summary: "Digital assets drew fresh attention as trading volumes picked up across major exchanges. " +
			"Bitcoin and other large tokens led the move. " +
			"Supporters point to growing institutional adoption, while skeptics note the market's sharp swings. " +
			"Crypto remains one of the most volatile corners of finance.",
		Tldr: "Quick take: crypto trading is heating up again.",
		URL:  "#",
		Site: "Market Brief",
	},
	{
		ID:    "fallback-6",
		Title: "Retail Sales Data Shows Resilient Consumer Spending",
		Summary: "The latest retail sales figures suggest shoppers are still spending despite higher prices. " +
			"Spending held up across both in-store and online channels. " +
			"Consumer spending drives roughly two-thirds of U.S. economic activity. " +
			"Economists read the report as a sign of underlying strength.",
		Tldr: "Quick take: shoppers keep spending, supporting the economy.",
		URL:  "#",
		Site: "Market Brief",
	},
	{
		ID:    "fallback-7",
		Title: "Manufacturing Activity Expands for Third Straight Month",
		Summary: "Factory activity grew again, marking a third consecutive month of expansion. " +
			"New orders and production both improved. " +
			"A healthy manufacturing sector usually signals demand for goods is holding up. " +
			"Supply chains also continued to normalize, easing cost pressures.",
		Tldr: "Quick take: factories are busier, a good sign for the economy.",
		URL:  "#",
		Site: "Market Brief",
	},
	{
		ID:    "fallback-8",
		Title: "Green Energy Investments Reach Record Levels",
		Summary: "Investment in renewable energy hit a new record as governments and companies expanded clean power projects. " +
			"Solar and wind led the spending. " +
			"Falling technology costs are making green projects competitive with traditional energy. " +
			"The trend is reshaping how investors view the sector.",
		Tldr: "Quick take: money is pouring into clean energy at record pace.",
		URL:  "#",
		Site: "Market Brief",
	},
}

// FallbackHeadlines returns the eight-record fallback dataset with
// publishedDate stamped at call time and image set to null.
func FallbackHeadlines(now time.Time) []ProcessedHeadline {
	stamp := now.UTC().Format(time.RFC3339)
	headlines := make([]ProcessedHeadline, len(fallbackRecords))
	copy(headlines, fallbackRecords)
	for i := range headlines {
		headlines[i].PublishedDate = stamp
		headlines[i].Image = nil
	}
	return headlines
}
