package headline

import (
	"strings"

	"github.com/BigPhill11/market-brief/app/news"
)

// MaxHeadlines caps the number of articles surviving the relevance filter.
const MaxHeadlines = 8

// Filterer reduces a raw article batch to finance-relevant items. This is a
// keyword heuristic, not a classifier: an article passes when any of its
// title, description, or keyword list contains any finance term.
type Filterer struct {
	vocab *Vocabulary
}

func NewFilterer(vocab *Vocabulary) *Filterer {
	return &Filterer{vocab: vocab}
}

// Run returns at most MaxHeadlines finance-relevant articles, preserving
// the provider's original order and truncating from the front.
func (f *Filterer) Run(articles []news.RawArticle) []news.RawArticle {
	relevant := make([]news.RawArticle, 0, len(articles))
	for _, article := range articles {
		if f.isFinanceRelevant(article) {
			relevant = append(relevant, article)
		}
		if len(relevant) == MaxHeadlines {
			break
		}
	}
	return relevant
}

func (f *Filterer) isFinanceRelevant(article news.RawArticle) bool {
	fields := []string{article.Title, article.Description}
	fields = append(fields, article.Keywords...)

	for _, field := range fields {
		if field == "" {
			continue
		}
		value := strings.ToLower(field)
		for _, term := range f.vocab.FinanceTerms {
			if strings.Contains(value, term) {
				return true
			}
		}
	}

	return false
}
