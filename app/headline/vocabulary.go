package headline

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary holds the keyword sets driving relevance filtering and
// sector/sentiment classification. All matching is lowercase substring
// containment; no NLP involved. The built-in defaults can be overridden
// from a YAML file.
type Vocabulary struct {
	FinanceTerms  []string         `yaml:"finance_terms"`
	Sectors       []SectorKeywords `yaml:"sectors"`
	PositiveWords []string         `yaml:"positive_words"`
	NegativeWords []string         `yaml:"negative_words"`
}

type SectorKeywords struct {
	Sector   Sector   `yaml:"sector"`
	Keywords []string `yaml:"keywords"`
}

// DefaultVocabulary returns the compiled-in keyword sets.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		FinanceTerms: []string{
			"stock", "market", "economy", "economic", "federal reserve",
			"earnings", "revenue", "profit", "inflation", "interest rate",
			"nasdaq", "dow jones", "s&p", "wall street", "investor",
			"shares", "shareholder", "trading", "ipo", "merger",
			"acquisition", "bank", "crypto", "bitcoin", "gdp",
			"treasury", "bond", "dividend",
		},
		Sectors: []SectorKeywords{
			{
				Sector: SectorTech,
				Keywords: []string{
					"tech", "software", "artificial intelligence", "chip",
					"semiconductor", "cloud computing", "apple", "google",
					"microsoft", "nvidia", "startup",
				},
			},
			{
				Sector: SectorFinance,
				Keywords: []string{
					"bank", "finance", "financial", "federal reserve",
					"interest rate", "loan", "credit", "wall street",
					"treasury", "bond", "insurance",
				},
			},
			{
				Sector: SectorEnergy,
				Keywords: []string{
					"oil", "gas", "energy", "opec", "crude", "solar",
					"renewable", "electric vehicle",
				},
			},
			{
				Sector: SectorHealthcare,
				Keywords: []string{
					"health", "pharma", "drug", "medical", "biotech",
					"vaccine", "fda", "hospital",
				},
			},
			{
				Sector: SectorRetail,
				Keywords: []string{
					"retail", "consumer", "shopping", "store", "e-commerce",
					"walmart", "amazon", "sales",
				},
			},
			{
				Sector: SectorCrypto,
				Keywords: []string{
					"crypto", "bitcoin", "ethereum", "blockchain", "token",
					"stablecoin",
				},
			},
		},
		PositiveWords: []string{
			"surge", "rally", "gain", "rise", "rose", "jump", "soar",
			"record high", "growth", "beat expectations", "strong",
			"boost", "climb", "advance", "recover", "optimism",
		},
		NegativeWords: []string{
			"fall", "fell", "drop", "decline", "plunge", "slump", "loss",
			"weak", "crash", "tumble", "slide", "recession", "layoff",
			"fear", "downturn", "slowdown", "misses",
		},
	}
}

// LoadVocabulary reads a YAML vocabulary file. Missing sections keep the
// built-in defaults, so a partial override file is valid. Loaded sectors
// are sorted into the fixed priority order regardless of how the file
// lists them, so classification and tie-breaking always agree.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	vocab := DefaultVocabulary()
	var override Vocabulary
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(override.FinanceTerms) > 0 {
		vocab.FinanceTerms = override.FinanceTerms
	}
	if len(override.Sectors) > 0 {
		vocab.Sectors = override.Sectors
	}
	if len(override.PositiveWords) > 0 {
		vocab.PositiveWords = override.PositiveWords
	}
	if len(override.NegativeWords) > 0 {
		vocab.NegativeWords = override.NegativeWords
	}

	vocab.normalize()
	vocab.sortSectors()

	if err := vocab.validate(); err != nil {
		return nil, fmt.Errorf("invalid vocabulary %s: %w", path, err)
	}

	return vocab, nil
}

// normalize lowercases every term so matching stays case-insensitive
// regardless of how the override file is written.
func (v *Vocabulary) normalize() {
	lower := func(terms []string) {
		for i, term := range terms {
			terms[i] = strings.ToLower(strings.TrimSpace(term))
		}
	}

	lower(v.FinanceTerms)
	lower(v.PositiveWords)
	lower(v.NegativeWords)
	for i := range v.Sectors {
		v.Sectors[i].Sector = Sector(strings.ToLower(strings.TrimSpace(string(v.Sectors[i].Sector))))
		lower(v.Sectors[i].Keywords)
	}
}

// sortSectors orders the sector list by the fixed classification priority
// so first-match-wins semantics do not depend on file order.
func (v *Vocabulary) sortSectors() {
	rank := make(map[Sector]int, len(sectorPriority))
	for i, sector := range sectorPriority {
		rank[sector] = i
	}
	sort.SliceStable(v.Sectors, func(i, j int) bool {
		return rank[v.Sectors[i].Sector] < rank[v.Sectors[j].Sector]
	})
}

func (v *Vocabulary) validate() error {
	if len(v.FinanceTerms) == 0 {
		return fmt.Errorf("finance_terms must not be empty")
	}
	if len(v.PositiveWords) == 0 {
		return fmt.Errorf("positive_words must not be empty")
	}
	if len(v.NegativeWords) == 0 {
		return fmt.Errorf("negative_words must not be empty")
	}

	validSectors := map[Sector]bool{
		SectorTech:       true,
		SectorFinance:    true,
		SectorEnergy:     true,
		SectorHealthcare: true,
		SectorRetail:     true,
		SectorCrypto:     true,
	}

	for i, sector := range v.Sectors {
		if !validSectors[sector.Sector] {
			return fmt.Errorf("invalid sector at index %d: %s", i, sector.Sector)
		}
		if len(sector.Keywords) == 0 {
			return fmt.Errorf("sector %s must have at least one keyword", sector.Sector)
		}
	}

	return nil
}
