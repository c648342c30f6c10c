package metadata

import (
	"time"

	"crossmatch/internal/markets"
)

// Category buckets a market into one broad topic. Extraction is total: every
// market gets exactly one category, falling back to CategoryOther.
type Category string

const (
	CategoryPolitics      Category = "politics"
	CategoryEconomics     Category = "economics"
	CategoryCrypto        Category = "crypto"
	CategorySports        Category = "sports"
	CategoryTech          Category = "tech"
	CategoryEntertainment Category = "entertainment"
	CategoryScience       Category = "science"
	CategoryOther         Category = "other"
)

// OutcomeType describes the market's outcome space. The extractor only
// produces binary; the enum exists so the filter logic stays honest about the
// comparison it performs.
type OutcomeType string

const (
	OutcomeBinary OutcomeType = "binary"
	OutcomeMulti  OutcomeType = "multi"
	OutcomeScalar OutcomeType = "scalar"
)

// Metadata is the structured view of one market's free text. Built once per
// market, never mutated. Absent signals are zero values (nil date, empty
// strings), never errors.
type Metadata struct {
	Platform         markets.Platform `json:"platform"`
	MarketID         string           `json:"market_id"`
	Title            string           `json:"title"`
	EventDate        *time.Time       `json:"event_date,omitempty"`
	ResolutionSource string           `json:"resolution_source,omitempty"`
	OutcomeType      OutcomeType      `json:"outcome_type"`
	Outcomes         []string         `json:"outcomes"`
	Category         Category         `json:"category"`
	Subcategory      string           `json:"subcategory,omitempty"`
	Entities         Entities         `json:"entities"`
}

// Entities holds the named entities pulled out of a title. The name lists
// carry deduplicated canonical names.
type Entities struct {
	People        []string        `json:"people"`
	Organizations []string        `json:"organizations"`
	Locations     []string        `json:"locations"`
	Events        []string        `json:"events"`
	Dates         []DateMention   `json:"dates"`
	Amounts       []AmountMention `json:"amounts"`
}

// DateMention is a raw date phrase plus its normalized form.
type DateMention struct {
	Raw  string     `json:"raw"`
	Date *time.Time `json:"date,omitempty"`
	Kind string     `json:"kind"` // deadline | range
}

// AmountMention is a monetary/percentage/crypto amount with its value
// normalized (k/m/b multipliers applied).
type AmountMention struct {
	Raw   string  `json:"raw"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"` // usd | pct | btc | eth
}

// Total counts the entities that participate in pairwise comparison: people,
// organizations, events, and amounts. Locations and date mentions are
// extracted for reporting but carry no comparison weight.
func (e Entities) Total() int {
	return len(e.People) + len(e.Organizations) + len(e.Events) + len(e.Amounts)
}
