package markets

import "time"

// Platform identifies the venue a market listing belongs to.
type Platform string

const (
	PlatformPolymarket Platform = "polymarket"
	PlatformKalshi     Platform = "kalshi"
)

// Market is a normalized snapshot of one binary-outcome listing. Prices are
// probabilities in [0,1]. Instances are immutable once built; the analysis
// pipeline never mutates them.
type Market struct {
	Platform  Platform   `json:"platform"`
	MarketID  string     `json:"market_id"`
	Title     string     `json:"title"`
	Question  string     `json:"question,omitempty"`
	YesPrice  float64    `json:"yes_price"`
	Volume    float64    `json:"volume"`
	Liquidity float64    `json:"liquidity,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Orderbook *Orderbook `json:"orderbook,omitempty"`
	URL       string     `json:"url"`
}

// Orderbook carries top-of-book quotes for the YES outcome. NO quotes are
// implied (noBid = 1 - yesAsk, noAsk = 1 - yesBid).
type Orderbook struct {
	YesBid float64 `json:"yes_bid"`
	YesAsk float64 `json:"yes_ask"`
}

// NoPrice returns the implied NO probability.
func (m *Market) NoPrice() float64 {
	return 1 - m.YesPrice
}

// Text returns the free text used for extraction: the title, falling back to
// the longer question field when the title is empty.
func (m *Market) Text() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Question
}
