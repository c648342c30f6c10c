package validator

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"crossmatch/internal/markets"
	"crossmatch/internal/match"
	"crossmatch/internal/metadata"
)

type promptPayload struct {
	PairID           string        `json:"pair_id"`
	GeneratedAtUTC   string        `json:"generated_at_utc"`
	EquivalenceScore float64       `json:"equivalence_score"`
	TitleSimilarity  float64       `json:"title_similarity"`
	InvertedOutcomes bool          `json:"inverted_outcomes"`
	MarketA          marketPayload `json:"market_a"`
	MarketB          marketPayload `json:"market_b"`
	Warnings         []string      `json:"warnings,omitempty"`
}

type marketPayload struct {
	Platform         string         `json:"platform"`
	MarketID         string         `json:"market_id"`
	Title            string         `json:"title"`
	Question         string         `json:"question,omitempty"`
	Category         string         `json:"category,omitempty"`
	Subcategory      string         `json:"subcategory,omitempty"`
	ResolutionSource string         `json:"resolution_source,omitempty"`
	EventDateUTC     string         `json:"event_date_utc,omitempty"`
	EndDateUTC       string         `json:"end_date_utc,omitempty"`
	YesPrice         float64        `json:"yes_price"`
	ReferenceURL     string         `json:"reference_url,omitempty"`
	OutcomeMapping   outcomeMapping `json:"outcome_mapping"`
}

type outcomeMapping struct {
	Yes string `json:"yes_means"`
	No  string `json:"no_means"`
}

func buildPromptPayload(pair *match.ValidatedPair) *promptPayload {
	return &promptPayload{
		PairID:           pair.PairID,
		GeneratedAtUTC:   formatTime(time.Now().UTC()),
		EquivalenceScore: pair.Score.OverallScore,
		TitleSimilarity:  pair.Score.TitleSimilarity,
		InvertedOutcomes: pair.Outcomes.IsInverted,
		MarketA:          buildMarketPayload(pair.MarketA, pair.MetadataA),
		MarketB:          buildMarketPayload(pair.MarketB, pair.MetadataB),
		Warnings:         pair.Score.Warnings,
	}
}

func buildMarketPayload(m markets.Market, meta metadata.Metadata) marketPayload {
	var eventDate, endDate string
	if meta.EventDate != nil {
		eventDate = formatTime(*meta.EventDate)
	}
	if m.EndDate != nil {
		endDate = formatTime(*m.EndDate)
	}

	return marketPayload{
		Platform:         string(m.Platform),
		MarketID:         m.MarketID,
		Title:            m.Title,
		Question:         m.Question,
		Category:         string(meta.Category),
		Subcategory:      meta.Subcategory,
		ResolutionSource: meta.ResolutionSource,
		EventDateUTC:     eventDate,
		EndDateUTC:       endDate,
		YesPrice:         m.YesPrice,
		ReferenceURL:     m.URL,
		OutcomeMapping: outcomeMapping{
			Yes: buildOutcomeText(m, true),
			No:  buildOutcomeText(m, false),
		},
	}
}

func buildOutcomeText(m markets.Market, yes bool) string {
	base := strings.TrimSpace(m.Text())
	if yes {
		return fmt.Sprintf("YES when the question \"%s\" resolves positively.", base)
	}
	return "NO covers all other outcomes or when the YES condition fails."
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func parseResult(raw string) (*Result, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("validator: empty llm response")
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	var res Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil, err
	}
	return &res, nil
}
