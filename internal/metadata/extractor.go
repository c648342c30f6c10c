package metadata

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"crossmatch/internal/markets"
)

// Extract builds the structured metadata for one market. It never fails:
// signals that cannot be found come back as zero values.
func Extract(m markets.Market) Metadata {
	lower := strings.ToLower(m.Text())

	return Metadata{
		Platform:         m.Platform,
		MarketID:         m.MarketID,
		Title:            m.Text(),
		EventDate:        extractEventDate(lower),
		ResolutionSource: extractResolutionSource(lower),
		OutcomeType:      OutcomeBinary,
		Outcomes:         []string{"Yes", "No"},
		Category:         extractCategory(lower),
		Subcategory:      extractSubcategory(lower),
		Entities:         extractEntities(lower),
	}
}

func extractCategory(lower string) Category {
	for _, rule := range categoryCascade {
		for _, re := range rule.patterns {
			if re.MatchString(lower) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

func extractResolutionSource(lower string) string {
	for _, rule := range resolutionSourceRules {
		if rule.re.MatchString(lower) {
			return rule.label
		}
	}
	return ""
}

func extractSubcategory(lower string) string {
	for _, rule := range subcategoryRules {
		if rule.re.MatchString(lower) {
			return rule.label
		}
	}
	return ""
}

var (
	yearRe    = regexp.MustCompile(`\b(20\d{2})\b`)
	monthRe   = regexp.MustCompile(`\b(january|jan|february|feb|march|mar|april|apr|may|june|jun|july|jul|august|aug|september|sept|sep|october|oct|november|nov|december|dec)\b\.?\s*(\d{1,2})?\b`)
	quarterRe = regexp.MustCompile(`\bq([1-4])\b|\b(first|second|third|fourth) quarter\b`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var quarterEnds = map[int][2]int{
	1: {int(time.March), 31},
	2: {int(time.June), 30},
	3: {int(time.September), 30},
	4: {int(time.December), 31},
}

// extractEventDate resolves the title to one calendar date: first 20xx year,
// refined by a month (and optional day) or a quarter keyword, defaulting to
// December 31 of that year. No year means no date.
func extractEventDate(lower string) *time.Time {
	ym := yearRe.FindStringSubmatch(lower)
	if ym == nil {
		return nil
	}
	year, _ := strconv.Atoi(ym[1])

	if mm := monthRe.FindStringSubmatch(lower); mm != nil {
		month := monthsByName[mm[1]]
		day := 1
		if mm[2] != "" {
			if d, err := strconv.Atoi(mm[2]); err == nil && d >= 1 && d <= 31 {
				day = d
			}
		}
		return datePtr(year, month, day)
	}

	if qm := quarterRe.FindStringSubmatch(lower); qm != nil {
		q := 0
		if qm[1] != "" {
			q, _ = strconv.Atoi(qm[1])
		} else {
			switch qm[2] {
			case "first":
				q = 1
			case "second":
				q = 2
			case "third":
				q = 3
			case "fourth":
				q = 4
			}
		}
		if end, ok := quarterEnds[q]; ok {
			return datePtr(year, time.Month(end[0]), end[1])
		}
	}

	return datePtr(year, time.December, 31)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

var (
	deadlineDateRe = regexp.MustCompile(`\b(?:by|before|until)\b(?:\s+(?:the|end|of|close|eoy))*(?:\s+[a-z]+)?\s+(?:q[1-4]\s+)?20\d{2}\b`)
	rangeDateRe    = regexp.MustCompile(`\b(?:in|during)\s+(?:q[1-4]\s+)?20\d{2}\b`)
)

var amountPatterns = []struct {
	re   *regexp.Regexp
	unit string
}{
	{regexp.MustCompile(`\$\s?(\d+(?:,\d{3})*(?:\.\d+)?)\s?(k|m|b|thousand|million|billion)?\b`), "usd"},
	{regexp.MustCompile(`\b(\d+(?:,\d{3})*(?:\.\d+)?)(k|m|b)\b`), "usd"},
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s?%`), "pct"},
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s?btc\b`), "btc"},
	{regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s?eth\b`), "eth"},
}

var suffixMultipliers = map[string]float64{
	"k": 1e3, "thousand": 1e3,
	"m": 1e6, "million": 1e6,
	"b": 1e9, "billion": 1e9,
}

func extractEntities(lower string) Entities {
	return Entities{
		People:        matchCanonical(lower, peopleRules),
		Organizations: matchCanonical(lower, organizationRules),
		Locations:     matchCanonical(lower, locationRules),
		Events:        matchCanonical(lower, eventRules),
		Dates:         extractDateMentions(lower),
		Amounts:       extractAmounts(lower),
	}
}

func matchCanonical(lower string, rules []labeledRule) []string {
	var out []string
	seen := make(map[string]bool)
	for _, rule := range rules {
		if !rule.re.MatchString(lower) {
			continue
		}
		if seen[rule.label] {
			continue
		}
		seen[rule.label] = true
		out = append(out, rule.label)
	}
	return out
}

func extractDateMentions(lower string) []DateMention {
	var out []DateMention
	for _, raw := range deadlineDateRe.FindAllString(lower, -1) {
		out = append(out, DateMention{Raw: raw, Date: extractEventDate(raw), Kind: "deadline"})
	}
	for _, raw := range rangeDateRe.FindAllString(lower, -1) {
		out = append(out, DateMention{Raw: raw, Date: extractEventDate(raw), Kind: "range"})
	}
	return out
}

func extractAmounts(lower string) []AmountMention {
	var out []AmountMention
	type key struct {
		value float64
		unit  string
	}
	seen := make(map[key]bool)

	for _, pat := range amountPatterns {
		for _, sub := range pat.re.FindAllStringSubmatch(lower, -1) {
			value, err := strconv.ParseFloat(strings.ReplaceAll(sub[1], ",", ""), 64)
			if err != nil {
				continue
			}
			if len(sub) > 2 && sub[2] != "" {
				value *= suffixMultipliers[sub[2]]
			}
			k := key{value, pat.unit}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, AmountMention{Raw: strings.TrimSpace(sub[0]), Value: value, Unit: pat.unit})
		}
	}
	return out
}
