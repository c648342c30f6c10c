package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"crossmatch/internal/arb"
	"crossmatch/internal/config"
	"crossmatch/internal/logging"
	"crossmatch/internal/markets"
	"crossmatch/internal/match"
)

// scan_once runs one matching plus arbitrage pass over two market dumps and
// prints the report as JSON. Useful for backtesting saved books and for
// eyeballing threshold changes without Kafka or Redis.
func main() {
	_ = godotenv.Load()
	logging.InitFromEnv()

	fileA := flag.String("a", "", "path to JSON array of markets for platform A")
	fileB := flag.String("b", "", "path to JSON array of markets for platform B")
	pairsOnly := flag.Bool("pairs-only", false, "stop after matching, skip arbitrage analysis")
	flag.Parse()

	if *fileA == "" || *fileB == "" {
		fmt.Fprintln(os.Stderr, "usage: scan_once -a markets_a.json -b markets_b.json [-pairs-only]")
		os.Exit(2)
	}

	listA, err := loadMarkets(*fileA)
	if err != nil {
		logging.Fatalf("[scan-once] load %s: %v", *fileA, err)
	}
	listB, err := loadMarkets(*fileB)
	if err != nil {
		logging.Fatalf("[scan-once] load %s: %v", *fileB, err)
	}

	cfg := config.FromEnv()
	pairs := match.Markets(listA, listB, cfg)
	logging.Infof("[scan-once] markets=%d/%d validated pairs=%d", len(listA), len(listB), len(pairs))

	report := struct {
		Pairs         []match.ValidatedPair `json:"pairs"`
		Opportunities []arb.Opportunity     `json:"opportunities,omitempty"`
	}{Pairs: pairs}

	if !*pairsOnly {
		report.Opportunities = arb.FindOpportunities(pairs, cfg)
		logging.Infof("[scan-once] opportunities=%d", len(report.Opportunities))
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		logging.Fatalf("[scan-once] encode report: %v", err)
	}
}

func loadMarkets(path string) ([]markets.Market, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []markets.Market
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse markets: %w", err)
	}
	return out, nil
}
