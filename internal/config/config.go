package config

import (
	"os"
	"strconv"
)

// Config carries every tunable threshold of the matching and arbitrage
// pipeline. It is passed explicitly through all public entry points; nothing
// in the pipeline mutates it or falls back to process-wide state.
type Config struct {
	// Matching thresholds.
	MinEquivalenceScore float64
	MinTitleSimilarity  float64
	MaxDateDiffDays     float64

	// Arbitrage thresholds.
	MinNetProfitPct   float64
	MinLiquidityUSD   float64
	MaxRiskScore      float64
	MaxExecutionRisk  float64
	MaxPriceDeviation float64

	// Position sizing.
	DefaultPositionUSD float64
	MaxPositionUSD     float64
}

// Default returns the process-wide default thresholds. Callers that need
// different values copy and adjust; the pipeline itself never changes them.
func Default() Config {
	return Config{
		MinEquivalenceScore: 0.65,
		MinTitleSimilarity:  0.30,
		MaxDateDiffDays:     30,
		MinNetProfitPct:     2.0,
		MinLiquidityUSD:     1000,
		MaxRiskScore:        70,
		MaxExecutionRisk:    75,
		MaxPriceDeviation:   0.05,
		DefaultPositionUSD:  100,
		MaxPositionUSD:      1000,
	}
}

// FromEnv builds a config starting from defaults, overriding any field whose
// environment variable is set.
func FromEnv() Config {
	cfg := Default()
	cfg.MinEquivalenceScore = envFloat("MIN_EQUIVALENCE_SCORE", cfg.MinEquivalenceScore)
	cfg.MinTitleSimilarity = envFloat("MIN_TITLE_SIMILARITY", cfg.MinTitleSimilarity)
	cfg.MaxDateDiffDays = envFloat("MAX_DATE_DIFF_DAYS", cfg.MaxDateDiffDays)
	cfg.MinNetProfitPct = envFloat("MIN_NET_PROFIT_PCT", cfg.MinNetProfitPct)
	cfg.MinLiquidityUSD = envFloat("MIN_LIQUIDITY_USD", cfg.MinLiquidityUSD)
	cfg.MaxRiskScore = envFloat("MAX_RISK_SCORE", cfg.MaxRiskScore)
	cfg.MaxExecutionRisk = envFloat("MAX_EXECUTION_RISK", cfg.MaxExecutionRisk)
	cfg.MaxPriceDeviation = envFloat("MAX_PRICE_DEVIATION", cfg.MaxPriceDeviation)
	cfg.DefaultPositionUSD = envFloat("DEFAULT_POSITION_USD", cfg.DefaultPositionUSD)
	cfg.MaxPositionUSD = envFloat("MAX_POSITION_USD", cfg.MaxPositionUSD)
	return cfg
}

// EnvString returns the value of the environment variable or the fallback.
func EnvString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// EnvInt parses an integer environment variable with a fallback.
func EnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}
