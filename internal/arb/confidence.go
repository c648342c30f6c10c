package arb

const (
	matchWeight     = 0.35
	priceWeight     = 0.25
	executionWeight = 0.25
	profitWeight    = 0.15
)

var gradeRecommendations = map[string]string{
	"A": "Strong opportunity. Execute both legs promptly at the planned sizes.",
	"B": "Good opportunity. Execute with standard care and re-check quotes before the second leg.",
	"C": "Marginal opportunity. Consider a reduced position or wait for better pricing.",
	"D": "Weak opportunity. Execution is not advised unless conditions improve.",
	"F": "Do not execute. Signals conflict or the margin is too thin.",
}

// scoreConfidence blends match quality, price quality, execution risk, and
// profit margin into one 0-100 score with a letter grade.
func scoreConfidence(equivalence float64, strat *SpreadStrategy, executionRisk float64) Confidence {
	matchConf := equivalence * 100

	avgSpread := (strat.Legs[0].Quote.Spread() + strat.Legs[1].Quote.Spread()) / 2
	var priceConf float64
	switch {
	case avgSpread <= 0.02:
		priceConf = 90
	case avgSpread <= 0.05:
		priceConf = 70
	case avgSpread <= 0.10:
		priceConf = 50
	default:
		priceConf = 30
	}

	execConf := 100 - executionRisk

	var profitConf float64
	switch {
	case strat.NetProfitPct >= 10:
		profitConf = 90
	case strat.NetProfitPct >= 5:
		profitConf = 75
	case strat.NetProfitPct >= 2:
		profitConf = 60
	case strat.NetProfitPct >= 1:
		profitConf = 45
	default:
		profitConf = 25
	}

	score := matchWeight*matchConf + priceWeight*priceConf + executionWeight*execConf + profitWeight*profitConf
	grade := gradeFor(score)

	return Confidence{
		Score:               score,
		Grade:               grade,
		Recommendation:      gradeRecommendations[grade],
		MatchConfidence:     matchConf,
		PriceConfidence:     priceConf,
		ExecutionConfidence: execConf,
		ProfitConfidence:    profitConf,
	}
}

// gradeFor maps a confidence score to a letter. Boundaries are closed: a
// score of exactly 90 is an A.
func gradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 75:
		return "B"
	case score >= 60:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}
