package metadata

import "regexp"

// The lookup tables below are ordered lists tried in sequence; the first
// matching rule wins. Order is load-bearing: several terms ("fed", "election
// night coverage", ...) occur in more than one group, and reordering changes
// classification outcomes. Do not sort or regroup.

type categoryRule struct {
	category Category
	patterns []*regexp.Regexp
}

var categoryCascade = []categoryRule{
	{CategoryPolitics, compileAll(
		`\belection\b`, `\bpresident(ial|cy)?\b`, `\bcongress\b`, `\bsenate\b`,
		`\bgovernor\b`, `\bsupreme court\b`, `\bwhite house\b`, `\bimpeach`,
		`\bvote\b`, `\btrump\b`, `\bbiden\b`, `\bharris\b`, `\bnewsom\b`,
		`\bfed\b`,
	)},
	{CategoryEconomics, compileAll(
		`\binflation\b`, `\bgdp\b`, `\brecession\b`, `\bfederal reserve\b`,
		`\bfed\b`, `\bfomc\b`, `\binterest rate`, `\brate (hike|cut)\b`,
		`\bunemployment\b`, `\bcpi\b`, `\bjobs report\b`, `\btariff`,
	)},
	{CategoryCrypto, compileAll(
		`\bbitcoin\b`, `\bbtc\b`, `\bethereum\b`, `\beth\b`, `\bcrypto`,
		`\bblockchain\b`, `\bsolana\b`, `\bdogecoin\b`, `\bstablecoin\b`,
		`\bdefi\b`,
	)},
	{CategorySports, compileAll(
		`\bsuper bowl\b`, `\bnfl\b`, `\bnba\b`, `\bmlb\b`, `\bnhl\b`,
		`\bworld series\b`, `\bworld cup\b`, `\bolympics\b`,
		`\bchampionship\b`, `\bplayoffs?\b`,
	)},
	{CategoryTech, compileAll(
		`\bai\b`, `\bartificial intelligence\b`, `\bopenai\b`, `\bapple\b`,
		`\bgoogle\b`, `\bmicrosoft\b`, `\btesla\b`, `\bspacex\b`,
		`\biphone\b`, `\bsemiconductor`, `\bchip\b`,
	)},
	{CategoryEntertainment, compileAll(
		`\boscars?\b`, `\bgrammys?\b`, `\bemmys?\b`, `\bbox office\b`,
		`\bmovie\b`, `\balbum\b`, `\bnetflix\b`, `\btaylor swift\b`,
	)},
	{CategoryScience, compileAll(
		`\bnasa\b`, `\bclimate\b`, `\bvaccine\b`, `\bpandemic\b`,
		`\basteroid\b`, `\beclipse\b`,
	)},
}

// categoryAdjacency lists which differing categories may still pass the hard
// filter. Sports, entertainment, and other only match themselves.
var categoryAdjacency = map[Category][]Category{
	CategoryPolitics:  {CategoryEconomics},
	CategoryEconomics: {CategoryPolitics, CategoryCrypto},
	CategoryCrypto:    {CategoryEconomics, CategoryTech},
	CategoryTech:      {CategoryCrypto, CategoryScience},
	CategoryScience:   {CategoryTech},
}

// CategoriesCompatible reports whether two categories are equal or adjacent.
func CategoriesCompatible(a, b Category) bool {
	if a == b {
		return true
	}
	for _, adj := range categoryAdjacency[a] {
		if adj == b {
			return true
		}
	}
	return false
}

type labeledRule struct {
	re    *regexp.Regexp
	label string
}

var resolutionSourceRules = []labeledRule{
	{regexp.MustCompile(`\bassociated press\b|\bap call`), "AP"},
	{regexp.MustCompile(`\bofficial\b`), "Official"},
	{regexp.MustCompile(`\bgovernment\b`), "Government"},
	{regexp.MustCompile(`\bfederal reserve\b|\bfomc\b`), "Federal Reserve"},
	{regexp.MustCompile(`\bbls\b|\bbureau of labor\b`), "BLS"},
	{regexp.MustCompile(`\bsec\b|\bsecurities and exchange\b`), "SEC"},
	{regexp.MustCompile(`\bcdc\b`), "CDC"},
}

var subcategoryRules = []labeledRule{
	{regexp.MustCompile(`\bsuper bowl\b`), "super_bowl"},
	{regexp.MustCompile(`\bpresident(ial|cy)?\b`), "presidential"},
	{regexp.MustCompile(`\bfed\b|\bfomc\b|\brate (hike|cut)\b`), "fed_policy"},
	{regexp.MustCompile(`\bbitcoin\b|\bbtc\b`), "bitcoin"},
	{regexp.MustCompile(`\bethereum\b|\beth\b`), "ethereum"},
}

var peopleRules = []labeledRule{
	{regexp.MustCompile(`\btrump\b`), "Donald Trump"},
	{regexp.MustCompile(`\bbiden\b`), "Joe Biden"},
	{regexp.MustCompile(`\bharris\b`), "Kamala Harris"},
	{regexp.MustCompile(`\bnewsom\b`), "Gavin Newsom"},
	{regexp.MustCompile(`\bdesantis\b`), "Ron DeSantis"},
	{regexp.MustCompile(`\b(elon )?musk\b`), "Elon Musk"},
	{regexp.MustCompile(`\bpowell\b`), "Jerome Powell"},
	{regexp.MustCompile(`\bputin\b`), "Vladimir Putin"},
	{regexp.MustCompile(`\bzelensky\b`), "Volodymyr Zelensky"},
	{regexp.MustCompile(`\btaylor swift\b`), "Taylor Swift"},
}

var organizationRules = []labeledRule{
	{regexp.MustCompile(`\bfederal reserve\b|\bfed\b|\bfomc\b`), "Federal Reserve"},
	{regexp.MustCompile(`\bsec\b`), "SEC"},
	{regexp.MustCompile(`\bcdc\b`), "CDC"},
	{regexp.MustCompile(`\bbls\b`), "BLS"},
	{regexp.MustCompile(`\bcongress\b`), "Congress"},
	{regexp.MustCompile(`\bopenai\b`), "OpenAI"},
	{regexp.MustCompile(`\bapple\b`), "Apple"},
	{regexp.MustCompile(`\bgoogle\b`), "Google"},
	{regexp.MustCompile(`\bmicrosoft\b`), "Microsoft"},
	{regexp.MustCompile(`\btesla\b`), "Tesla"},
	{regexp.MustCompile(`\bspacex\b`), "SpaceX"},
	{regexp.MustCompile(`\bnasa\b`), "NASA"},
	{regexp.MustCompile(`\bnfl\b`), "NFL"},
	{regexp.MustCompile(`\bfifa\b`), "FIFA"},
}

var locationRules = []labeledRule{
	{regexp.MustCompile(`\bunited states\b|\busa?\b|\bamerica\b`), "United States"},
	{regexp.MustCompile(`\bchina\b`), "China"},
	{regexp.MustCompile(`\brussia\b`), "Russia"},
	{regexp.MustCompile(`\bukraine\b`), "Ukraine"},
	{regexp.MustCompile(`\bcalifornia\b`), "California"},
	{regexp.MustCompile(`\btexas\b`), "Texas"},
	{regexp.MustCompile(`\bnew york\b`), "New York"},
	{regexp.MustCompile(`\bwashington\b`), "Washington"},
}

var eventRules = []labeledRule{
	{regexp.MustCompile(`\bsuper bowl\b`), "Super Bowl"},
	{regexp.MustCompile(`\bworld cup\b`), "World Cup"},
	{regexp.MustCompile(`\bworld series\b`), "World Series"},
	{regexp.MustCompile(`\bolympics\b`), "Olympics"},
	{regexp.MustCompile(`\belection\b`), "Election"},
	{regexp.MustCompile(`\binauguration\b`), "Inauguration"},
	{regexp.MustCompile(`\bdebate\b`), "Debate"},
	{regexp.MustCompile(`\bstate of the union\b`), "State of the Union"},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}
