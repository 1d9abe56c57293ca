package textproc

// universityTiers maps a tier name to the curated school names matched as
// substrings of the cleaned profile text.
var universityTiers = map[string][]string{
	"top_us_universities": {
		"harvard", "stanford", "mit", "yale", "princeton", "columbia",
		"ucla", "berkeley", "uchicago", "university of chicago", "penn",
		"upenn", "university of pennsylvania", "northwestern", "johns hopkins",
		"duke", "cornell", "nyu", "new york university",
	},
	"m7_mba": {
		"harvard business school", "stanford graduate school of business",
		"wharton", "kellogg", "booth", "columbia business school", "mit sloan",
	},
}
