package textproc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/talenthunt/talent-ranker/internal/candidate"
)

// Experience totals above this value are treated as extraction noise.
const maxYearsExperience = 50

var (
	explicitYearsRe = regexp.MustCompile(`(\d{1,2})\+?\s*years? of (?:professional\s*)?experience`)
	dateRangeRe     = regexp.MustCompile(`(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)?\s*'?(\d{2,4})\b\s*(?:-|to)\s*(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)?\s*'?(\d{2,4})|present|current|date|today)`)

	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s\-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	educationRes = map[string]*regexp.Regexp{
		"has_bachelors": regexp.MustCompile(`\b(b\.?s\.?|b\.?a\.?|bachelor)\b`),
		"has_masters":   regexp.MustCompile(`\b(m\.?s\.?|m\.?a\.?|master|mba)\b`),
		"has_phd":       regexp.MustCompile(`\b(ph\.?d|phd|doctorate|doctoral)\b`),
		"has_jd":        regexp.MustCompile(`\b(j\.?d|jd|juris doctor)\b`),
		"has_llm":       regexp.MustCompile(`\b(llm|l\.?l\.?m)\b`),
		"has_md":        regexp.MustCompile(`\b(m\.?d|md|medical doctor)\b`),
	}
)

// Processor derives structured candidate attributes from free profile text.
// It is stateless apart from the clock and safe for concurrent use.
type Processor struct {
	now func() time.Time
}

func New() *Processor {
	return &Processor{now: time.Now}
}

// NewWithClock builds a processor with a fixed clock, used by tests to pin
// the current year for date-range resolution.
func NewWithClock(now func() time.Time) *Processor {
	return &Processor{now: now}
}

// Enrich extracts all derived attributes from the provided text. It never
// fails: empty text yields the zero value with every flag false.
func (p *Processor) Enrich(text string) candidate.Enrichment {
	if text == "" {
		return candidate.Enrichment{}
	}

	e := candidate.Enrichment{
		YearsExperience: p.YearsExperience(text),
		Tiers:           p.UniversityTiers(text),
	}

	edu := p.EducationFlags(text)
	e.HasBachelors = edu["has_bachelors"]
	e.HasMasters = edu["has_masters"]
	e.HasPhD = edu["has_phd"]
	e.HasJD = edu["has_jd"]
	e.HasLLM = edu["has_llm"]
	e.HasMD = edu["has_md"]

	return e
}

// YearsExperience combines an explicit "N years of experience" mention with
// the total duration of merged employment date ranges. The two signals take
// the maximum, never the sum, and the result is clamped.
func (p *Processor) YearsExperience(text string) int {
	if text == "" {
		return 0
	}
	lower := strings.ToLower(text)

	explicit := 0
	if m := explicitYearsRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			explicit = v
		}
	}

	fromRanges := yearsFromDateRanges(lower, p.now().Year())

	years := explicit
	if fromRanges > years {
		years = fromRanges
	}
	if years > maxYearsExperience {
		years = maxYearsExperience
	}
	return years
}

type yearRange struct {
	start int
	end   int
}

func yearsFromDateRanges(lower string, currentYear int) int {
	var ranges []yearRange

	for _, m := range dateRangeRe.FindAllStringSubmatch(lower, -1) {
		start, ok := parseYear(m[1])
		if !ok {
			continue
		}

		end := currentYear
		if m[2] != "" {
			end, ok = parseYear(m[2])
			if !ok {
				continue
			}
		}

		if 1980 <= start && start < end && end <= currentYear {
			ranges = append(ranges, yearRange{start: start, end: end})
		}
	}

	if len(ranges) == 0 {
		return 0
	}

	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].start != ranges[j].start {
			return ranges[i].start < ranges[j].start
		}
		return ranges[i].end < ranges[j].end
	})

	// Sweep over the sorted ranges, merging overlapping or touching ones.
	merged := []yearRange{ranges[0]}
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.start <= last.end {
			if r.end > last.end {
				last.end = r.end
			}
			continue
		}
		merged = append(merged, r)
	}

	total := 0
	for _, r := range merged {
		total += r.end - r.start
	}
	return total
}

// parseYear expands two-digit years into the 2000s, matching how profile
// snippets like "'18 - '21" are written.
func parseYear(s string) (int, bool) {
	if len(s) == 2 {
		s = "20" + s
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// EducationFlags matches each degree pattern independently; a profile can
// satisfy several flags at once.
func (p *Processor) EducationFlags(text string) map[string]bool {
	flags := make(map[string]bool, len(educationRes))
	if text == "" {
		return flags
	}

	// Pad with whitespace so word boundaries hold at the text edges.
	padded := " " + strings.ToLower(text) + " "
	for name, re := range educationRes {
		flags[name] = re.MatchString(padded)
	}
	return flags
}

// UniversityTiers reports, per tier, whether any of its schools appears as a
// substring of the cleaned text.
func (p *Processor) UniversityTiers(text string) map[string]bool {
	if text == "" {
		return nil
	}

	cleaned := CleanText(text)
	tiers := make(map[string]bool, len(universityTiers))
	for tier, schools := range universityTiers {
		hit := false
		for _, school := range schools {
			if strings.Contains(cleaned, school) {
				hit = true
				break
			}
		}
		tiers[tier] = hit
	}
	return tiers
}

// CleanText lowercases the text, strips HTML tags and non-alphanumeric
// characters, and collapses whitespace.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = htmlTagRe.ReplaceAllString(text, "")
	text = nonAlnumRe.ReplaceAllString(text, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
