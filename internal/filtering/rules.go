package filtering

import (
	"fmt"
	"strings"

	"github.com/talenthunt/talent-ranker/internal/candidate"
	"github.com/talenthunt/talent-ranker/internal/jobconfig"
)

// violation carries what a failed rule records to the session log.
type violation struct {
	filterName string
	reason     string
	expected   any
	actual     any
}

type rule interface {
	check(c *candidate.Candidate) *violation
}

// buildRules translates the criteria into the ordered rule list: experience
// bounds, then education, then required keywords.
func buildRules(criteria *jobconfig.HardCriteria) []rule {
	if criteria == nil {
		return nil
	}

	var rules []rule
	if criteria.MinYearsExperience != nil || criteria.MaxYearsExperience != nil {
		rules = append(rules, &experienceRule{min: criteria.MinYearsExperience, max: criteria.MaxYearsExperience})
	}
	if criteria.RequiredEducation != nil {
		rules = append(rules, &educationRule{required: criteria.RequiredEducation})
	}
	if len(criteria.RequiredKeywords) > 0 {
		rules = append(rules, &keywordsRule{keywords: criteria.RequiredKeywords})
	}
	return rules
}

type experienceRule struct {
	min *int
	max *int
}

func (r *experienceRule) check(c *candidate.Candidate) *violation {
	years := c.YearsExperience

	if r.min != nil && years < *r.min {
		return &violation{
			filterName: "min_years_experience",
			reason:     fmt.Sprintf("candidate has %d years of experience, minimum is %d", years, *r.min),
			expected:   *r.min,
			actual:     years,
		}
	}
	if r.max != nil && years > *r.max {
		return &violation{
			filterName: "max_years_experience",
			reason:     fmt.Sprintf("candidate has %d years of experience, maximum is %d", years, *r.max),
			expected:   *r.max,
			actual:     years,
		}
	}
	return nil
}

type educationRule struct {
	required *jobconfig.EducationRequirement
}

func (r *educationRule) check(c *candidate.Candidate) *violation {
	if len(r.required.AnyOf) > 0 {
		satisfied := false
		for _, flag := range r.required.AnyOf {
			if held, _ := c.Flag(flag); held {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return &violation{
				filterName: "required_education",
				reason:     "none of the accepted degrees is present",
				expected:   "any of " + strings.Join(r.required.AnyOf, ", "),
				actual:     heldFlags(c, r.required.AnyOf),
			}
		}
	}

	for _, flag := range r.required.All {
		if held, _ := c.Flag(flag); !held {
			return &violation{
				filterName: "required_education",
				reason:     fmt.Sprintf("required degree %s is missing", flag),
				expected:   flag,
				actual:     false,
			}
		}
	}
	return nil
}

func heldFlags(c *candidate.Candidate, flags []string) string {
	var held []string
	for _, flag := range flags {
		if v, _ := c.Flag(flag); v {
			held = append(held, flag)
		}
	}
	if len(held) == 0 {
		return "none"
	}
	return strings.Join(held, ", ")
}

type keywordsRule struct {
	keywords []string
}

func (r *keywordsRule) check(c *candidate.Candidate) *violation {
	text := c.SearchText()

	var missing []string
	for _, kw := range r.keywords {
		if !strings.Contains(text, strings.ToLower(kw)) {
			missing = append(missing, kw)
		}
	}
	if len(missing) > 0 {
		return &violation{
			filterName: "required_keywords",
			reason:     "profile text is missing required keywords",
			expected:   strings.Join(r.keywords, ", "),
			actual:     "missing: " + strings.Join(missing, ", "),
		}
	}
	return nil
}
