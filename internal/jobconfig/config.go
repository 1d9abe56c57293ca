package jobconfig

import (
	"fmt"
)

// knownFlags are the boolean attributes an education requirement may
// reference: the degree flags plus the named university tiers.
var knownFlags = map[string]bool{
	"has_bachelors":       true,
	"has_masters":         true,
	"has_phd":             true,
	"has_jd":              true,
	"has_llm":             true,
	"has_md":              true,
	"top_us_universities": true,
	"m7_mba":              true,
}

// Config describes one job search: the retrieval query plus the hard and
// soft criteria evaluated on the retrieved candidates. A config is immutable
// for the duration of a search.
type Config struct {
	Name  string
	Query string
	Hard  *HardCriteria
	Soft  *SoftCriteria
}

// HardCriteria are the mandatory pass/fail conditions. All fields are
// optional; a nil or empty criteria set passes every candidate.
type HardCriteria struct {
	MinYearsExperience *int
	MaxYearsExperience *int
	RequiredEducation  *EducationRequirement
	RequiredKeywords   []string
}

// EducationRequirement lists degree flags a candidate must hold. AnyOf passes
// when at least one flag is set; All requires every flag.
type EducationRequirement struct {
	AnyOf []string
	All   []string
}

// SoftCriteria are the weighted heuristics contributing to the relevance
// score. They never exclude a candidate.
type SoftCriteria struct {
	// PreferredExperience is the years-of-experience threshold granting the
	// flat experience bonus. Nil skips the bonus entirely.
	PreferredExperience *int
	PreferredKeywords   []string
	Factors             []Factor
}

// Factor is one weighted keyword group. The full weight is granted at most
// once, when any of its keywords matches.
type Factor struct {
	Name     string
	Weight   float64
	Keywords []string
}

// Validate checks the config once at load time so the pipeline never has to
// access it defensively.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	if c.Name == "" {
		return fmt.Errorf("config name is required")
	}
	if c.Query == "" {
		return fmt.Errorf("%s: query is required", c.Name)
	}

	if c.Hard != nil {
		if err := c.Hard.validate(); err != nil {
			return fmt.Errorf("%s: hard criteria: %w", c.Name, err)
		}
	}
	if c.Soft != nil {
		if err := c.Soft.validate(); err != nil {
			return fmt.Errorf("%s: soft criteria: %w", c.Name, err)
		}
	}
	return nil
}

func (h *HardCriteria) validate() error {
	if h.MinYearsExperience != nil && *h.MinYearsExperience < 0 {
		return fmt.Errorf("min_years_experience must not be negative")
	}
	if h.MaxYearsExperience != nil && *h.MaxYearsExperience < 0 {
		return fmt.Errorf("max_years_experience must not be negative")
	}
	if h.MinYearsExperience != nil && h.MaxYearsExperience != nil &&
		*h.MinYearsExperience > *h.MaxYearsExperience {
		return fmt.Errorf("min_years_experience exceeds max_years_experience")
	}

	if h.RequiredEducation != nil {
		if len(h.RequiredEducation.AnyOf) == 0 && len(h.RequiredEducation.All) == 0 {
			return fmt.Errorf("required_education is empty")
		}
		for _, flag := range h.RequiredEducation.AnyOf {
			if !knownFlags[flag] {
				return fmt.Errorf("unknown education flag %q", flag)
			}
		}
		for _, flag := range h.RequiredEducation.All {
			if !knownFlags[flag] {
				return fmt.Errorf("unknown education flag %q", flag)
			}
		}
	}

	for _, kw := range h.RequiredKeywords {
		if kw == "" {
			return fmt.Errorf("required keyword is empty")
		}
	}
	return nil
}

func (s *SoftCriteria) validate() error {
	if s.PreferredExperience != nil && *s.PreferredExperience < 0 {
		return fmt.Errorf("preferred_experience must not be negative")
	}

	seen := make(map[string]bool, len(s.Factors))
	for _, f := range s.Factors {
		if f.Name == "" {
			return fmt.Errorf("factor name is required")
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate factor %q", f.Name)
		}
		seen[f.Name] = true

		if f.Weight <= 0 {
			return fmt.Errorf("factor %q: weight must be positive", f.Name)
		}
		if len(f.Keywords) == 0 {
			return fmt.Errorf("factor %q: keywords are required", f.Name)
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }
