package candidate

import (
	"encoding/json"
	"os"
	"strings"
)

// Enrichment holds the structured attributes derived from a candidate's free
// text. It is computed once per candidate and attached via ApplyEnrichment.
type Enrichment struct {
	YearsExperience int  `json:"years_experience"`
	HasBachelors    bool `json:"has_bachelors"`
	HasMasters      bool `json:"has_masters"`
	HasPhD          bool `json:"has_phd"`
	HasJD           bool `json:"has_jd"`
	HasLLM          bool `json:"has_llm"`
	HasMD           bool `json:"has_md"`

	// Tiers maps a university tier name (e.g. "top_us_universities") to
	// whether any school of that tier appears in the profile.
	Tiers map[string]bool `json:"tiers,omitempty"`
}

// Flag reports the value of a named boolean attribute. Degree flags are
// resolved first, then university tiers. The second return value is false for
// unknown names.
func (e Enrichment) Flag(name string) (bool, bool) {
	switch name {
	case "has_bachelors":
		return e.HasBachelors, true
	case "has_masters":
		return e.HasMasters, true
	case "has_phd":
		return e.HasPhD, true
	case "has_jd":
		return e.HasJD, true
	case "has_llm":
		return e.HasLLM, true
	case "has_md":
		return e.HasMD, true
	}

	v, ok := e.Tiers[name]
	return v, ok
}

// Candidate is a single retrieved profile. Retrieval fills the wire fields,
// enrichment adds the derived attributes and scoring fills the score fields.
// The record never outlives one search invocation.
type Candidate struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Summary  string `json:"rerank_summary,omitempty"`
	FullText string `json:"full_text,omitempty"`
	Keywords string `json:"keywords,omitempty"`

	VectorSimilarity float64 `json:"vector_similarity"`

	Enrichment

	FinalScore      float64 `json:"final_score"`
	NormalizedScore float64 `json:"normalized_score"`
}

// ApplyEnrichment attaches derived attributes to the candidate.
func (c *Candidate) ApplyEnrichment(e Enrichment) {
	c.Enrichment = e
}

// ProfileText returns the text used for attribute extraction: the full text
// when present, otherwise the summary.
func (c *Candidate) ProfileText() string {
	if c.FullText != "" {
		return c.FullText
	}
	return c.Summary
}

// SearchText returns the lowercased concatenation of full text and summary
// used for keyword matching.
func (c *Candidate) SearchText() string {
	return strings.ToLower(c.FullText + " " + c.Summary)
}

// Candidates is an ordered collection; the order is the retriever's ranking
// until the ranker re-sorts it.
type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) IDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// Top returns the identifiers of the first k candidates, capped at the
// collection size.
func (c *Candidates) Top(k int) []string {
	if k > len(c.Items) {
		k = len(c.Items)
	}
	if k < 0 {
		k = 0
	}
	return c.IDs()[:k]
}

func (c *Candidates) FindByID(id string) *Candidate {
	for _, item := range c.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// DumpToTmpFile writes the collection to a temporary JSON file and returns its name.
func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return "", err
	}
	return file.Name(), nil
}
