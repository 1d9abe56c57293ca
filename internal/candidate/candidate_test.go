package candidate

import "testing"

func TestFlagResolvesDegreesAndTiers(t *testing.T) {
	e := Enrichment{
		HasJD: true,
		Tiers: map[string]bool{"m7_mba": true},
	}

	if v, ok := e.Flag("has_jd"); !ok || !v {
		t.Fatalf("expected has_jd to resolve true")
	}
	if v, ok := e.Flag("has_md"); !ok || v {
		t.Fatalf("expected has_md to resolve false")
	}
	if v, ok := e.Flag("m7_mba"); !ok || !v {
		t.Fatalf("expected m7_mba tier to resolve true")
	}
	if _, ok := e.Flag("nonexistent"); ok {
		t.Fatalf("expected unknown flag to report not found")
	}
}

func TestProfileTextPrefersFullText(t *testing.T) {
	c := &Candidate{FullText: "full", Summary: "summary"}
	if c.ProfileText() != "full" {
		t.Fatalf("expected full text, got %q", c.ProfileText())
	}

	c = &Candidate{Summary: "summary"}
	if c.ProfileText() != "summary" {
		t.Fatalf("expected summary fallback, got %q", c.ProfileText())
	}
}

func TestSearchTextLowercasesBothFields(t *testing.T) {
	c := &Candidate{FullText: "Tax LAW", Summary: "IRS Audit"}
	if got := c.SearchText(); got != "tax law irs audit" {
		t.Fatalf("unexpected search text: %q", got)
	}
}

func TestTopCapsAtCollectionSize(t *testing.T) {
	c := &Candidates{Items: []*Candidate{{ID: "a"}, {ID: "b"}}}

	if got := c.Top(5); len(got) != 2 {
		t.Fatalf("expected top to cap at collection size, got %v", got)
	}
	if got := c.Top(1); len(got) != 1 || got[0] != "a" {
		t.Fatalf("unexpected top slice: %v", got)
	}
	if got := c.Top(-1); len(got) != 0 {
		t.Fatalf("expected empty slice for negative k, got %v", got)
	}
}

func TestFindByID(t *testing.T) {
	c := &Candidates{Items: []*Candidate{{ID: "a"}, {ID: "b"}}}

	if found := c.FindByID("b"); found == nil || found.ID != "b" {
		t.Fatalf("expected to find candidate b")
	}
	if found := c.FindByID("z"); found != nil {
		t.Fatalf("expected nil for unknown id")
	}
}
