package jobconfig

import (
	"fmt"
	"sort"
)

// Catalog returns the built-in job search configurations keyed by their
// config file name, validated once.
func Catalog() (map[string]*Config, error) {
	configs := catalog()
	for name, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %s: %w", name, err)
		}
	}
	return configs, nil
}

// Get resolves a single catalog entry by its config name.
func Get(name string) (*Config, error) {
	configs, err := Catalog()
	if err != nil {
		return nil, err
	}
	cfg, ok := configs[name]
	if !ok {
		return nil, fmt.Errorf("configuration %q not found", name)
	}
	return cfg, nil
}

// Names returns the catalog entry names in stable order.
func Names() []string {
	names := make([]string, 0, len(catalog()))
	for name := range catalog() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func catalog() map[string]*Config {
	return map[string]*Config{
		"tax_lawyer.yml": {
			Name:  "Tax Lawyer",
			Query: `tax attorney lawyer irs audit "big four" "am law 100" corporate tax`,
			Hard: &HardCriteria{
				RequiredEducation:  &EducationRequirement{AnyOf: []string{"has_jd", "has_llm"}},
				MinYearsExperience: intPtr(3),
			},
			Soft: &SoftCriteria{
				PreferredExperience: intPtr(5),
				Factors: []Factor{
					{Name: "irs_experience", Weight: 3.0, Keywords: []string{
						"irs audit", "tax controversy", "tax dispute",
					}},
					{Name: "corporate_tax_experience", Weight: 2.5, Keywords: []string{
						"m&a tax", "transactional tax", "corporate tax", "tax structuring",
					}},
					{Name: "big_four_experience", Weight: 2.0, Keywords: []string{
						"deloitte", "ey", "ernst & young", "pwc", "kpmg",
					}},
				},
			},
		},

		"mechanical_engineers.yml": {
			Name:  "Mechanical Engineer",
			Query: "mechanical engineer product design manufacturing simulation solidworks ansys",
			Hard: &HardCriteria{
				RequiredEducation:  &EducationRequirement{All: []string{"has_bachelors"}},
				MinYearsExperience: intPtr(3),
			},
			Soft: &SoftCriteria{
				PreferredExperience: intPtr(5),
				Factors: []Factor{
					{Name: "cad_simulation_tools", Weight: 3.0, Keywords: []string{
						"solidworks", "ansys", "fea", "cad", "comsol", "autocad",
					}},
					{Name: "domain_specialization", Weight: 2.5, Keywords: []string{
						"thermal analysis", "structural analysis", "cfd", "fluid dynamics", "mechatronics",
					}},
					{Name: "product_lifecycle_involvement", Weight: 2.0, Keywords: []string{
						"prototyping", "manufacturing", "product development", "testing",
					}},
				},
			},
		},

		"junior_corporate_lawyer.yml": {
			Name:  "Junior Corporate Lawyer",
			Query: "('junior corporate associate' OR 'corporate law clerk' OR 'legal intern' OR 'entry-level attorney') AND ('M&A' OR 'due diligence' OR 'contract drafting')",
			Hard: &HardCriteria{
				RequiredEducation:  &EducationRequirement{All: []string{"has_jd"}},
				MinYearsExperience: intPtr(0),
			},
			Soft: &SoftCriteria{
				PreferredExperience: intPtr(3),
				Factors: []Factor{
					{Name: "ma_experience", Weight: 3.0, Keywords: []string{
						"m&a", "mergers acquisitions", "due diligence",
					}},
					{Name: "prestigious_employer", Weight: 2.5, Keywords: []string{
						"am law 100", "vault 100", "magic circle", "fortune 500",
					}},
				},
			},
		},

		"doctors_md.yml": {
			Name:  "Medical Doctor",
			Query: `physician MD "US medical school" OR "American medical graduate" OR "ECFMG certified" healthcare "board certified"`,
			Hard: &HardCriteria{
				RequiredEducation:  &EducationRequirement{All: []string{"has_md"}},
				MinYearsExperience: intPtr(2),
			},
			Soft: &SoftCriteria{
				PreferredExperience: intPtr(4),
				Factors: []Factor{
					{Name: "outpatient_experience", Weight: 3.0, Keywords: []string{
						"outpatient", "family medicine", "ambulatory", "primary care",
					}},
					{Name: "telemedicine_experience", Weight: 2.5, Keywords: []string{
						"telemedicine", "telehealth", "virtual care",
					}},
					{Name: "bonus_for_board_certification", Weight: 2.0, Keywords: []string{
						"board certified", "abr certified", "diplomate american board",
					}},
					{Name: "bonus_for_top_us_school", Weight: 1.5, Keywords: []string{
						"harvard", "johns hopkins", "stanford", "ucsf", "ucla",
						"washington university", "columbia", "duke", "yale",
						"university of washington", "university of michigan", "northwestern",
					}},
				},
			},
		},

		"biology_expert.yml": {
			Name:  "Biology Expert",
			Query: "PhD (biologist OR molecular biology OR cell biology OR genetics OR biochemistry) research scientist (CRISPR OR sequencing OR genomics)",
			Hard: &HardCriteria{
				RequiredEducation: &EducationRequirement{All: []string{"has_phd"}},
			},
			Soft: &SoftCriteria{
				PreferredExperience: intPtr(4),
				Factors: []Factor{
					{Name: "research_publications", Weight: 3.5, Keywords: []string{
						"peer reviewed", "publication", "published", "author", "nature", "cell", "science journal",
					}},
					{Name: "lab_techniques", Weight: 2.5, Keywords: []string{
						"crispr", "pcr", "sequencing", "ngs", "assay", "genomics",
					}},
					{Name: "bonus_for_top_university", Weight: 2.0, Keywords: topResearchUniversities},
				},
			},
		},

		"mathematics_phd.yml": {
			Name:  "Mathematics PhD",
			Query: "phd mathematics OR phd statistics OR phd applied math research statistical modeling",
			Hard: &HardCriteria{
				RequiredEducation: &EducationRequirement{All: []string{"has_phd"}},
			},
			Soft: &SoftCriteria{
				PreferredExperience: intPtr(3),
				Factors: []Factor{
					{Name: "research_expertise", Weight: 3.5, Keywords: []string{
						"publication", "peer reviewed", "preprint", "research", "journal of mathematics",
					}},
					{Name: "modeling_proficiency", Weight: 2.5, Keywords: []string{
						"statistical modeling", "quantitative analysis", "stochastic", "algorithms", "pde", "numerical analysis",
					}},
					{Name: "bonus_for_top_university", Weight: 2.0, Keywords: topResearchUniversities},
				},
			},
		},

		"anthropology.yml": {
			Name:  "Anthropology PhD",
			Query: "phd anthropology OR phd sociology OR anthropologist OR sociologist research fieldwork",
			Hard: &HardCriteria{
				RequiredEducation: &EducationRequirement{All: []string{"has_phd"}},
			},
			Soft: &SoftCriteria{
				PreferredExperience: intPtr(2),
				Factors: []Factor{
					{Name: "ethnographic_methods", Weight: 3.5, Keywords: []string{
						"ethnography", "fieldwork", "participant observation", "interviews",
					}},
					{Name: "academic_output", Weight: 2.5, Keywords: []string{
						"publication", "conference", "working paper", "author",
					}},
					{Name: "bonus_for_prestigious_university", Weight: 2.0, Keywords: []string{
						"harvard", "chicago", "oxford", "lse", "berkeley", "stanford",
					}},
				},
			},
		},

		"quantitative_finance.yml": {
			Name:  "Quantitative Finance",
			Query: "('quantitative analyst' OR 'financial engineer' OR 'PhD physics' OR 'PhD mathematics') AND ('Goldman Sachs' OR 'Jane Street' OR 'Citadel' OR 'Two Sigma' OR 'hedge fund' OR 'investment bank') AND (python OR c++)",
			Hard: &HardCriteria{
				MinYearsExperience: intPtr(2),
			},
			Soft: &SoftCriteria{
				PreferredExperience: intPtr(5),
				Factors: []Factor{
					{Name: "quantitative_modeling", Weight: 3.0, Keywords: []string{
						"risk modeling", "algorithmic trading", "derivatives pricing", "stochastic calculus",
						"monte carlo", "black-scholes", "asset pricing", "portfolio optimization",
					}},
					{Name: "technical_proficiency", Weight: 2.5, Keywords: []string{
						"python", "pandas", "numpy", "c++", "quantlib", "scikit-learn", "tensorflow",
					}},
					{Name: "high_stakes_environment", Weight: 2.0, Keywords: []string{
						"investment firm", "hedge fund", "trading", "investment bank", "asset management",
					}},
					{Name: "bonus_for_m7_mba", Weight: 1.5, Keywords: []string{
						"harvard business school", "stanford gsb", "wharton", "kellogg",
						"booth", "columbia business school", "mit sloan",
					}},
				},
			},
		},

		"radiology.yml": {
			Name:  "Radiologist",
			Query: `radiologist OR "radiology physician" OR "diagnostic radiologist" OR "medical imaging md"`,
			Hard: &HardCriteria{
				RequiredEducation:  &EducationRequirement{All: []string{"has_md"}},
				MinYearsExperience: intPtr(3),
			},
			Soft: &SoftCriteria{
				PreferredExperience: intPtr(4),
				Factors: []Factor{
					{Name: "bonus_for_board_certification", Weight: 3.5, Keywords: []string{
						"board certified", "abr", "frcr", "fellowship", "diplomate",
					}},
					{Name: "ai_imaging_experience", Weight: 2.5, Keywords: []string{
						"ai", "artificial intelligence", "image analysis", "machine learning", "computer vision",
					}},
				},
			},
		},

		"bankers.yml": {
			Name:  "Healthcare Investment Banker",
			Query: `("investment banking" OR "M&A advisory") AND (healthcare OR biotech OR pharma) AND "MBA"`,
			Hard: &HardCriteria{
				RequiredEducation:  &EducationRequirement{All: []string{"has_masters"}},
				MinYearsExperience: intPtr(2),
			},
			Soft: &SoftCriteria{
				PreferredExperience: intPtr(4),
				Factors: []Factor{
					{Name: "healthcare_specialization", Weight: 4.0, Keywords: []string{
						"healthcare", "biotech", "pharma", "medical devices", "life sciences",
					}},
					{Name: "ma_transaction_experience", Weight: 3.0, Keywords: []string{
						"m&a", "mergers", "recapitalization", "growth equity", "due diligence",
					}},
					{Name: "prestigious_employer", Weight: 2.0, Keywords: []string{
						"jp morgan", "goldman sachs", "morgan stanley", "kkr", "blackstone", "lazard", "evercore",
					}},
				},
			},
		},
	}
}

// Shared between the biology and mathematics configs.
var topResearchUniversities = []string{
	"harvard", "stanford", "mit", "yale", "princeton", "columbia",
	"berkeley", "uchicago", "penn", "johns hopkins", "caltech",
	"oxford", "cambridge", "eth zurich", "epfl", "university of toronto",
	"waterloo", "max planck", "karolinska",
}
