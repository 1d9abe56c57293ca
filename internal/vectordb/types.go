package vectordb

// includeAttributes are the candidate fields requested from the namespace on
// every query.
var includeAttributes = []string{"name", "rerank_summary", "years_experience", "keywords", "full_text"}

const distanceMetric = "cosine_distance"

type queryRequest struct {
	Vector            []float32 `json:"vector"`
	TopK              int       `json:"top_k"`
	IncludeAttributes []string  `json:"include_attributes"`
	DistanceMetric    string    `json:"distance_metric"`
}

// row is one approximate-nearest-neighbor hit. Dist is the cosine distance;
// similarity is derived as 1 - dist.
type row struct {
	ID         string         `json:"id"`
	Dist       float64        `json:"dist"`
	Attributes map[string]any `json:"attributes"`
}

type queryResponse struct {
	Rows []row `json:"rows"`
}
