package vectordb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/talenthunt/talent-ranker/internal/candidate"
)

const contentType = "application/json"

// Client queries a vector namespace over HTTP. The retriever guarantees the
// returned rows are ordered by similarity descending; the order is never
// recomputed locally.
type Client struct {
	namespace string
	apiKey    string
	logger    *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

// New creates a client for the namespace hosted in the given region.
func New(region, namespace, apiKey string, logger *zap.Logger) (*Client, error) {
	if region == "" {
		return nil, errors.New("vector store region is required")
	}
	if namespace == "" {
		return nil, errors.New("vector store namespace is required")
	}
	if apiKey == "" {
		return nil, errors.New("vector store api key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		namespace: namespace,
		apiKey:    apiKey,
		logger:    logger,
		APIURL:    fmt.Sprintf("https://%s.turbopuffer.com/v1", region),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// Query runs an approximate-nearest-neighbor search and maps the hits into
// candidates with VectorSimilarity set to 1 - distance.
func (c *Client) Query(ctx context.Context, vector []float32, topK int) (*candidate.Candidates, error) {
	if len(vector) == 0 {
		return nil, errors.New("query vector is empty")
	}

	body, err := json.Marshal(queryRequest{
		Vector:            vector,
		TopK:              topK,
		IncludeAttributes: includeAttributes,
		DistanceMetric:    distanceMetric,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	url := fmt.Sprintf("%s/namespaces/%s/query", c.APIURL, c.namespace)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("vector store query",
		zap.String("namespace", c.namespace),
		zap.Int("top_k", topK),
		zap.Int("dimensions", len(vector)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var response queryResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("parsing query response: %w", err)
	}

	return rowsToCandidates(response.Rows)
}

// rowsToCandidates decodes the loose attribute maps into candidate records,
// preserving the retriever's ordering.
func rowsToCandidates(rows []row) (*candidate.Candidates, error) {
	candidates := &candidate.Candidates{Items: make([]*candidate.Candidate, 0, len(rows))}

	for _, r := range rows {
		c := &candidate.Candidate{}

		cfg := &mapstructure.DecoderConfig{
			Result:  c,
			TagName: "json",
		}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(r.Attributes); err != nil {
			return nil, fmt.Errorf("decoding candidate %s: %w", r.ID, err)
		}

		c.ID = r.ID
		c.VectorSimilarity = 1.0 - r.Dist
		candidates.Items = append(candidates.Items, c)
	}

	return candidates, nil
}
