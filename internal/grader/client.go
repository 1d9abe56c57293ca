package grader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// FinalCandidates is the number of candidates submitted per job
// configuration.
const FinalCandidates = 10

const (
	evaluatePath = "/evaluate"
	gradePath    = "/grade"
	contentType  = "application/json"
)

// Client talks to the external evaluation and grading endpoints.
type Client struct {
	email  string
	logger *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

func New(apiURL, email string, logger *zap.Logger) (*Client, error) {
	if apiURL == "" {
		return nil, errors.New("grader base url is required")
	}
	if email == "" {
		return nil, errors.New("grader authorization email is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		email:  email,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Evaluation is the per-config score breakdown from the evaluate endpoint.
type Evaluation struct {
	AverageFinalScore float64     `json:"average_final_score"`
	AverageSoftScores []SoftScore `json:"average_soft_scores"`
	AverageHardScores []HardScore `json:"average_hard_scores"`
}

type SoftScore struct {
	CriteriaName string  `json:"criteria_name"`
	AverageScore float64 `json:"average_score"`
}

type HardScore struct {
	CriteriaName string  `json:"criteria_name"`
	PassRate     float64 `json:"pass_rate"`
}

type evaluateRequest struct {
	ConfigPath string   `json:"config_path"`
	ObjectIDs  []string `json:"object_ids"`
}

// Evaluate submits one config's candidate identifiers for scoring. The
// identifier list is capped to FinalCandidates.
func (c *Client) Evaluate(ctx context.Context, configPath string, candidateIDs []string) (*Evaluation, error) {
	if len(candidateIDs) == 0 {
		return nil, errors.New("no candidates provided")
	}
	if len(candidateIDs) > FinalCandidates {
		candidateIDs = candidateIDs[:FinalCandidates]
	}

	c.logger.Info("evaluating candidates",
		zap.String("config", configPath),
		zap.Int("count", len(candidateIDs)),
	)

	var result Evaluation
	err := c.postJSON(ctx, evaluatePath, evaluateRequest{
		ConfigPath: configPath,
		ObjectIDs:  candidateIDs,
	}, &result)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

type gradeRequest struct {
	ConfigCandidates map[string][]string `json:"config_candidates"`
}

// Grade posts the full submission for final grading and returns the raw
// response document.
func (c *Client) Grade(ctx context.Context, submission map[string][]string) (map[string]any, error) {
	if len(submission) == 0 {
		return nil, errors.New("submission is empty")
	}

	c.logger.Info("submitting for final grading", zap.Int("configs", len(submission)))

	var result map[string]any
	if err := c.postJSON(ctx, gradePath, gradeRequest{ConfigCandidates: submission}, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", c.email)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s: %s", resp.Status, string(data))
	}

	if target == nil {
		return nil
	}
	return json.Unmarshal(data, target)
}
