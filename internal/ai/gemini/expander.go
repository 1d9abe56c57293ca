package gemini

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/talenthunt/talent-ranker/internal/logger"
)

const promptTemplate = `You are an expert recruiter. Expand this job search query to include relevant synonyms, alternative terms, and industry-specific keywords for a candidate search.
Original Query: "%s"
Job Title: %s
Focus on terms likely to appear in professional profiles like on LinkedIn.
Return only the expanded search query as a single string, with no explanations. Use boolean operators like OR and parentheses for grouping.
Example output: ("tax attorney" OR "tax lawyer") AND ("IRS audit" OR "tax controversy")`

const defaultMaxLogLength = 200

var multiSpaceRe = regexp.MustCompile(`\s+`)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Expander implements query expansion on top of a Gemini generator.
type Expander struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewExpander(generator contentGenerator, log *zap.Logger, maxLogLength int) *Expander {
	if log == nil {
		log = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Expander{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Expand rewrites the query into a boolean-keyword query. On any generation
// failure the original query is returned alongside the error, so the caller
// can log and proceed unexpanded.
func (e *Expander) Expand(ctx context.Context, query, jobTitle string) (string, error) {
	if jobTitle == "" {
		jobTitle = "Professional"
	}

	prompt := fmt.Sprintf(promptTemplate, query, jobTitle)

	e.logger.Debug("gemini expansion request",
		zap.String("model", e.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.Truncate(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return query, fmt.Errorf("query expansion: %w", err)
	}

	expanded := multiSpaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
	if expanded == "" {
		return query, fmt.Errorf("query expansion: empty response")
	}

	e.logger.Info("query expanded",
		zap.String("original", query),
		zap.String("expanded", logger.Truncate(expanded, e.maxLogLen)),
	)

	return expanded, nil
}
