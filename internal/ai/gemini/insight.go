package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/seojinp/wanted-radar/internal/market"
	"github.com/seojinp/wanted-radar/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200
	maxSummaryRunes     = 200
)

// InsightWriter asks Gemini for a one-line Korean summary of a market
// snapshot. It implements the pipeline's Summarizer contract.
type InsightWriter struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewInsightWriter(generator contentGenerator, logger *zap.Logger, maxLogLength int) *InsightWriter {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &InsightWriter{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Summarize renders the snapshot's ranked data into the prompt and returns a
// single sanitized sentence.
func (w *InsightWriter) Summarize(ctx context.Context, snapshot *market.Snapshot) (string, error) {
	if snapshot == nil {
		return "", fmt.Errorf("snapshot is required")
	}

	payload := map[string]any{
		"total_jobs": snapshot.TotalJobs,
		"companies":  snapshot.Companies,
		"tags":       snapshot.Tags,
	}

	snapshotJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot payload: %w", err)
	}

	prompt := buildPrompt(string(snapshotJSON))

	w.logger.Debug("gemini summary request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, w.maxLogLen)),
	)

	raw, err := w.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	w.logger.Debug("gemini summary response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, w.maxLogLen)),
	)

	line := firstLine(raw)
	if line == "" {
		return "", fmt.Errorf("gemini returned no usable summary line")
	}

	return line, nil
}

func buildPrompt(snapshotJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "다음 채용 데이터를 한국어 한 줄로 요약해 줘:\n{{SNAPSHOT_JSON}}"
	}
	return strings.ReplaceAll(template, "{{SNAPSHOT_JSON}}", snapshotJSON)
}

// firstLine extracts the first non-empty line of the model output, stripped
// of markdown fences and quotes, bounded in length.
func firstLine(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "`\"'")
		if line == "" || strings.HasPrefix(line, "```") {
			continue
		}

		runes := []rune(line)
		if len(runes) > maxSummaryRunes {
			line = string(runes[:maxSummaryRunes])
		}
		return line
	}
	return ""
}
