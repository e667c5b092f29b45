package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	slackAPIURL  = "https://slack.com/api/chat.postMessage"
	slackTimeout = 10 * time.Second
)

// Notifier delivers a finished report to its audience. The pipeline knows
// nothing about the channel's format; it hands over plain text.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Slack posts report text to a channel via chat.postMessage.
type Slack struct {
	token   string
	channel string
	logger  *zap.Logger

	// APIURL is overridable for tests.
	APIURL     string
	HTTPClient *http.Client
}

func NewSlack(token, channel string, logger *zap.Logger) *Slack {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Slack{
		token:      token,
		channel:    channel,
		logger:     logger,
		APIURL:     slackAPIURL,
		HTTPClient: &http.Client{Timeout: slackTimeout},
	}
}

type postMessageRequest struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Send posts text to the configured channel. The Slack API signals failures
// inside a 200 response, so the body is always inspected.
func (s *Slack) Send(ctx context.Context, text string) error {
	payload, err := json.Marshal(postMessageRequest{Channel: s.channel, Text: text})
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.APIURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build slack request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.token))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("post slack message: bad status: %s", resp.Status)
	}

	var result postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode slack response: %w", err)
	}

	if !result.OK {
		return fmt.Errorf("slack api error: %s", result.Error)
	}

	s.logger.Info("report delivered to slack", zap.String("channel", s.channel))

	return nil
}
