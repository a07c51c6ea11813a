package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rosabot/rosa/backend/internal/model/lex"
)

const trackerVersion = "10.1.1-rest"

// DashbotClient mirrors turns to Dashbot's generic REST tracker.
type DashbotClient struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

type trackPayload struct {
	Text         string              `json:"text"`
	UserID       string              `json:"userId"`
	PlatformJSON lex.PlatformContext `json:"platformJson"`
}

// RecordInbound logs the user's utterance.
func (c *DashbotClient) RecordInbound(ctx context.Context, userToken, transcript string, platform lex.PlatformContext) error {
	return c.track(ctx, "incoming", trackPayload{Text: transcript, UserID: userToken, PlatformJSON: platform})
}

// RecordOutbound logs the bot's reply.
func (c *DashbotClient) RecordOutbound(ctx context.Context, userToken, message string, platform lex.PlatformContext) error {
	return c.track(ctx, "outgoing", trackPayload{Text: message, UserID: userToken, PlatformJSON: platform})
}

func (c *DashbotClient) track(ctx context.Context, direction string, payload trackPayload) error {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = "https://tracker.dashbot.io"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("platform", "generic")
	q.Set("v", trackerVersion)
	q.Set("type", direction)
	q.Set("apiKey", c.APIKey)
	endpoint := strings.TrimRight(baseURL, "/") + "/track?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dashbot %s: %w", direction, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("dashbot %s: status %d", direction, res.StatusCode)
	}
	return nil
}

// LogRecorder stands in for Dashbot when no API key is configured.
type LogRecorder struct{}

// RecordInbound only logs.
func (LogRecorder) RecordInbound(_ context.Context, userToken, _ string, platform lex.PlatformContext) error {
	log.Printf("[analytics] incoming token=%s intent=%s", userToken, platform.CurrentIntent.Name)
	return nil
}

// RecordOutbound only logs.
func (LogRecorder) RecordOutbound(_ context.Context, userToken, _ string, platform lex.PlatformContext) error {
	log.Printf("[analytics] outgoing token=%s intent=%s", userToken, platform.CurrentIntent.Name)
	return nil
}
