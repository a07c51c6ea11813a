package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rosabot/rosa/backend/internal/service/identity"
)

const contactCardBody = "Here's my contact card. Tap to save Rosa to your contacts."

// ErrNotConfigured is returned when Twilio credentials are missing.
var ErrNotConfigured = errors.New("twilio is not configured")

// TwilioClient sends the contact card as an MMS through the Twilio REST API.
type TwilioClient struct {
	AccountSID string
	AuthToken  string
	From       string
	VCardURL   string
	BaseURL    string
	HTTP       *http.Client
}

// DeliverContactCard texts the vCard to phone. The media URL carries the
// user token so the card download can be attributed without the phone number.
func (c *TwilioClient) DeliverContactCard(ctx context.Context, phone, userToken string) error {
	if c.AccountSID == "" || c.AuthToken == "" || c.From == "" {
		return ErrNotConfigured
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}

	to, err := identity.NormalizePhone(phone)
	if err != nil {
		return err
	}

	mediaURL, err := url.Parse(c.VCardURL)
	if err != nil {
		return fmt.Errorf("invalid vcard url: %w", err)
	}
	q := mediaURL.Query()
	q.Set("ut", userToken)
	mediaURL.RawQuery = q.Encode()

	form := url.Values{}
	form.Set("To", "+"+to)
	form.Set("From", c.From)
	form.Set("Body", contactCardBody)
	form.Set("MediaUrl", mediaURL.String())

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", strings.TrimRight(baseURL, "/"), url.PathEscape(c.AccountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.AccountSID, c.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send vcard: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var apiErr struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(res.Body).Decode(&apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(res.StatusCode)
		}
		return fmt.Errorf("send vcard: twilio status %d: %s", res.StatusCode, apiErr.Message)
	}
	return nil
}

// LogDeliverer stands in for Twilio when it is not configured.
type LogDeliverer struct{}

// DeliverContactCard only logs the request.
func (LogDeliverer) DeliverContactCard(_ context.Context, _ string, userToken string) error {
	log.Printf("[delivery] twilio disabled, skipping contact card for token=%s", userToken)
	return nil
}
