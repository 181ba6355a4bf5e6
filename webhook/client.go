package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Payload is the JSON body posted to the webhook endpoint. NotionURL and
// Description are always present; the remaining fields depend on whether
// this is a transcription delivery or a pass/fail report.
type Payload struct {
	NotionURL     string `json:"notion_url"`
	Description   string `json:"description"`
	Transcription string `json:"transcription,omitempty"`
	DriveURL      string `json:"drive_url,omitempty"`
	LocalFilePath string `json:"local_file_path,omitempty"`
	Result        string `json:"result,omitempty"`
	Reason        string `json:"reason,omitempty"`
}

// Client delivers payloads to an externally configured webhook endpoint.
// Delivery is a single synchronous POST; there are no retries, and failures
// are reported as false plus a logged reason.
type Client struct {
	url        string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewClient creates a Client for the given endpoint URL. An empty URL is
// allowed; every Deliver call will then fail fast without a network call.
func NewClient(url string, log *logrus.Entry) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// Configured reports whether an endpoint URL is set.
func (c *Client) Configured() bool {
	return c.url != ""
}

// Deliver performs a single POST of the payload. Returns true only on a
// 2xx response. A missing endpoint, a network error, or a non-2xx status
// all return false; nothing is retried and nothing panics through to the
// caller.
func (c *Client) Deliver(ctx context.Context, payload Payload) bool {
	if c.url == "" {
		c.log.Warn("No webhook URL configured")
		return false
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.log.WithError(err).Error("Failed to encode webhook payload")
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.log.WithError(err).Error("Failed to build webhook request")
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).Error("Webhook delivery failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithField("status", resp.StatusCode).Error("Webhook rejected delivery")
		return false
	}

	c.log.Debug("Webhook delivered")
	return true
}

// DeliverTranscription posts a completed transcription with its source
// references.
func (c *Client) DeliverTranscription(ctx context.Context, notionURL, description, transcription, driveURL, localFilePath string) bool {
	return c.Deliver(ctx, Payload{
		NotionURL:     notionURL,
		Description:   description,
		Transcription: transcription,
		DriveURL:      driveURL,
		LocalFilePath: localFilePath,
	})
}

// DeliverResult posts a pass/fail report without a transcription.
func (c *Client) DeliverResult(ctx context.Context, notionURL, description, result, reason string) bool {
	return c.Deliver(ctx, Payload{
		NotionURL:   notionURL,
		Description: description,
		Result:      result,
		Reason:      reason,
	})
}
