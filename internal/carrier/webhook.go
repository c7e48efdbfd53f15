package carrier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aniladanir/retry"
	"github.com/google/uuid"
)

type WebhookCarrier struct {
	url        string
	httpClient *http.Client
	retrier    *retry.Retrier
}

type webhookResponse struct {
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
}

// NewWebhookCarrier creates a carrier that posts messages to the given
// webhook url. Transport errors and 5xx responses are retried up to
// maxRetry attempts; 4xx responses are terminal.
func NewWebhookCarrier(url string, maxRetry *int) (*WebhookCarrier, error) {
	retrierOpts := make([]retry.Option, 0)
	if maxRetry != nil {
		retrierOpts = append(retrierOpts, retry.WithMaxAttemps(*maxRetry))
	}
	retrier, err := retry.New(retrierOpts...)
	if err != nil {
		return nil, fmt.Errorf("encountered error when initializing retrier: %w", err)
	}

	return &WebhookCarrier{
		url:     url,
		retrier: retrier,
		httpClient: &http.Client{
			Timeout: time.Second * 5,
		},
	}, nil
}

func (c *WebhookCarrier) Send(ctx context.Context, phone, message string) (string, error) {
	var (
		receiptID string
		sendErr   error
	)

	retryFunc := func(attempt int) (terminate bool) {
		resp, err := c.doRequest(ctx, phone, message)
		if err != nil {
			sendErr = fmt.Errorf("failed to reach carrier: %w", err)
			return false
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)

		switch {
		case resp.StatusCode == http.StatusAccepted:
			var wr webhookResponse
			if err := json.Unmarshal(body, &wr); err != nil {
				sendErr = fmt.Errorf("failed to decode carrier response: %w body=%q", err, string(body))
				return true
			}
			if wr.MessageID == "" {
				sendErr = fmt.Errorf("missing messageId in carrier response body=%q", string(body))
				return true
			}
			receiptID = wr.MessageID
			sendErr = nil
			return true
		case resp.StatusCode >= http.StatusInternalServerError:
			// 5XX indicates a carrier-side problem, retry
			sendErr = fmt.Errorf("carrier returned status %d", resp.StatusCode)
			return false
		default:
			// 4XX indicates the carrier rejected this message, no retry
			sendErr = fmt.Errorf("carrier rejected message: status %d body=%q", resp.StatusCode, string(body))
			return true
		}
	}

	<-c.retrier.Retry(ctx, retryFunc, true)

	return receiptID, sendErr
}

func (c *WebhookCarrier) doRequest(ctx context.Context, phone, message string) (*http.Response, error) {
	payload := map[string]string{
		"to":      phone,
		"content": message,
	}
	jsonPayload, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Add("X-Request-ID", uuid.NewString())

	return c.httpClient.Do(req)
}
