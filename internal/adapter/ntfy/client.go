package ntfy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// Client pushes best-effort notifications to an ntfy topic. Delivery failures
// are logged and swallowed: a dead notification server must never fail the
// request that triggered the notification.
type Client struct {
	baseURL    *url.URL
	topic      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an ntfy client. An empty server URL disables delivery and
// yields a client whose Notify is a no-op.
func NewClient(server, topic string, logger *slog.Logger) (*Client, error) {
	if server == "" {
		return &Client{logger: logger}, nil
	}

	parsed, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("parse ntfy url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("ntfy url must be absolute")
	}

	return &Client{
		baseURL: parsed,
		topic:   topic,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}, nil
}

// Notify publishes one message to the configured topic.
func (c *Client) Notify(ctx context.Context, title, message string) {
	if c.baseURL == nil {
		return
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, c.topic)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(message))
	if err != nil {
		c.logger.Error("build ntfy request", slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Title", title)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("send notification", slog.String("error", err.Error()))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("notification rejected",
			slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
	}
}
