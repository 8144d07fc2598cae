package discord

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/HailXD/Tarot-Draw/internal/domain"
	"github.com/HailXD/Tarot-Draw/internal/ports"
)

// maxContentLen is Discord's limit for a message's content field.
const maxContentLen = 2000

// Client implements ports.Notifier by posting to a Discord webhook.
type Client struct {
	httpClient *http.Client
	webhookURL string
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, webhookURL string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		webhookURL: strings.TrimSpace(webhookURL),
		logger:     logger,
	}
}

// webhookRequest mirrors the subset of the webhook execute payload we send.
type webhookRequest struct {
	Content string `json:"content"`
}

func (c *Client) NotifyDeal(ctx context.Context, n ports.DealNotification) error {
	content := truncate(domain.DealMessage(n.Seed, n.Hand), maxContentLen)

	body, err := json.Marshal(webhookRequest{Content: content})
	if err != nil {
		return fmt.Errorf("marshal webhook: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook status %d: %s", resp.StatusCode, string(respBody))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	c.logger.DebugContext(ctx, "deal notification sent", "session_id", n.SessionID, "cards", len(n.Hand))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Noop discards notifications. It is used when no webhook is configured.
type Noop struct{}

func (Noop) NotifyDeal(context.Context, ports.DealNotification) error { return nil }
