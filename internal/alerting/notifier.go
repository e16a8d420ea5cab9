package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"rosteriq/internal/analysis"
)

// Notification bundles one alert scan for delivery.
type Notification struct {
	ScanTS time.Time
	Week   int
	Alerts []analysis.Alert
}

// Notifier delivers alert scans to a channel.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// TelegramNotifier pushes messages through the Telegram Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	logger   zerolog.Logger
}

// NewTelegramNotifier constructs a Telegram notifier.
func NewTelegramNotifier(botToken, chatID, baseURL string, timeout time.Duration, logger zerolog.Logger) *TelegramNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With().Str("component", "alert_telegram").Logger(),
	}
}

// Notify calls the sendMessage API with the rendered scan summary.
func (n *TelegramNotifier) Notify(ctx context.Context, note Notification) error {
	payload := map[string]string{
		"chat_id": n.chatID,
		"text":    renderMessage(note),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram responded with status %d", resp.StatusCode)
	}

	var result struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
		if !result.OK {
			return fmt.Errorf("telegram returned ok=false")
		}
	}

	n.logger.Info().Time("scan_ts", note.ScanTS).
		Int("alerts", len(note.Alerts)).
		Msg("alert scan delivered (Telegram)")
	return nil
}

func renderMessage(note Notification) string {
	builder := strings.Builder{}
	builder.WriteString("[RosterIQ Alerts]\n")
	builder.WriteString(fmt.Sprintf("Scan: %s UTC\n", note.ScanTS.UTC().Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf("Week: %d\n", note.Week))

	if len(note.Alerts) == 0 {
		builder.WriteString("No alerts this scan.\n")
		return builder.String()
	}

	for _, alert := range note.Alerts {
		builder.WriteString(fmt.Sprintf("- [%s] %s: %s (%s)", alert.Type, alert.Player, alert.Detail, alert.Impact))
		if alert.ProjectedGain != nil {
			builder.WriteString(fmt.Sprintf(" gain %s", alert.ProjectedGain.StringFixed(1)))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

var _ Notifier = (*TelegramNotifier)(nil)
