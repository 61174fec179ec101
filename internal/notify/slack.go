package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Slack posts run summaries to an incoming-webhook URL.
type Slack struct {
	Webhook string
	Client  *http.Client
}

func NewSlack(webhook string) *Slack {
	if webhook == "" {
		return nil
	}
	return &Slack{
		Webhook: webhook,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type slackPayload struct {
	Text string `json:"text"`
}

// Send renders the summary as a bolded headline plus one bullet per
// failed target.
func (s *Slack) Send(ctx context.Context, sum RunSummary) error {
	if s == nil || s.Webhook == "" {
		return errors.New("slack notifier not configured")
	}

	var text strings.Builder
	text.WriteString("*" + sum.Headline() + "*\n")
	for _, line := range sum.Lines {
		text.WriteString("• " + line + "\n")
	}

	body, err := json.Marshal(slackPayload{Text: text.String()})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Webhook, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("slack webhook returned %s", resp.Status)
	}
	return nil
}
