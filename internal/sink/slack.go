package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/gbp-pulse/internal/config"
	"github.com/sells-group/gbp-pulse/internal/score"
)

var titleCaser = cases.Title(language.English)

// SlackSink notifies the team about hot leads through a Slack incoming
// webhook. Events below the hot-lead threshold are skipped.
type SlackSink struct {
	cfg    config.SlackConfig
	client *http.Client
}

// NewSlackSink creates a sink for the configured Slack webhook.
func NewSlackSink(cfg config.SlackConfig) *SlackSink {
	return &SlackSink{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SlackSink) Name() string { return "slack" }

type slackMessage struct {
	Text string `json:"text"`
}

func (s *SlackSink) Deliver(ctx context.Context, ev *Event) error {
	if !ev.Lead.Hot {
		return nil
	}

	body, err := json.Marshal(slackMessage{Text: formatAlert(ev)})
	if err != nil {
		return eris.Wrap(err, "sink: marshal slack message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "sink: create slack request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "sink: slack request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("sink: slack webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func formatAlert(ev *Event) string {
	lead := ev.Lead
	urgency := titleCaser.String(string(score.RotStatusFor(lead.RotScore).Urgency))

	text := fmt.Sprintf(":rotating_light: *%s Priority Lead*\n%s scored %d/100 (%s)",
		urgency, lead.BusinessName, lead.OverallScore, lead.StatusLabel)
	if ev.Kind == KindRot {
		text = fmt.Sprintf(":rotating_light: *%s Priority Lead*\n%s has a review rot score of %d/100 (%s)",
			urgency, lead.BusinessName, lead.RotScore, lead.StatusLabel)
	}
	if r := lead.Report; r != nil && r.Impact.MonthlyRevenueAtRisk > 0 {
		text += fmt.Sprintf("\nEstimated impact: %d missed calls, $%d revenue at risk per month",
			r.Impact.MissedCallsPerMonth, r.Impact.MonthlyRevenueAtRisk)
	}
	if lead.Email != "" {
		text += "\nContact: " + lead.Email
	}
	return text
}
