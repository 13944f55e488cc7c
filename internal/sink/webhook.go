package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gbp-pulse/internal/config"
	"github.com/sells-group/gbp-pulse/internal/model"
)

// Drafter produces an optional outreach email body for a captured lead.
type Drafter interface {
	Draft(ctx context.Context, lead *model.Lead) (string, error)
}

// AutomationSink posts the full report as a flat payload to an automation
// webhook (n8n style) for downstream email sequencing.
type AutomationSink struct {
	cfg     config.AutomationConfig
	client  *http.Client
	drafter Drafter
}

// AutomationOption configures the automation sink.
type AutomationOption func(*AutomationSink)

// WithDrafter enriches hot-lead payloads with a generated outreach email.
// Draft failures are logged and the payload ships without one.
func WithDrafter(d Drafter) AutomationOption {
	return func(s *AutomationSink) {
		s.drafter = d
	}
}

// NewAutomationSink creates a sink for the configured automation webhook.
func NewAutomationSink(cfg config.AutomationConfig, opts ...AutomationOption) *AutomationSink {
	s := &AutomationSink{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AutomationSink) Name() string { return "automation" }

// automationPayload is the flat shape downstream automations consume.
type automationPayload struct {
	Kind           string   `json:"kind"`
	Email          string   `json:"email,omitempty"`
	BusinessName   string   `json:"business_name"`
	PlaceID        string   `json:"place_id,omitempty"`
	OverallScore   int      `json:"overall_score"`
	RotScore       int      `json:"rot_score"`
	Status         string   `json:"status"`
	RotLabel       string   `json:"rot_label,omitempty"`
	Urgency        string   `json:"urgency,omitempty"`
	Hot            bool     `json:"hot"`
	ReviewHealth   int      `json:"review_health_score"`
	ProfileScore   int      `json:"profile_score"`
	PhotoScore     int      `json:"photo_score"`
	ResponseScore  int      `json:"response_score"`
	MissedCalls    int      `json:"missed_calls_per_month"`
	RevenueAtRisk  int      `json:"monthly_revenue_at_risk"`
	Issues         []string `json:"issues,omitempty"`
	Recommendation []string `json:"recommendations,omitempty"`
	OutreachDraft  string   `json:"outreach_draft,omitempty"`
}

func (s *AutomationSink) Deliver(ctx context.Context, ev *Event) error {
	lead := ev.Lead
	draft := ev.Draft
	if draft == "" && s.drafter != nil && lead.Hot {
		body, err := s.drafter.Draft(ctx, lead)
		if err != nil {
			zap.L().Warn("sink: outreach draft failed, shipping payload without one",
				zap.String("business", lead.BusinessName),
				zap.Error(err),
			)
		} else {
			draft = body
		}
	}

	p := automationPayload{
		Kind:          string(ev.Kind),
		Email:         lead.Email,
		BusinessName:  lead.BusinessName,
		PlaceID:       lead.PlaceID,
		OverallScore:  lead.OverallScore,
		RotScore:      lead.RotScore,
		Status:        lead.StatusLabel,
		Hot:           lead.Hot,
		OutreachDraft: draft,
	}
	if r := lead.Report; r != nil {
		p.RotLabel = r.Rot.Label
		p.Urgency = string(r.Rot.Urgency)
		p.ReviewHealth = r.ReviewHealthScore
		p.ProfileScore = r.Profile.Value
		p.PhotoScore = r.Photo.Value
		p.ResponseScore = r.Response.Value
		p.MissedCalls = r.Impact.MissedCallsPerMonth
		p.RevenueAtRisk = r.Impact.MonthlyRevenueAtRisk
		p.Issues = append(p.Issues, r.Profile.Issues...)
		p.Issues = append(p.Issues, r.Photo.Issues...)
		p.Issues = append(p.Issues, r.Response.Issues...)
		p.Recommendation = append(p.Recommendation, r.Profile.Recommendations...)
		p.Recommendation = append(p.Recommendation, r.Photo.Recommendations...)
		p.Recommendation = append(p.Recommendation, r.Response.Recommendations...)
	}

	body, err := json.Marshal(p)
	if err != nil {
		return eris.Wrap(err, "sink: marshal automation payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return eris.Wrap(err, "sink: create automation request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "sink: automation request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("sink: automation webhook returned status %d", resp.StatusCode)
	}
	return nil
}
