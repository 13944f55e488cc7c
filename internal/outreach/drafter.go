// Package outreach drafts short personalized pitch emails from audit
// reports using the Anthropic API.
package outreach

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gbp-pulse/internal/config"
	"github.com/sells-group/gbp-pulse/internal/model"
	"github.com/sells-group/gbp-pulse/pkg/anthropic"
)

const systemPrompt = `You write short outreach emails for a local-business ` +
	`marketing agency. The recipient owns the business described below. ` +
	`Reference two or three concrete findings from their Google Business ` +
	`Profile audit, keep it under 150 words, end with a soft call to action, ` +
	`and never invent numbers that are not in the findings. Output only the ` +
	`email body.`

// Drafter produces outreach email bodies for captured leads.
type Drafter struct {
	client anthropic.Client
	cfg    config.AnthropicConfig
}

// NewDrafter creates a drafter using the given Anthropic client.
func NewDrafter(client anthropic.Client, cfg config.AnthropicConfig) *Drafter {
	return &Drafter{client: client, cfg: cfg}
}

// Draft generates an email body from the lead's audit report.
func (d *Drafter) Draft(ctx context.Context, lead *model.Lead) (string, error) {
	resp, err := d.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     d.cfg.Model,
		MaxTokens: d.cfg.MaxTokens,
		System:    systemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildPrompt(lead)},
		},
	})
	if err != nil {
		return "", eris.Wrap(err, "outreach: draft email")
	}
	resp.Usage.LogCost(d.cfg.Model, "outreach")

	body := strings.TrimSpace(resp.Text())
	if body == "" {
		return "", eris.New("outreach: empty draft")
	}
	return body, nil
}

// buildPrompt flattens the audit findings into the user message.
func buildPrompt(lead *model.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Business: %s\n", lead.BusinessName)
	fmt.Fprintf(&b, "Overall score: %d/100 (%s)\n", lead.OverallScore, lead.StatusLabel)
	fmt.Fprintf(&b, "Review rot score: %d/100\n", lead.RotScore)

	r := lead.Report
	if r == nil {
		return b.String()
	}

	fmt.Fprintf(&b, "Estimated impact: %d missed calls and $%d revenue at risk per month\n",
		r.Impact.MissedCallsPerMonth, r.Impact.MonthlyRevenueAtRisk)

	issues := make([]string, 0, 8)
	issues = append(issues, r.Profile.Issues...)
	issues = append(issues, r.Photo.Issues...)
	issues = append(issues, r.Response.Issues...)
	if len(issues) > 0 {
		b.WriteString("Findings:\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "- %s\n", issue)
		}
	}

	recs := make([]string, 0, 8)
	recs = append(recs, r.Profile.Recommendations...)
	recs = append(recs, r.Photo.Recommendations...)
	recs = append(recs, r.Response.Recommendations...)
	if len(recs) > 0 {
		b.WriteString("Recommendations:\n")
		for _, rec := range recs {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	return b.String()
}
