package sink

import (
	"context"
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gbp-pulse/pkg/salesforce"
)

// CRMSink upserts captured leads into Salesforce. Events without an email
// are skipped since Salesforce Leads are keyed by email here.
type CRMSink struct {
	client salesforce.Client
}

// NewCRMSink creates a sink backed by the given Salesforce client.
func NewCRMSink(client salesforce.Client) *CRMSink {
	return &CRMSink{client: client}
}

func (s *CRMSink) Name() string { return "salesforce" }

func (s *CRMSink) Deliver(ctx context.Context, ev *Event) error {
	lead := ev.Lead
	if lead.Email == "" {
		zap.L().Debug("sink: skipping salesforce upsert, no email",
			zap.String("business", lead.BusinessName))
		return nil
	}

	rating := "Warm"
	if lead.Hot {
		rating = "Hot"
	}
	fields := map[string]any{
		"Company":     lead.BusinessName,
		"LastName":    lead.BusinessName,
		"LeadSource":  "GBP Pulse",
		"Rating":      rating,
		"Description": crmDescription(ev),
	}

	id, err := salesforce.UpsertLeadByEmail(ctx, s.client, lead.Email, fields)
	if err != nil {
		return eris.Wrap(err, "sink: salesforce upsert")
	}
	zap.L().Info("sink: salesforce lead upserted",
		zap.String("sf_id", id),
		zap.String("email", lead.Email))
	return nil
}

func crmDescription(ev *Event) string {
	lead := ev.Lead
	desc := fmt.Sprintf("GBP audit: overall %d/100, review rot %d/100 (%s)",
		lead.OverallScore, lead.RotScore, lead.StatusLabel)
	if r := lead.Report; r != nil {
		desc += fmt.Sprintf(". Estimated %d missed calls and $%d revenue at risk per month.",
			r.Impact.MissedCallsPerMonth, r.Impact.MonthlyRevenueAtRisk)
	}
	return desc
}
