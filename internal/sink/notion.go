package sink

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gbp-pulse/internal/config"
	"github.com/sells-group/gbp-pulse/pkg/notion"
)

// NotionSink captures leads as rows in a Notion database. Existing rows
// (matched by email) are updated in place.
type NotionSink struct {
	client notion.Client
	cfg    config.NotionConfig
}

// NewNotionSink creates a sink writing to the configured lead database.
func NewNotionSink(client notion.Client, cfg config.NotionConfig) *NotionSink {
	return &NotionSink{client: client, cfg: cfg}
}

func (s *NotionSink) Name() string { return "notion" }

func (s *NotionSink) Deliver(ctx context.Context, ev *Event) error {
	lead := ev.Lead
	page := notion.LeadPage{
		BusinessName: lead.BusinessName,
		Email:        lead.Email,
		PlaceID:      lead.PlaceID,
		OverallScore: lead.OverallScore,
		RotScore:     lead.RotScore,
		Status:       lead.StatusLabel,
		Hot:          lead.Hot,
	}

	if lead.Email != "" {
		existing, err := notion.FindLeadPageByEmail(ctx, s.client, s.cfg.LeadDB, lead.Email)
		if err != nil {
			return eris.Wrap(err, "sink: notion lookup")
		}
		if existing != nil {
			if _, err := notion.UpdateLeadPage(ctx, s.client, existing.ID.String(), page); err != nil {
				return eris.Wrap(err, "sink: notion update")
			}
			zap.L().Info("sink: notion lead updated", zap.String("page_id", existing.ID.String()))
			return nil
		}
	}

	created, err := notion.CreateLeadPage(ctx, s.client, s.cfg.LeadDB, page)
	if err != nil {
		return eris.Wrap(err, "sink: notion create")
	}
	zap.L().Info("sink: notion lead captured", zap.String("page_id", created.ID.String()))
	return nil
}
