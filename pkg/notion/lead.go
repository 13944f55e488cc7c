package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// LeadPage holds the fields written to a row of the lead-capture database.
type LeadPage struct {
	BusinessName string
	Email        string
	PlaceID      string
	OverallScore int
	RotScore     int
	Status       string
	Hot          bool
}

// FindLeadPageByEmail returns the first page in the database whose Email
// property matches, or nil when none exists. The Email column is rich text;
// the query API exposes no email filter condition.
func FindLeadPageByEmail(ctx context.Context, c Client, dbID, email string) (*notionapi.Page, error) {
	resp, err := c.QueryDatabase(ctx, dbID, &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: "Email",
			RichText: &notionapi.TextFilterCondition{
				Equals: email,
			},
		},
		PageSize: 1,
	})
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("notion: find lead page by email %s", email))
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}
	return &resp.Results[0], nil
}

// CreateLeadPage inserts a new row into the lead-capture database.
func CreateLeadPage(ctx context.Context, c Client, dbID string, lead LeadPage) (*notionapi.Page, error) {
	if lead.BusinessName == "" {
		return nil, eris.New("notion: business name is required")
	}
	page, err := c.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: leadProperties(lead),
	})
	if err != nil {
		return nil, eris.Wrap(err, "notion: create lead page")
	}
	return page, nil
}

// UpdateLeadPage rewrites the score properties of an existing lead row.
func UpdateLeadPage(ctx context.Context, c Client, pageID string, lead LeadPage) (*notionapi.Page, error) {
	if pageID == "" {
		return nil, eris.New("notion: page id is required")
	}
	page, err := c.UpdatePage(ctx, pageID, &notionapi.PageUpdateRequest{
		Properties: leadProperties(lead),
	})
	if err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("notion: update lead page %s", pageID))
	}
	return page, nil
}

func leadProperties(lead LeadPage) notionapi.Properties {
	overall := float64(lead.OverallScore)
	rot := float64(lead.RotScore)
	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: lead.BusinessName}}},
		},
		"Overall Score": notionapi.NumberProperty{Number: overall},
		"Rot Score":     notionapi.NumberProperty{Number: rot},
		"Hot":           notionapi.CheckboxProperty{Checkbox: lead.Hot},
	}
	if lead.Email != "" {
		// Rich text so FindLeadPageByEmail can filter on it.
		props["Email"] = notionapi.RichTextProperty{
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: lead.Email}}},
		}
	}
	if lead.PlaceID != "" {
		props["Place ID"] = notionapi.RichTextProperty{
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: lead.PlaceID}}},
		}
	}
	if lead.Status != "" {
		props["Status"] = notionapi.SelectProperty{
			Select: notionapi.Option{Name: lead.Status},
		}
	}
	return props
}
