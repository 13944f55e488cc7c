package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Lead represents a Salesforce Lead record.
type Lead struct {
	ID          string `json:"Id" salesforce:"Id"`
	Email       string `json:"Email" salesforce:"Email"`
	Company     string `json:"Company" salesforce:"Company"`
	LastName    string `json:"LastName" salesforce:"LastName"`
	Phone       string `json:"Phone" salesforce:"Phone"`
	Website     string `json:"Website" salesforce:"Website"`
	LeadSource  string `json:"LeadSource" salesforce:"LeadSource"`
	Rating      string `json:"Rating" salesforce:"Rating"`
	Description string `json:"Description" salesforce:"Description"`
}

// leadFields are the SOQL fields selected for Lead queries.
var leadFields = []string{
	"Id", "Email", "Company", "LastName", "Phone", "Website",
	"LeadSource", "Rating", "Description",
}

// FindLeadByEmail queries Salesforce for a Lead matching the given email.
// Returns nil if no lead is found.
func FindLeadByEmail(ctx context.Context, c Client, email string) (*Lead, error) {
	soql := fmt.Sprintf(
		"SELECT %s FROM Lead WHERE Email = '%s' LIMIT 1",
		strings.Join(leadFields, ", "),
		escapeSoql(email),
	)

	var leads []Lead
	if err := c.Query(ctx, soql, &leads); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("sf: find lead by email %s", email))
	}
	if len(leads) == 0 {
		return nil, nil
	}
	return &leads[0], nil
}

// CreateLead creates a new Lead record and returns the new Salesforce ID.
func CreateLead(ctx context.Context, c Client, fields map[string]any) (string, error) {
	if fields["Company"] == nil || fields["Company"] == "" {
		return "", eris.New("sf: lead Company is required")
	}
	id, err := c.InsertOne(ctx, "Lead", fields)
	if err != nil {
		return "", eris.Wrap(err, "sf: create lead")
	}
	return id, nil
}

// UpdateLead updates a Lead record with the given fields.
func UpdateLead(ctx context.Context, c Client, leadID string, fields map[string]any) error {
	if leadID == "" {
		return eris.New("sf: lead id is required")
	}
	if len(fields) == 0 {
		return eris.New("sf: no fields to update")
	}
	if err := c.UpdateOne(ctx, "Lead", leadID, fields); err != nil {
		return eris.Wrap(err, fmt.Sprintf("sf: update lead %s", leadID))
	}
	return nil
}

// UpsertLeadByEmail updates the existing Lead with the given email, or creates
// one when none exists. Returns the Salesforce ID either way.
func UpsertLeadByEmail(ctx context.Context, c Client, email string, fields map[string]any) (string, error) {
	if email == "" {
		return "", eris.New("sf: lead email is required")
	}
	existing, err := FindLeadByEmail(ctx, c, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if err := UpdateLead(ctx, c, existing.ID, fields); err != nil {
			return "", err
		}
		return existing.ID, nil
	}
	fields["Email"] = email
	return CreateLead(ctx, c, fields)
}

// escapeSoql escapes single quotes in SOQL string literals to prevent injection.
func escapeSoql(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
