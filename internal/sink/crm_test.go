package sink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/gbp-pulse/internal/model"
	"github.com/sells-group/gbp-pulse/pkg/salesforce"
)

type fakeSFClient struct {
	queryResults []salesforce.Lead
	insertObject string
	insertFields map[string]any
	updateID     string
	updateFields map[string]any
}

func (f *fakeSFClient) Query(_ context.Context, _ string, out any) error {
	*(out.(*[]salesforce.Lead)) = f.queryResults
	return nil
}

func (f *fakeSFClient) InsertOne(_ context.Context, sObjectName string, record map[string]any) (string, error) {
	f.insertObject = sObjectName
	f.insertFields = record
	return "00Q1", nil
}

func (f *fakeSFClient) UpdateOne(_ context.Context, _ string, id string, fields map[string]any) error {
	f.updateID = id
	f.updateFields = fields
	return nil
}

func TestCRMSink_Deliver_CreatesLead(t *testing.T) {
	c := &fakeSFClient{}
	s := NewCRMSink(c)

	require.NoError(t, s.Deliver(context.Background(), auditEvent()))

	assert.Equal(t, "Lead", c.insertObject)
	assert.Equal(t, "Joe's Pizza", c.insertFields["Company"])
	assert.Equal(t, "owner@joespizza.com", c.insertFields["Email"])
	assert.Equal(t, "Hot", c.insertFields["Rating"])
	assert.Equal(t, "GBP Pulse", c.insertFields["LeadSource"])
	assert.Contains(t, c.insertFields["Description"], "review rot")
}

func TestCRMSink_Deliver_UpdatesExisting(t *testing.T) {
	c := &fakeSFClient{queryResults: []salesforce.Lead{{ID: "00Q7", Email: "owner@joespizza.com"}}}
	s := NewCRMSink(c)

	require.NoError(t, s.Deliver(context.Background(), auditEvent()))

	assert.Equal(t, "00Q7", c.updateID)
	assert.Empty(t, c.insertObject)
}

func TestCRMSink_Deliver_SkipsWithoutEmail(t *testing.T) {
	c := &fakeSFClient{}
	s := NewCRMSink(c)

	ev := &Event{Kind: KindAudit, Lead: &model.Lead{BusinessName: "Anonymous Autos", Hot: true}}
	require.NoError(t, s.Deliver(context.Background(), ev))
	assert.Empty(t, c.insertObject)
	assert.Empty(t, c.updateID)
}

func TestCRMSink_Deliver_WarmRating(t *testing.T) {
	c := &fakeSFClient{}
	s := NewCRMSink(c)

	ev := &Event{Kind: KindAudit, Lead: &model.Lead{
		Email:        "calm@example.com",
		BusinessName: "Fine Business",
		OverallScore: 88,
	}}
	require.NoError(t, s.Deliver(context.Background(), ev))
	assert.Equal(t, "Warm", c.insertFields["Rating"])
}
