package outreach

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/gbp-pulse/internal/config"
	"github.com/sells-group/gbp-pulse/internal/model"
	"github.com/sells-group/gbp-pulse/internal/score"
	"github.com/sells-group/gbp-pulse/pkg/anthropic"
)

type fakeAnthropicClient struct {
	resp    *anthropic.MessageResponse
	err     error
	lastReq anthropic.MessageRequest
}

func (f *fakeAnthropicClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func staleLead() *model.Lead {
	report := score.Audit(score.Snapshot{
		DaysSinceLastReview: 200,
		TotalReviews:        6,
		AvgRating:           4.2,
		HasName:             true,
		HasPhone:            true,
		PhotoCount:          2,
	})
	return &model.Lead{
		Email:        "owner@joespizza.com",
		BusinessName: "Joe's Pizza",
		OverallScore: report.OverallScore,
		RotScore:     report.RotScore,
		StatusLabel:  report.Status.Label,
		Report:       &report,
	}
}

func TestDrafter_Draft(t *testing.T) {
	c := &fakeAnthropicClient{resp: &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: "  Hi Joe, your reviews have gone quiet.  "}},
	}}
	d := NewDrafter(c, config.AnthropicConfig{Model: "claude-haiku-4-5-20251001", MaxTokens: 1024})

	body, err := d.Draft(context.Background(), staleLead())
	require.NoError(t, err)
	assert.Equal(t, "Hi Joe, your reviews have gone quiet.", body)

	assert.Equal(t, "claude-haiku-4-5-20251001", c.lastReq.Model)
	assert.NotEmpty(t, c.lastReq.System)
	require.Len(t, c.lastReq.Messages, 1)
	prompt := c.lastReq.Messages[0].Content
	assert.Contains(t, prompt, "Joe's Pizza")
	assert.Contains(t, prompt, "Review rot score: 100/100")
	assert.Contains(t, prompt, "Findings:")
}

func TestDrafter_Draft_APIError(t *testing.T) {
	c := &fakeAnthropicClient{err: eris.New("rate limited")}
	d := NewDrafter(c, config.AnthropicConfig{Model: "claude-haiku-4-5-20251001"})

	_, err := d.Draft(context.Background(), staleLead())
	assert.Error(t, err)
}

func TestDrafter_Draft_EmptyResponse(t *testing.T) {
	c := &fakeAnthropicClient{resp: &anthropic.MessageResponse{}}
	d := NewDrafter(c, config.AnthropicConfig{Model: "claude-haiku-4-5-20251001"})

	_, err := d.Draft(context.Background(), staleLead())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty draft")
}

func TestBuildPrompt_NoReport(t *testing.T) {
	prompt := buildPrompt(&model.Lead{BusinessName: "Bare Minimum LLC", OverallScore: 10, StatusLabel: "Critical"})
	assert.Contains(t, prompt, "Bare Minimum LLC")
	assert.NotContains(t, prompt, "Findings:")
}
