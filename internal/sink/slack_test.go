package sink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/gbp-pulse/internal/config"
	"github.com/sells-group/gbp-pulse/internal/model"
)

func TestSlackSink_Deliver_HotLead(t *testing.T) {
	var got slackMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	s := NewSlackSink(config.SlackConfig{WebhookURL: ts.URL})
	require.NoError(t, s.Deliver(context.Background(), auditEvent()))

	assert.Contains(t, got.Text, "Critical Priority Lead")
	assert.Contains(t, got.Text, "Joe's Pizza")
	assert.Contains(t, got.Text, "revenue at risk")
	assert.Contains(t, got.Text, "owner@joespizza.com")
}

func TestSlackSink_Deliver_SkipsColdLead(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	s := NewSlackSink(config.SlackConfig{WebhookURL: ts.URL})
	ev := &Event{Kind: KindAudit, Lead: &model.Lead{BusinessName: "Fine Business", OverallScore: 92}}
	require.NoError(t, s.Deliver(context.Background(), ev))
	assert.Equal(t, int32(0), calls.Load())
}

func TestSlackSink_Deliver_RotEvent(t *testing.T) {
	var got slackMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	s := NewSlackSink(config.SlackConfig{WebhookURL: ts.URL})
	ev := &Event{
		Kind: KindRot,
		Lead: &model.Lead{
			BusinessName: "Stale Cuts Barbershop",
			RotScore:     55,
			StatusLabel:  "Freshness Failing",
			Hot:          true,
		},
	}
	require.NoError(t, s.Deliver(context.Background(), ev))

	assert.Contains(t, got.Text, "High Priority Lead")
	assert.Contains(t, got.Text, "review rot score of 55/100")
}

func TestSlackSink_Deliver_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	s := NewSlackSink(config.SlackConfig{WebhookURL: ts.URL})
	err := s.Deliver(context.Background(), auditEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
