package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/gbp-pulse/internal/config"
	"github.com/sells-group/gbp-pulse/internal/sink"
	"github.com/sells-group/gbp-pulse/pkg/places"
)

type fakeProvider struct {
	searchResp *places.TextSearchResponse
	searchErr  error
	place      *places.Place
	placeErr   error
	lastQuery  string
	lastID     string
}

func (f *fakeProvider) TextSearch(_ context.Context, query string) (*places.TextSearchResponse, error) {
	f.lastQuery = query
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if f.searchResp == nil {
		return &places.TextSearchResponse{}, nil
	}
	return f.searchResp, nil
}

func (f *fakeProvider) GetPlace(_ context.Context, placeID string) (*places.Place, error) {
	f.lastID = placeID
	return f.place, f.placeErr
}

type recordingSink struct {
	name string
	err  error

	mu     sync.Mutex
	events []*sink.Event
}

func (r *recordingSink) Name() string { return r.name }

func (r *recordingSink) Deliver(_ context.Context, ev *sink.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return r.err
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func (r *recordingSink) last() *sink.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func newTestAuditor(provider places.Client, sinks ...sink.Sink) *Auditor {
	a := New(provider, NewDispatcher(), sinks, config.AuditConfig{HotLeadThreshold: 60})
	a.now = func() time.Time { return snapNow }
	return a
}

func foundSearch() *places.TextSearchResponse {
	return &places.TextSearchResponse{Places: []places.PlaceSummary{{
		ID:          "ChIJ-joes",
		DisplayName: places.DisplayName{Text: "Joe's Pizza"},
	}}}
}

func TestAuditor_Run_Validation(t *testing.T) {
	a := newTestAuditor(&fakeProvider{})

	_, err := a.Run(context.Background(), Request{Business: "   "})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidRequest))
}

func TestAuditor_Run_NotFound(t *testing.T) {
	provider := &fakeProvider{}
	a := newTestAuditor(provider)

	res, err := a.Run(context.Background(), Request{Business: "Nonexistent Shop"})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Equal(t, "Nonexistent Shop", res.Query)
	assert.Nil(t, res.Report)
}

func TestAuditor_Run_ProviderErrorDegradesToNotFound(t *testing.T) {
	t.Run("search fails", func(t *testing.T) {
		a := newTestAuditor(&fakeProvider{searchErr: eris.New("quota exceeded")})
		res, err := a.Run(context.Background(), Request{Business: "Joe's Pizza"})
		require.NoError(t, err)
		assert.False(t, res.Found)
	})

	t.Run("detail fails", func(t *testing.T) {
		a := newTestAuditor(&fakeProvider{searchResp: foundSearch(), placeErr: eris.New("timeout")})
		res, err := a.Run(context.Background(), Request{Business: "Joe's Pizza"})
		require.NoError(t, err)
		assert.False(t, res.Found)
	})
}

func TestAuditor_Run_FullAudit(t *testing.T) {
	provider := &fakeProvider{searchResp: foundSearch(), place: fullPlace()}
	captured := &recordingSink{name: "store"}
	a := newTestAuditor(provider, captured)

	res, err := a.Run(context.Background(), Request{
		Business: "Joe's Pizza Brooklyn",
		Email:    "owner@joespizza.com",
	})
	require.NoError(t, err)
	a.Wait()

	assert.True(t, res.Found)
	assert.Equal(t, "Joe's Pizza", res.BusinessName)
	assert.Equal(t, "ChIJ-joes", res.PlaceID)
	require.NotNil(t, res.Report)
	assert.False(t, res.Hot, "a healthy profile should not flag hot")
	assert.Equal(t, "ChIJ-joes", provider.lastID)

	require.Equal(t, 1, captured.count())
	ev := captured.last()
	assert.Equal(t, sink.KindAudit, ev.Kind)
	assert.Equal(t, "owner@joespizza.com", ev.Lead.Email)
	assert.Equal(t, res.Report.OverallScore, ev.Lead.OverallScore)
}

func TestAuditor_Run_PlaceIDSkipsSearch(t *testing.T) {
	provider := &fakeProvider{place: fullPlace()}
	a := newTestAuditor(provider)

	res, err := a.Run(context.Background(), Request{PlaceID: "ChIJ-joes"})
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Empty(t, provider.lastQuery)
	assert.Equal(t, "ChIJ-joes", provider.lastID)
}

func TestAuditor_Run_SinkFailureIsolated(t *testing.T) {
	provider := &fakeProvider{searchResp: foundSearch(), place: fullPlace()}
	failing := &recordingSink{name: "salesforce", err: eris.New("sf is down")}
	healthy := &recordingSink{name: "store"}
	a := newTestAuditor(provider, failing, healthy)

	res, err := a.Run(context.Background(), Request{Business: "Joe's Pizza"})
	require.NoError(t, err)
	a.Wait()

	assert.True(t, res.Found)
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, healthy.count(), "a failing sink must not block the others")
}

func TestAuditor_RotCheck(t *testing.T) {
	place := fullPlace()
	place.Reviews = []places.Review{
		{Rating: 4, PublishTime: snapNow.AddDate(0, 0, -90)},
	}
	provider := &fakeProvider{searchResp: foundSearch(), place: place}
	notifier := &recordingSink{name: "slack"}
	a := newTestAuditor(provider, notifier)

	res, err := a.RotCheck(context.Background(), Request{Business: "Joe's Pizza"})
	require.NoError(t, err)
	a.Wait()

	assert.True(t, res.Found)
	assert.Equal(t, 90, res.DaysSinceLastReview)
	assert.Equal(t, 93, res.RotScore)
	assert.Equal(t, "Critical Decay", res.Status.Label)
	assert.True(t, res.Hot)

	require.Equal(t, 1, notifier.count())
	ev := notifier.last()
	assert.Equal(t, sink.KindRot, ev.Kind)
	assert.Equal(t, 93, ev.Lead.RotScore)
	assert.Nil(t, ev.Lead.Report)
}

func TestAuditor_RotCheck_NotFound(t *testing.T) {
	a := newTestAuditor(&fakeProvider{})

	res, err := a.RotCheck(context.Background(), Request{Business: "Nonexistent Shop"})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Zero(t, res.RotScore)
}

func TestAuditor_RotCheck_Validation(t *testing.T) {
	a := newTestAuditor(&fakeProvider{})

	_, err := a.RotCheck(context.Background(), Request{})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidRequest))
}
