// Package audit orchestrates business lookups, scoring, and sink fan-out.
package audit

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gbp-pulse/internal/config"
	"github.com/sells-group/gbp-pulse/internal/model"
	"github.com/sells-group/gbp-pulse/internal/score"
	"github.com/sells-group/gbp-pulse/internal/sink"
	"github.com/sells-group/gbp-pulse/pkg/places"
)

// ErrInvalidRequest marks requests missing required fields. Handlers map
// it to a 400.
var ErrInvalidRequest = eris.New("audit: invalid request")

const defaultHotLeadThreshold = 60

// Request identifies the business to check. PlaceID skips the text search
// when the caller already holds a stable identifier.
type Request struct {
	Business string `json:"business"`
	PlaceID  string `json:"place_id,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Result is the full-audit envelope. A lookup miss is a successful result
// with Found=false, not an error.
type Result struct {
	Found        bool          `json:"found"`
	Query        string        `json:"query"`
	BusinessName string        `json:"business_name,omitempty"`
	Address      string        `json:"address,omitempty"`
	PlaceID      string        `json:"place_id,omitempty"`
	Hot          bool          `json:"hot"`
	Report       *score.Report `json:"report,omitempty"`
}

// RotResult is the single-metric envelope returned by RotCheck.
type RotResult struct {
	Found               bool            `json:"found"`
	Query               string          `json:"query"`
	BusinessName        string          `json:"business_name,omitempty"`
	PlaceID             string          `json:"place_id,omitempty"`
	DaysSinceLastReview int             `json:"days_since_last_review,omitempty"`
	RotScore            int             `json:"rot_score"`
	Status              score.RotStatus `json:"status"`
	Hot                 bool            `json:"hot"`
}

// Auditor runs checks against the business-data provider and fans results
// out to the configured sinks.
type Auditor struct {
	provider   places.Client
	dispatcher *Dispatcher
	sinks      []sink.Sink
	threshold  int
	now        func() time.Time
}

// New creates an Auditor. Sinks may be empty; fan-out is then a no-op.
func New(provider places.Client, dispatcher *Dispatcher, sinks []sink.Sink, cfg config.AuditConfig) *Auditor {
	threshold := cfg.HotLeadThreshold
	if threshold <= 0 {
		threshold = defaultHotLeadThreshold
	}
	return &Auditor{
		provider:   provider,
		dispatcher: dispatcher,
		sinks:      sinks,
		threshold:  threshold,
		now:        time.Now,
	}
}

// Run performs a full audit and schedules sink delivery. Provider failures
// degrade to a not-found result.
func (a *Auditor) Run(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	place, ok := a.lookup(ctx, req)
	if !ok {
		return &Result{Query: req.Business}, nil
	}

	snap := BuildSnapshot(place, a.now())
	report := score.Audit(snap)

	res := &Result{
		Found:        true,
		Query:        req.Business,
		BusinessName: place.DisplayName.Text,
		Address:      place.FormattedAddress,
		PlaceID:      place.ID,
		Hot:          report.OverallScore < a.threshold,
		Report:       &report,
	}

	zap.L().Info("audit: scored business",
		zap.String("business", res.BusinessName),
		zap.Int("overall", report.OverallScore),
		zap.Int("rot", report.RotScore),
		zap.Bool("hot", res.Hot),
	)

	a.fanOut(sink.KindAudit, &model.Lead{
		Email:        req.Email,
		BusinessName: res.BusinessName,
		PlaceID:      res.PlaceID,
		OverallScore: report.OverallScore,
		RotScore:     report.RotScore,
		StatusLabel:  report.Status.Label,
		Hot:          res.Hot,
		Report:       &report,
	})

	return res, nil
}

// RotCheck performs the single-metric review rot variant.
func (a *Auditor) RotCheck(ctx context.Context, req Request) (*RotResult, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	place, ok := a.lookup(ctx, req)
	if !ok {
		return &RotResult{Query: req.Business}, nil
	}

	snap := BuildSnapshot(place, a.now())
	rot := score.Rot(snap.DaysSinceLastReview)
	status := score.RotStatusFor(rot)

	res := &RotResult{
		Found:               true,
		Query:               req.Business,
		BusinessName:        place.DisplayName.Text,
		PlaceID:             place.ID,
		DaysSinceLastReview: snap.DaysSinceLastReview,
		RotScore:            rot,
		Status:              status,
		Hot:                 rot >= a.threshold,
	}

	zap.L().Info("audit: rot check",
		zap.String("business", res.BusinessName),
		zap.Int("rot", rot),
		zap.String("label", status.Label),
	)

	a.fanOut(sink.KindRot, &model.Lead{
		Email:        req.Email,
		BusinessName: res.BusinessName,
		PlaceID:      res.PlaceID,
		RotScore:     rot,
		StatusLabel:  status.Label,
		Hot:          res.Hot,
	})

	return res, nil
}

// Wait blocks until in-flight sink deliveries drain. Used on shutdown.
func (a *Auditor) Wait() {
	a.dispatcher.Wait()
}

func validate(req Request) error {
	if strings.TrimSpace(req.Business) == "" && req.PlaceID == "" {
		return eris.Wrap(ErrInvalidRequest, "business name is required")
	}
	return nil
}

// lookup resolves the request to a place detail. Any provider failure is
// logged and reported as not-found.
func (a *Auditor) lookup(ctx context.Context, req Request) (*places.Place, bool) {
	id := req.PlaceID
	if id == "" {
		resp, err := a.provider.TextSearch(ctx, req.Business)
		if err != nil {
			zap.L().Warn("audit: search failed, treating as not found",
				zap.String("query", req.Business),
				zap.Error(err),
			)
			return nil, false
		}
		if len(resp.Places) == 0 {
			return nil, false
		}
		id = resp.Places[0].ID
	}

	place, err := a.provider.GetPlace(ctx, id)
	if err != nil {
		zap.L().Warn("audit: detail fetch failed, treating as not found",
			zap.String("place_id", id),
			zap.Error(err),
		)
		return nil, false
	}
	return place, true
}

func (a *Auditor) fanOut(kind sink.Kind, lead *model.Lead) {
	if len(a.sinks) == 0 {
		return
	}
	ev := &sink.Event{Kind: kind, Lead: lead}
	tasks := make([]Task, 0, len(a.sinks))
	for _, s := range a.sinks {
		tasks = append(tasks, Task{Name: s.Name(), Run: func(ctx context.Context) error {
			return s.Deliver(ctx, ev)
		}})
	}
	a.dispatcher.Go(tasks)
}
