package main

import (
	"context"
	"os"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/gbp-pulse/internal/audit"
	"github.com/sells-group/gbp-pulse/internal/outreach"
	"github.com/sells-group/gbp-pulse/internal/sink"
	"github.com/sells-group/gbp-pulse/internal/store"
	anthropicpkg "github.com/sells-group/gbp-pulse/pkg/anthropic"
	notionpkg "github.com/sells-group/gbp-pulse/pkg/notion"
	"github.com/sells-group/gbp-pulse/pkg/places"
	sfpkg "github.com/sells-group/gbp-pulse/pkg/salesforce"
)

// env bundles the wired auditor and whatever needs closing on exit.
type env struct {
	auditor *audit.Auditor
	store   store.Store
}

func (e *env) Close() {
	e.auditor.Wait()
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			zap.L().Warn("close store", zap.Error(err))
		}
	}
}

// sinkSelection controls which sinks get wired into the auditor.
type sinkSelection struct {
	save   bool // lead store
	notify bool // automation webhook, Slack, CRM, Notion
}

// initAuditor wires the provider, selected sinks, and dispatcher from config.
// Unconfigured sinks are skipped silently.
func initAuditor(ctx context.Context, sel sinkSelection) (*env, error) {
	if cfg.Places.Key == "" {
		return nil, eris.New("places API key is required (GBPPULSE_PLACES_KEY)")
	}

	provider := places.NewClient(cfg.Places.Key,
		places.WithBaseURL(cfg.Places.BaseURL),
		places.WithRateLimit(cfg.Places.RateLimit),
	)

	e := &env{}
	var sinks []sink.Sink

	if sel.save {
		st, err := store.New(ctx, cfg.Store)
		if err != nil {
			return nil, err
		}
		e.store = st
		sinks = append(sinks, sink.NewStoreSink(st))
	}

	if sel.notify {
		if cfg.Automation.WebhookURL != "" {
			var opts []sink.AutomationOption
			if cfg.Anthropic.Key != "" {
				drafter := outreach.NewDrafter(anthropicpkg.NewClient(cfg.Anthropic.Key), cfg.Anthropic)
				opts = append(opts, sink.WithDrafter(drafter))
			}
			sinks = append(sinks, sink.NewAutomationSink(cfg.Automation, opts...))
		}

		if cfg.Slack.WebhookURL != "" {
			sinks = append(sinks, sink.NewSlackSink(cfg.Slack))
		}

		if cfg.Salesforce.ClientID != "" {
			sfClient, err := initSalesforce()
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, sink.NewCRMSink(sfClient))
		}

		if cfg.Notion.Token != "" && cfg.Notion.LeadDB != "" {
			sinks = append(sinks, sink.NewNotionSink(notionpkg.NewClient(cfg.Notion.Token), cfg.Notion))
		}
	}

	e.auditor = audit.New(provider, audit.NewDispatcher(), sinks, cfg.Audit)
	return e, nil
}

func initStore(ctx context.Context) (store.Store, error) {
	return store.New(ctx, cfg.Store)
}

func initSalesforce() (sfpkg.Client, error) {
	pemData, err := os.ReadFile(cfg.Salesforce.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "read salesforce JWT private key")
	}

	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         cfg.Salesforce.LoginURL,
		Username:       cfg.Salesforce.Username,
		ConsumerKey:    cfg.Salesforce.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	return sfpkg.NewClient(sf), nil
}
