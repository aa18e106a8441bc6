// Package form intercepts contact-form submissions: it binds forms exactly
// once, extracts a normalized lead via fuzzy field matching, and forwards
// the lead with full tracking context to the collection API.
package form

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Gordoburrito/tracking-script/internal/crm"
	"github.com/Gordoburrito/tracking-script/internal/domain"
	"github.com/Gordoburrito/tracking-script/internal/dto"
	"github.com/Gordoburrito/tracking-script/internal/lead"
	"github.com/Gordoburrito/tracking-script/internal/match"
)

// PipelineConfig configures the form pipeline
type PipelineConfig struct {
	// Debounce is the quiet window applied to form-discovery signals before
	// a rescan runs. Third-party embeds inject forms in bursts.
	Debounce time.Duration
}

// Pipeline drives form handling end to end. The fuzzy-search capability may
// become ready after the pipeline is constructed; submissions wait on the
// readiness gate before processing.
type Pipeline struct {
	tracker    EventRecorder
	tracking   TrackingView
	dispatcher crm.Enqueuer
	config     PipelineConfig
	log        *zap.Logger

	ready    chan struct{}
	searcher match.Searcher

	mu            sync.Mutex
	bound         map[string]struct{}
	pending       map[string]struct{}
	debounceTimer *time.Timer
}

// NewPipeline creates a form pipeline. SetSearcher must be called before the
// first submission completes.
func NewPipeline(tracker EventRecorder, tracking TrackingView, dispatcher crm.Enqueuer, config PipelineConfig, log *zap.Logger) *Pipeline {
	if config.Debounce <= 0 {
		config.Debounce = 300 * time.Millisecond
	}

	return &Pipeline{
		tracker:    tracker,
		tracking:   tracking,
		dispatcher: dispatcher,
		config:     config,
		log:        log,
		ready:      make(chan struct{}),
		bound:      make(map[string]struct{}),
		pending:    make(map[string]struct{}),
	}
}

// SetSearcher installs the fuzzy-search capability and opens the readiness
// gate. Subsequent calls are ignored.
func (p *Pipeline) SetSearcher(searcher match.Searcher) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.searcher != nil {
		return
	}
	p.searcher = searcher
	close(p.ready)
	p.log.Debug("Fuzzy search capability ready")
}

// NotifyDiscovered records form IDs seen in the document. Rescans are
// debounced; IDs arriving inside the quiet window are coalesced into one
// binding pass.
func (p *Pipeline) NotifyDiscovered(formIDs []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, id := range formIDs {
		if id == "" {
			continue
		}
		p.pending[id] = struct{}{}
	}

	if p.debounceTimer != nil {
		p.debounceTimer.Stop()
	}
	p.debounceTimer = time.AfterFunc(p.config.Debounce, p.bindPending)
}

// bindPending binds every pending form that is not already bound
func (p *Pipeline) bindPending() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for id := range p.pending {
		if _, alreadyBound := p.bound[id]; alreadyBound {
			continue
		}
		p.bound[id] = struct{}{}
		p.log.Info("Form bound", zap.String("form_id", id))
	}
	p.pending = make(map[string]struct{})
}

// Bound reports whether the form with the given ID has been bound
func (p *Pipeline) Bound(formID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.bound[formID]
	return ok
}

// HandleSubmission processes one intercepted submission: it records a
// form_submission event, extracts a lead from the submitted fields, merges
// in the tracking view, and queues the payload for delivery. Every failure
// is logged and swallowed; the host page has already had its default
// submission prevented and must not be disturbed further.
func (p *Pipeline) HandleSubmission(ctx context.Context, req *dto.FormSubmissionRequest) {
	select {
	case <-p.ready:
	case <-ctx.Done():
		p.log.Warn("Submission abandoned before search capability became ready",
			zap.String("form_id", req.FormID))
		return
	}

	// A submission from a form discovery never reported is bound lazily.
	if req.FormID != "" {
		p.mu.Lock()
		p.bound[req.FormID] = struct{}{}
		p.mu.Unlock()
	}

	page := domain.PageContext{URL: req.Page.URL, Referrer: req.Page.Referrer}
	p.tracker.RecordEvent(ctx, domain.EventFormSubmission, page)

	fields := BuildFields(req.Markup, req.Entries)
	matcher := match.NewMatcher(fields, p.searcher)
	record := lead.Extract(matcher)

	payload := dto.LeadPayload{
		FirstName:       record.FirstName,
		LastName:        record.LastName,
		Email:           record.Email,
		Phone:           record.Phone,
		Website:         req.Page.URL,
		TrackingHistory: p.tracking.TrackingData(ctx),
	}

	if params, ok := p.tracking.CurrentParams(ctx); ok {
		payload.ReferrerSource = params.ReferrerSource
		payload.UTMSource = params.Source
		payload.CampaignName = params.Campaign
	}

	p.log.Info("Lead extracted",
		zap.String("form_id", req.FormID),
		zap.Int("field_count", len(fields)),
		zap.Bool("has_email", record.Email != nil))

	p.dispatcher.Enqueue(crm.PathWebsiteLeads, payload)
}
