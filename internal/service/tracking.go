package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gordoburrito/tracking-script/internal/domain"
	"github.com/Gordoburrito/tracking-script/internal/dto"
	"github.com/Gordoburrito/tracking-script/internal/form"
	"github.com/Gordoburrito/tracking-script/internal/telecom"
	"github.com/Gordoburrito/tracking-script/internal/tracker"
)

// TrackingService fans incoming browser signals out to the session tracker,
// the telecom detector, and the form pipeline. Every operation is
// best-effort: callers get no failure signal because tracking must never
// block or break the host page.
type TrackingService struct {
	tracker  *tracker.Tracker
	detector *telecom.Detector
	pipeline *form.Pipeline
	log      *zap.Logger
}

// NewTrackingService creates a new tracking service
func NewTrackingService(t *tracker.Tracker, detector *telecom.Detector, pipeline *form.Pipeline, log *zap.Logger) *TrackingService {
	return &TrackingService{
		tracker:  t,
		detector: detector,
		pipeline: pipeline,
		log:      log,
	}
}

// RecordPageview records a page load, or any other event type the shim
// forwards through the pageview path.
func (s *TrackingService) RecordPageview(ctx context.Context, req *dto.PageviewRequest) {
	eventType := req.Type
	if eventType == "" {
		eventType = domain.EventPageview
	}

	s.tracker.RecordEvent(ctx, eventType, domain.PageContext{
		URL:      req.Page.URL,
		Referrer: req.Page.Referrer,
	})
}

// HandleClick hands a forwarded click to the telecom detector
func (s *TrackingService) HandleClick(ctx context.Context, req *dto.ClickRequest) {
	s.detector.HandleClick(ctx, req.Href, domain.PageContext{
		URL:      req.Page.URL,
		Referrer: req.Page.Referrer,
	})
}

// HandleFormSubmission drives the form pipeline for one submission
func (s *TrackingService) HandleFormSubmission(ctx context.Context, req *dto.FormSubmissionRequest) {
	s.pipeline.HandleSubmission(ctx, req)
}

// NotifyFormsDiscovered forwards discovered form IDs to the pipeline's
// debounced binding registry.
func (s *TrackingService) NotifyFormsDiscovered(_ context.Context, req *dto.FormsDiscoveredRequest) {
	s.pipeline.NotifyDiscovered(req.FormIDs)
}

// HandleUnload archives the live session into durable history
func (s *TrackingService) HandleUnload(ctx context.Context) {
	s.tracker.TransferToHistory(ctx)
}

// TrackingData returns the composite tracking view
func (s *TrackingService) TrackingData(ctx context.Context) domain.History {
	return s.tracker.TrackingData(ctx)
}
