package form

import (
	"context"

	"github.com/Gordoburrito/tracking-script/internal/domain"
)

// EventRecorder records session events for submitted forms.
type EventRecorder interface {
	RecordEvent(ctx context.Context, eventType string, page domain.PageContext)
}

// TrackingView supplies the composite tracking history merged into lead
// payloads, plus the attribution params the CRM reads flattened.
type TrackingView interface {
	TrackingData(ctx context.Context) domain.History
	CurrentParams(ctx context.Context) (domain.TrackingParams, bool)
}
