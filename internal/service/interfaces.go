package service

import (
	"context"

	"github.com/Gordoburrito/tracking-script/internal/domain"
	"github.com/Gordoburrito/tracking-script/internal/dto"
)

// TrackingServicer defines the interface for tracking service operations
type TrackingServicer interface {
	RecordPageview(ctx context.Context, req *dto.PageviewRequest)
	HandleClick(ctx context.Context, req *dto.ClickRequest)
	HandleFormSubmission(ctx context.Context, req *dto.FormSubmissionRequest)
	NotifyFormsDiscovered(ctx context.Context, req *dto.FormsDiscoveredRequest)
	HandleUnload(ctx context.Context)
	TrackingData(ctx context.Context) domain.History
}
