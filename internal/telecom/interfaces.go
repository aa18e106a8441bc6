package telecom

import (
	"context"

	"github.com/Gordoburrito/tracking-script/internal/domain"
)

// TrackingDataProvider supplies the composite tracking view attached to
// click events.
type TrackingDataProvider interface {
	TrackingData(ctx context.Context) domain.History
}
