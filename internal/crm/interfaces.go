package crm

import "context"

// Endpoint paths on the collection API.
const (
	PathWebsiteLeads  = "/api/v1/website_leads"
	PathTelecomClicks = "/api/v1/telecom_clicks"
)

// Poster defines the interface for delivering a JSON payload to the
// collection API.
type Poster interface {
	Post(ctx context.Context, path string, payload interface{}) error
}

// Enqueuer defines the interface for handing a payload to the detached
// dispatcher. Enqueue never blocks and never reports delivery outcome.
type Enqueuer interface {
	Enqueue(path string, payload interface{})
}
