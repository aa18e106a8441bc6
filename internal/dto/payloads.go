package dto

import "github.com/Gordoburrito/tracking-script/internal/domain"

// LeadPayload is the body posted to the CRM lead-collection endpoint. It
// merges the extracted lead record with the full tracking-history composite
// view and the flattened attribution fields the CRM reads directly.
type LeadPayload struct {
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	Email           *string        `json:"email"`
	Phone           string         `json:"phone"`
	ReferrerSource  string         `json:"referrer_source"`
	UTMSource       string         `json:"utm_source"`
	CampaignName    string         `json:"campaign_name"`
	Website         string         `json:"website"`
	TrackingHistory domain.History `json:"trackingHistory"`
}

// TelecomClickPayload is the body posted to the CRM telecom-click endpoint.
type TelecomClickPayload struct {
	Phone           string         `json:"phone"`
	Time            string         `json:"time"`
	HrefType        string         `json:"href_type"`
	Website         string         `json:"website"`
	TrackingHistory domain.History `json:"trackingHistory"`
}
