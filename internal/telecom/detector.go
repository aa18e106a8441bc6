// Package telecom classifies clicks on phone and SMS links and ships them,
// enriched with tracking history, to the collection API.
package telecom

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Gordoburrito/tracking-script/internal/crm"
	"github.com/Gordoburrito/tracking-script/internal/domain"
	"github.com/Gordoburrito/tracking-script/internal/dto"
)

// Href types reported to the collection API.
const (
	HrefTypeTel = "tel"
	HrefTypeSMS = "sms"
)

// Classify inspects an anchor href. It returns the href type and the raw
// phone string (the href with its scheme prefix stripped); ok is false for
// anything that is not a telecom link.
func Classify(href string) (hrefType, phone string, ok bool) {
	switch {
	case strings.HasPrefix(href, "tel:"):
		return HrefTypeTel, strings.TrimPrefix(href, "tel:"), true
	case strings.HasPrefix(href, "sms:"):
		return HrefTypeSMS, strings.TrimPrefix(href, "sms:"), true
	default:
		return "", "", false
	}
}

// Detector turns telecom link clicks into collection API events.
type Detector struct {
	tracking   TrackingDataProvider
	dispatcher crm.Enqueuer
	now        func() time.Time
	log        *zap.Logger
}

// NewDetector creates a new telecom click detector
func NewDetector(tracking TrackingDataProvider, dispatcher crm.Enqueuer, log *zap.Logger) *Detector {
	return &Detector{
		tracking:   tracking,
		dispatcher: dispatcher,
		now:        time.Now,
		log:        log,
	}
}

// HandleClick processes one forwarded click. Clicks that did not land on a
// telecom link are silently ignored; the shim forwards every click and the
// agent decides which ones matter.
func (d *Detector) HandleClick(ctx context.Context, href string, page domain.PageContext) {
	if href == "" {
		return
	}

	hrefType, phone, ok := Classify(href)
	if !ok {
		return
	}

	payload := dto.TelecomClickPayload{
		Phone:           phone,
		Time:            d.now().UTC().Format(domain.TimestampLayout),
		HrefType:        hrefType,
		Website:         page.URL,
		TrackingHistory: d.tracking.TrackingData(ctx),
	}

	d.log.Info("Telecom link clicked",
		zap.String("href_type", hrefType),
		zap.String("website", page.URL))

	d.dispatcher.Enqueue(crm.PathTelecomClicks, payload)
}
