// Package tracker owns the event-session state machine: session creation,
// event accumulation, transfer into durable history, and the composite
// tracking view.
package tracker

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Gordoburrito/tracking-script/internal/domain"
	"github.com/Gordoburrito/tracking-script/internal/storage"
)

// Storage keys shared with any past deployments of the tracking layer; the
// durable history key in particular may hold legacy content that must be
// healed, not trusted.
const (
	keySession     = "sessionTrackingData"
	keyHistory     = "trackingHistory"
	keyVisitedFlag = "hasVisitedBefore"
)

const directReferrer = "Direct or no-referrer"

// Tracker records visitor events into a live session and archives completed
// sessions. All failures are logged and swallowed: tracking is best-effort
// and must never disturb the host page.
type Tracker struct {
	transient storage.Store
	durable   storage.Store
	now       func() time.Time
	log       *zap.Logger
}

// NewTracker creates a tracker over the given transient and durable stores
func NewTracker(transient, durable storage.Store, log *zap.Logger) *Tracker {
	return &Tracker{
		transient: transient,
		durable:   durable,
		now:       time.Now,
		log:       log,
	}
}

func (t *Tracker) timestamp() string {
	return t.now().UTC().Format(domain.TimestampLayout)
}

// RecordEvent appends an event of the given type to the live session,
// creating a fresh session first when none exists. A storage or decode
// failure drops the event and leaves the stored value untouched; a fresh
// session is only ever synthesized over a genuinely absent one.
func (t *Tracker) RecordEvent(ctx context.Context, eventType string, page domain.PageContext) {
	session, ok, err := t.loadSession(ctx)
	if err != nil {
		t.log.Error("Failed to load session, dropping event",
			zap.String("event_type", eventType),
			zap.Error(err))
		return
	}
	if !ok {
		session = domain.Session{
			SessionID:      t.timestamp(),
			TrackingParams: t.collectInitialVisitParams(ctx, page),
			Events:         make(map[string]domain.SessionEvent),
		}
	}

	timestamp := t.timestamp()
	session.Events[timestamp] = domain.SessionEvent{
		Type: eventType,
		Date: timestamp,
	}

	encoded, err := json.Marshal(session)
	if err != nil {
		t.log.Error("Failed to encode session, dropping event",
			zap.String("event_type", eventType),
			zap.Error(err))
		return
	}

	if err := t.transient.Set(ctx, keySession, string(encoded)); err != nil {
		t.log.Error("Failed to persist session, dropping event",
			zap.String("event_type", eventType),
			zap.Error(err))
		return
	}

	t.log.Debug("Event recorded",
		zap.String("event_type", eventType),
		zap.String("session_id", session.SessionID))
}

// TransferToHistory archives the live session into durable history and clears
// the transient store. The live session is cleared even when the durable
// write fails: the page is unloading and a retry will never come.
func (t *Tracker) TransferToHistory(ctx context.Context) {
	session, ok, err := t.loadSession(ctx)
	if err != nil {
		t.log.Error("Failed to load session, skipping transfer", zap.Error(err))
		return
	}
	if !ok {
		return
	}

	history := t.loadHistory(ctx)
	history[session.SessionID] = domain.HistoryEntry{
		SessionData:  session,
		SessionStart: session.TrackingParams.Timestamp,
		SessionEnd:   t.timestamp(),
	}

	if encoded, err := json.Marshal(history); err != nil {
		t.log.Error("Failed to encode history", zap.Error(err))
	} else if err := t.durable.Set(ctx, keyHistory, string(encoded)); err != nil {
		t.log.Error("Failed to persist history", zap.Error(err))
	}

	if err := t.transient.Delete(ctx, keySession); err != nil {
		t.log.Error("Failed to clear live session", zap.Error(err))
	}

	t.log.Debug("Session transferred to history",
		zap.String("session_id", session.SessionID))
}

// TrackingData returns the durable history merged with the live session, if
// any, inserted under its own ID. The live entry wins a same-ID conflict in
// the returned snapshot only; nothing is mutated.
func (t *Tracker) TrackingData(ctx context.Context) domain.History {
	history := t.loadHistory(ctx)

	if session, ok, err := t.loadSession(ctx); err != nil {
		t.log.Warn("Ignoring unreadable live session", zap.Error(err))
	} else if ok {
		history[session.SessionID] = domain.HistoryEntry{
			SessionData:  session,
			SessionStart: session.TrackingParams.Timestamp,
		}
	}

	return history
}

// CurrentParams returns the live session's tracking params when a session
// exists, falling back to the earliest archived session. The second return
// reports whether any params were found.
func (t *Tracker) CurrentParams(ctx context.Context) (domain.TrackingParams, bool) {
	if session, ok, err := t.loadSession(ctx); err != nil {
		t.log.Warn("Ignoring unreadable live session", zap.Error(err))
	} else if ok {
		return session.TrackingParams, true
	}

	history := t.loadHistory(ctx)
	earliest := ""
	for id := range history {
		if earliest == "" || id < earliest {
			earliest = id
		}
	}
	if earliest == "" {
		return domain.TrackingParams{}, false
	}
	return history[earliest].SessionData.TrackingParams, true
}

// loadSession reads the live session from transient storage. ok reports a
// session being present; a read or decode failure is returned as an error,
// distinct from absence, so callers never synthesize over a value that is
// merely unreadable.
func (t *Tracker) loadSession(ctx context.Context) (domain.Session, bool, error) {
	raw, ok, err := t.transient.Get(ctx, keySession)
	if err != nil {
		return domain.Session{}, false, err
	}
	if !ok {
		return domain.Session{}, false, nil
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return domain.Session{}, false, err
	}
	if session.Events == nil {
		session.Events = make(map[string]domain.SessionEvent)
	}

	return session, true, nil
}

// loadHistory reads durable history, self-healing any missing, corrupt, or
// wrong-shaped value (a legacy deployment stored an array) into an empty
// mapping. Prior malformed content is discarded.
func (t *Tracker) loadHistory(ctx context.Context) domain.History {
	raw, ok, err := t.durable.Get(ctx, keyHistory)
	if err != nil {
		t.log.Error("Failed to read tracking history", zap.Error(err))
		return domain.History{}
	}
	if !ok {
		return domain.History{}
	}

	var history domain.History
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		t.log.Warn("Resetting malformed tracking history", zap.Error(err))
		return domain.History{}
	}
	if history == nil {
		history = domain.History{}
	}

	return history
}

// collectInitialVisitParams derives a session's attribution context from the
// page the first event was recorded on. The first collection ever also sets
// the durable first-visit flag, which is never cleared.
func (t *Tracker) collectInitialVisitParams(ctx context.Context, page domain.PageContext) domain.TrackingParams {
	_, visited, err := t.durable.Get(ctx, keyVisitedFlag)
	if err != nil {
		t.log.Error("Failed to read first-visit flag", zap.Error(err))
		visited = true
	}

	visitType := domain.EventPageview
	if !visited {
		visitType = domain.EventInitialVisit
		if err := t.durable.Set(ctx, keyVisitedFlag, "true"); err != nil {
			t.log.Error("Failed to set first-visit flag", zap.Error(err))
		}
	}

	params := domain.TrackingParams{
		Type:           visitType,
		Source:         "N/A",
		Medium:         "N/A",
		Campaign:       "N/A",
		Term:           "N/A",
		Content:        "N/A",
		ReferrerSource: referrerSource(page.Referrer),
		Timestamp:      t.timestamp(),
	}

	if u, err := url.Parse(page.URL); err == nil {
		query := u.Query()
		setIfPresent(&params.Source, query, "utm_source")
		setIfPresent(&params.Medium, query, "utm_medium")
		setIfPresent(&params.Campaign, query, "utm_campaign")
		setIfPresent(&params.Term, query, "utm_term")
		setIfPresent(&params.Content, query, "utm_content")
	}

	return params
}

func setIfPresent(dst *string, query url.Values, key string) {
	if value := query.Get(key); value != "" {
		*dst = value
	}
}

// referrerSource reduces a referrer URL to its registrable label: the
// second-level part of the hostname ("google" for www.google.com).
func referrerSource(referrer string) string {
	if referrer == "" {
		return directReferrer
	}

	u, err := url.Parse(referrer)
	if err != nil || u.Hostname() == "" {
		return directReferrer
	}

	labels := strings.Split(u.Hostname(), ".")
	if len(labels) < 2 {
		return u.Hostname()
	}
	return labels[len(labels)-2]
}
