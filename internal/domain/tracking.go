package domain

// Event types recorded into a session.
const (
	EventInitialVisit   = "initial_visit"
	EventPageview       = "pageview"
	EventFormSubmission = "form_submission"
)

// TimestampLayout is the rendering of every timestamp in this package: session
// IDs, event keys, session boundaries, and outbound payload times. UTC
// ISO-8601 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// TrackingParams captures the attribution context of a session. It is derived
// once, at the first event of a session, from the referrer hostname and the
// page URL query parameters, and never changes afterwards.
type TrackingParams struct {
	Type           string `json:"type"`
	Source         string `json:"source"`
	Medium         string `json:"medium"`
	Campaign       string `json:"campaign"`
	Term           string `json:"term"`
	Content        string `json:"content"`
	ReferrerSource string `json:"referrerSource"`
	Timestamp      string `json:"timestamp"`
}

// SessionEvent is a single recorded interaction. Date always equals the map
// key the event is stored under.
type SessionEvent struct {
	Type string `json:"type"`
	Date string `json:"date"`
}

// Session is the live record of one browsing visit. SessionID is the ISO-8601
// creation timestamp and doubles as the unique key once the session moves
// into history. Events are keyed by their ISO-8601 timestamp; two events in
// the same millisecond collide and the later one wins.
type Session struct {
	SessionID      string                  `json:"sessionId"`
	TrackingParams TrackingParams          `json:"trackingParams"`
	Events         map[string]SessionEvent `json:"events"`
}

// HistoryEntry wraps a completed session with its observed start and end.
type HistoryEntry struct {
	SessionData  Session `json:"sessionData"`
	SessionStart string  `json:"sessionStart"`
	SessionEnd   string  `json:"sessionEnd"`
}

// History is the durable cross-session archive, keyed by session ID.
type History map[string]HistoryEntry

// PageContext is the page state forwarded with each intake request.
type PageContext struct {
	URL      string `json:"url"`
	Referrer string `json:"referrer"`
}

// FormField is one submitted form entry with its label-derived key. Built
// fresh per submission, never persisted.
type FormField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LeadRecord is the normalized contact record extracted from a submitted
// form. Email is a pointer so an unresolved email serializes as null while
// unresolved name/phone fields stay empty strings; downstream consumers
// depend on that distinction.
type LeadRecord struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     *string `json:"email"`
	Phone     string  `json:"phone"`
}
