package tracker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/Gordoburrito/tracking-script/internal/domain"
	"github.com/Gordoburrito/tracking-script/internal/storage/memory"
)

var testPage = domain.PageContext{
	URL:      "https://www.example.com/contact-us/?utm_source=google&utm_campaign=spring",
	Referrer: "https://www.google.com/search?q=dentist",
}

// newTestTracker returns a tracker whose clock advances one millisecond per
// reading, so consecutive events never collide on their timestamp key.
func newTestTracker(t *testing.T) (*Tracker, *memory.Store, *memory.Store) {
	t.Helper()

	transient := memory.NewStore()
	durable := memory.NewStore()
	tr := NewTracker(transient, durable, zap.NewNop())

	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time {
		current = current.Add(time.Millisecond)
		return current
	}

	return tr, transient, durable
}

func TestTracker_RecordEvent_CreatesSession(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	tr.RecordEvent(ctx, domain.EventPageview, testPage)

	session, ok, err := tr.loadSession(ctx)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, session.SessionID)
	assert.Len(t, session.Events, 1)
	for key, event := range session.Events {
		assert.Equal(t, domain.EventPageview, event.Type)
		assert.Equal(t, key, event.Date)
	}
	assert.Equal(t, "google", session.TrackingParams.Source)
	assert.Equal(t, "spring", session.TrackingParams.Campaign)
	assert.Equal(t, "N/A", session.TrackingParams.Medium)
	assert.Equal(t, "google", session.TrackingParams.ReferrerSource)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, session.SessionID)
}

func TestTracker_RecordEvent_SessionStableAcrossEvents(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	first, _, _ := tr.loadSession(ctx)

	tr.RecordEvent(ctx, domain.EventFormSubmission, testPage)
	tr.RecordEvent(ctx, "scroll", testPage)
	second, _, _ := tr.loadSession(ctx)

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, first.TrackingParams, second.TrackingParams)
	assert.Len(t, second.Events, 3)
}

func TestTracker_RecordEvent_CorruptSessionDropsEvent(t *testing.T) {
	tr, transient, _ := newTestTracker(t)
	ctx := context.Background()

	assert.NoError(t, transient.Set(ctx, keySession, `{not json`))

	tr.RecordEvent(ctx, domain.EventPageview, testPage)

	// The event is dropped and the unreadable value stays as it was; no
	// session is synthesized over it.
	raw, ok, err := transient.Get(ctx, keySession)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{not json`, raw)
}

// unreadableStore wraps a memory store and fails reads of one key.
type unreadableStore struct {
	*memory.Store
	failKey string
}

func (s *unreadableStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == s.failKey {
		return "", false, errors.New("io error")
	}
	return s.Store.Get(ctx, key)
}

func TestTracker_RecordEvent_ReadFailureDropsEvent(t *testing.T) {
	inner := memory.NewStore()
	transient := &unreadableStore{Store: inner, failKey: keySession}
	tr := NewTracker(transient, memory.NewStore(), zap.NewNop())
	ctx := context.Background()

	tr.RecordEvent(ctx, domain.EventPageview, testPage)

	_, ok, err := inner.Get(ctx, keySession)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestTracker_FirstVisitFlag(t *testing.T) {
	tr, transient, _ := newTestTracker(t)
	ctx := context.Background()

	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	first, _, _ := tr.loadSession(ctx)
	assert.Equal(t, domain.EventInitialVisit, first.TrackingParams.Type)

	// A later session on the same durable scope is a plain pageview.
	assert.NoError(t, transient.Delete(ctx, keySession))
	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	second, _, _ := tr.loadSession(ctx)
	assert.Equal(t, domain.EventPageview, second.TrackingParams.Type)
}

func TestTracker_TransferToHistory(t *testing.T) {
	tr, transient, _ := newTestTracker(t)
	ctx := context.Background()

	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	session, _, _ := tr.loadSession(ctx)

	tr.TransferToHistory(ctx)

	_, stillLive, err := transient.Get(ctx, keySession)
	assert.NoError(t, err)
	assert.False(t, stillLive)

	history := tr.loadHistory(ctx)
	assert.Len(t, history, 1)
	entry, ok := history[session.SessionID]
	assert.True(t, ok)
	assert.Equal(t, session, entry.SessionData)
	assert.Equal(t, session.TrackingParams.Timestamp, entry.SessionStart)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`, entry.SessionEnd)
}

func TestTracker_TransferToHistory_NoLiveSessionIsNoop(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	tr.TransferToHistory(ctx)
	tr.TransferToHistory(ctx)

	assert.Empty(t, tr.loadHistory(ctx))
}

func TestTracker_TransferToHistory_HealsLegacyArray(t *testing.T) {
	tr, _, durable := newTestTracker(t)
	ctx := context.Background()

	// A legacy deployment persisted history as an array.
	assert.NoError(t, durable.Set(ctx, keyHistory, `["old","entries"]`))

	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	tr.TransferToHistory(ctx)

	history := tr.loadHistory(ctx)
	assert.Len(t, history, 1)
}

func TestTracker_TransferToHistory_HealsCorruptHistory(t *testing.T) {
	tr, _, durable := newTestTracker(t)
	ctx := context.Background()

	assert.NoError(t, durable.Set(ctx, keyHistory, `{not json`))

	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	tr.TransferToHistory(ctx)

	assert.Len(t, tr.loadHistory(ctx), 1)
}

// failingStore wraps a memory store and fails writes of one key.
type failingStore struct {
	*memory.Store
	failKey string
}

func (s *failingStore) Set(ctx context.Context, key string, value string) error {
	if key == s.failKey {
		return errors.New("disk full")
	}
	return s.Store.Set(ctx, key, value)
}

func TestTracker_TransferToHistory_ClearsSessionEvenWhenWriteFails(t *testing.T) {
	transient := memory.NewStore()
	durable := &failingStore{Store: memory.NewStore(), failKey: keyHistory}
	tr := NewTracker(transient, durable, zap.NewNop())
	ctx := context.Background()

	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	tr.TransferToHistory(ctx)

	_, stillLive, err := transient.Get(ctx, keySession)
	assert.NoError(t, err)
	assert.False(t, stillLive)
}

func TestTracker_TransferToHistory_CorruptSessionLeftInPlace(t *testing.T) {
	tr, transient, _ := newTestTracker(t)
	ctx := context.Background()

	assert.NoError(t, transient.Set(ctx, keySession, `{not json`))

	tr.TransferToHistory(ctx)

	raw, ok, err := transient.Get(ctx, keySession)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{not json`, raw)
	assert.Empty(t, tr.loadHistory(ctx))
}

func TestTracker_TrackingData_MergesLiveSession(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	// Two archived sessions plus a live one.
	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	tr.TransferToHistory(ctx)
	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	tr.TransferToHistory(ctx)
	tr.RecordEvent(ctx, domain.EventPageview, testPage)

	data := tr.TrackingData(ctx)
	assert.Len(t, data, 3)

	session, _, _ := tr.loadSession(ctx)
	live, ok := data[session.SessionID]
	assert.True(t, ok)
	assert.Equal(t, session, live.SessionData)
	assert.Empty(t, live.SessionEnd)
}

func TestTracker_TrackingData_ReadOnlyAndRepeatable(t *testing.T) {
	tr, _, _ := newTestTracker(t)
	ctx := context.Background()

	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	tr.TransferToHistory(ctx)
	tr.RecordEvent(ctx, domain.EventPageview, testPage)

	first := tr.TrackingData(ctx)
	second := tr.TrackingData(ctx)

	assert.Equal(t, first, second)
	assert.Len(t, second, 2)
}

func TestTracker_TrackingData_IgnoresUnreadableLiveSession(t *testing.T) {
	tr, transient, _ := newTestTracker(t)
	ctx := context.Background()

	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	tr.TransferToHistory(ctx)
	assert.NoError(t, transient.Set(ctx, keySession, `{not json`))

	assert.Len(t, tr.TrackingData(ctx), 1)
}

func TestTracker_CurrentParams(t *testing.T) {
	tr, transient, _ := newTestTracker(t)
	ctx := context.Background()

	_, ok := tr.CurrentParams(ctx)
	assert.False(t, ok)

	tr.RecordEvent(ctx, domain.EventPageview, testPage)
	params, ok := tr.CurrentParams(ctx)
	assert.True(t, ok)
	assert.Equal(t, "google", params.Source)

	// After transfer the archived params still resolve.
	tr.TransferToHistory(ctx)
	_, live, _ := transient.Get(ctx, keySession)
	assert.False(t, live)

	params, ok = tr.CurrentParams(ctx)
	assert.True(t, ok)
	assert.Equal(t, "google", params.Source)
}

func TestReferrerSource(t *testing.T) {
	assert.Equal(t, "google", referrerSource("https://www.google.com/search"))
	assert.Equal(t, "bing", referrerSource("https://bing.com/"))
	assert.Equal(t, "Direct or no-referrer", referrerSource(""))
	assert.Equal(t, "Direct or no-referrer", referrerSource("not a url"))
	assert.Equal(t, "localhost", referrerSource("http://localhost:3000/page"))
}
