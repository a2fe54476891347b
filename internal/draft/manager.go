package draft

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/volunteerin/partner-gateway/internal/form"
	"github.com/volunteerin/partner-gateway/internal/model"
)

// Persistence is the slice of the draft repository the manager needs.  The
// MySQL repository implements it; tests plug in an in-memory one.
type Persistence interface {
	Create(ctx context.Context, id, userID string, payload []byte) error
	GetByIDAndOwner(ctx context.Context, id, userID string) ([]byte, error)
	SavePayload(ctx context.Context, id string, payload []byte) error
	Delete(ctx context.Context, id, userID string) error
}

// Manager keeps the live draft sessions.  A session exists in memory while
// a partner is editing; the debounced write-behind keeps the MySQL row
// current so a reload (or another gateway instance after a restart) can
// rehydrate the session from its persisted payload.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	repo     Persistence
	delay    time.Duration
}

// Session is one partner's in-progress draft: the aggregator plus the
// debounce notifier feeding the write-behind.
type Session struct {
	ID     string
	UserID string

	agg      *Aggregator
	notifier *form.Notifier
}

func NewManager(repo Persistence, delay time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		repo:     repo,
		delay:    delay,
	}
}

// Open creates an empty draft, persists its row and returns the session.
func (m *Manager) Open(ctx context.Context, userID string) (*Session, error) {
	id := uuid.NewString()
	payload, err := json.Marshal(model.DraftEvent{})
	if err != nil {
		return nil, err
	}
	if err := m.repo.Create(ctx, id, userID, payload); err != nil {
		return nil, err
	}
	s := m.newSession(id, userID, NewAggregator())
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s, nil
}

// Get returns the live session for id, rehydrating it from the persisted
// payload when the gateway holds no in-memory state (fresh process, or the
// session was closed).  Repository sentinel errors pass through untouched.
func (m *Manager) Get(ctx context.Context, id, userID string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[id]; ok {
		m.mu.Unlock()
		if s.UserID != userID {
			return nil, ErrNotOwner
		}
		return s, nil
	}
	m.mu.Unlock()

	payload, err := m.repo.GetByIDAndOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	var d model.DraftEvent
	if err := json.Unmarshal(payload, &d); err != nil {
		return nil, err
	}
	s := m.newSession(id, userID, NewAggregatorFrom(d))
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	return s, nil
}

// Discard deletes the draft row and tears the session down.  Used both when
// the partner abandons the draft and after a successful submission.
func (m *Manager) Discard(ctx context.Context, id, userID string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok && s.UserID != userID {
		m.mu.Unlock()
		return ErrNotOwner
	}
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.notifier.Stop()
	}
	return m.repo.Delete(ctx, id, userID)
}

// ErrNotOwner is returned when a live session belongs to a different user.
var ErrNotOwner = errors.New("draft belongs to another user")

func (m *Manager) newSession(id, userID string, agg *Aggregator) *Session {
	s := &Session{ID: id, UserID: userID, agg: agg}
	s.notifier = form.NewNotifier(m.delay, func(map[string]any) {
		// The notifier only signals "state settled"; the payload written is
		// always the latest merged draft.  Write-behind failures are logged
		// and absorbed: the in-memory session remains authoritative.
		payload, err := json.Marshal(s.agg.Draft())
		if err != nil {
			log.Printf("draft %s: marshal for write-behind failed: %v", id, err)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := m.repo.SavePayload(ctx, id, payload); err != nil {
			log.Printf("draft %s: write-behind failed: %v", id, err)
		}
	})
	return s
}

// ApplySection normalizes and registers a freshly bound section controller,
// merges its fragment and schedules the debounced write-behind.  It returns
// the section's own draft-tier messages; they surface as warnings next to
// the form but never roll back the state update.
func (s *Session) ApplySection(sec form.Section) []string {
	if n, ok := sec.(form.Normalizer); ok {
		n.Normalize()
	}
	s.agg.Register(sec)
	s.notifier.Notify(map[string]any{"draft": s.ID})
	return sec.Validate()
}

// Draft returns the current merged draft.
func (s *Session) Draft() model.DraftEvent { return s.agg.Draft() }

// SetRelease flips the publish toggle and schedules persistence.
func (s *Session) SetRelease(release bool) {
	s.agg.SetRelease(release)
	s.notifier.Notify(map[string]any{"draft": s.ID})
}

// Validate runs the aggregate pass at the requested tier.
func (s *Session) Validate(publish bool) []string { return s.agg.Validate(publish) }

// Flush forces any pending write-behind to complete now.  The submission
// path calls it so the persisted row matches what is about to be sent.
func (s *Session) Flush() { s.notifier.Flush() }
