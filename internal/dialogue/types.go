package dialogue

import (
	"sync"
	"time"

	"smart-todo/internal/draft"
)

// Role of a turn's author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// State is inferred per turn from the model reply; it is never stored.
type State string

const (
	StateNoDraft      State = "no_draft"
	StateDraftPending State = "draft_pending"
	StateCreated      State = "created"
	StateCancelled    State = "cancelled"
)

// Turn is one appended message. Turns are never edited after they are appended.
type Turn struct {
	ID            int64              `json:"id"`
	Role          Role               `json:"role"`
	Text          string             `json:"text"`
	Timestamp     time.Time          `json:"timestamp"`
	DraftSnapshot *draft.ParsedDraft `json:"draftSnapshot,omitempty"`
	Created       bool               `json:"created,omitempty"`
}

// Session is one conversation. All mutation goes through Machine.HandleTurn, which holds mu,
// so turns of one session are applied strictly in arrival order.
type Session struct {
	ID        string
	OwnerID   string
	CreatedAt time.Time

	mu          sync.Mutex
	turns       []Turn
	draft       *draft.ParsedDraft
	draftOrigin string
	nextTurnID  int64
	updatedAt   time.Time
}

// NewSession creates an empty session.
func NewSession(id, ownerID string, now time.Time) *Session {
	return &Session{ID: id, OwnerID: ownerID, CreatedAt: now, updatedAt: now}
}

// View is a consistent copy of a session.
type View struct {
	ID        string             `json:"id"`
	OwnerID   string             `json:"ownerId"`
	Turns     []Turn             `json:"turns"`
	Draft     *draft.ParsedDraft `json:"draft"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Snapshot copies the session under its lock.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)
	return View{
		ID:        s.ID,
		OwnerID:   s.OwnerID,
		Turns:     turns,
		Draft:     cloneDraft(s.draft),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.updatedAt,
	}
}

func (s *Session) append(role Role, text string, snapshot *draft.ParsedDraft, created bool, now time.Time) Turn {
	s.nextTurnID++
	t := Turn{
		ID:            s.nextTurnID,
		Role:          role,
		Text:          text,
		Timestamp:     now,
		DraftSnapshot: cloneDraft(snapshot),
		Created:       created,
	}
	s.turns = append(s.turns, t)
	s.updatedAt = now
	return t
}

// setDraft replaces the current draft and remembers which utterance started it.
func (s *Session) setDraft(d *draft.ParsedDraft, utterance string) {
	if d != nil && s.draft == nil {
		s.draftOrigin = utterance
	}
	if d == nil {
		s.draftOrigin = ""
	}
	s.draft = d
}

func cloneDraft(d *draft.ParsedDraft) *draft.ParsedDraft {
	if d == nil {
		return nil
	}
	c := d.Clone()
	return &c
}

// TurnResult is what HandleTurn reports to the caller.
type TurnResult struct {
	ReplyText string             `json:"replyText"`
	Draft     *draft.ParsedDraft `json:"draft"`
	Created   bool               `json:"created"`
	State     State              `json:"state"`
	TaskID    string             `json:"taskId,omitempty"`
}
