package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smart-todo/internal/draft"
	"smart-todo/internal/llmparse"
	"smart-todo/pkg/datemath"
	"smart-todo/pkg/llmprovider"
	"smart-todo/pkg/log"
)

// Options configures a Machine.
type Options struct {
	Provider    llmprovider.Provider
	Creator     TaskCreator
	CategorySet draft.CategorySet
	Calendar    *datemath.Calendar
	Timeout     time.Duration
	// MaxHistoryTurns caps the turns sent to the model; 0 sends all of them.
	MaxHistoryTurns int
	Now             func() time.Time
}

// Machine drives conversation sessions one turn at a time. It keeps no per-session state itself.
type Machine struct {
	l          log.Logger
	provider   llmprovider.Provider
	creator    TaskCreator
	set        draft.CategorySet
	cal        *datemath.Calendar
	timeout    time.Duration
	maxHistory int
	now        func() time.Time
}

// NewMachine returns a dialogue machine. Zero options fall back to the defaults.
func NewMachine(l log.Logger, opts Options) *Machine {
	m := &Machine{
		l:          l,
		provider:   opts.Provider,
		creator:    opts.Creator,
		set:        opts.CategorySet,
		cal:        opts.Calendar,
		timeout:    opts.Timeout,
		maxHistory: opts.MaxHistoryTurns,
		now:        opts.Now,
	}
	if len(m.set.Members) == 0 {
		m.set = draft.Conversational
	}
	if m.cal == nil {
		m.cal = datemath.NewCalendarIn(time.Local)
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// HandleTurn applies one user utterance to s. It never returns an error: a failed model
// call yields the apology reply and leaves the draft untouched.
func (m *Machine) HandleTurn(ctx context.Context, s *Session, userText string) TurnResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The user turn is recorded even when the model call fails
	now := m.cal.In(m.now())
	s.append(RoleUser, userText, nil, false, now)

	// Exactly one bounded model call per turn
	text, err := llmparse.Complete(ctx, m.provider, m.buildRequest(s, now), m.timeout)
	if err != nil {
		m.l.Warnf(ctx, "%s: session=%s: %v", LogPrefixHandleTurn, s.ID, err)
		return m.apologize(s, now)
	}
	obj, err := llmparse.ExtractJSON(text)
	if err != nil {
		m.l.Warnf(ctx, "%s: session=%s: %v", LogPrefixHandleTurn, s.ID, err)
		return m.apologize(s, now)
	}

	reply := decodeReply(obj, m.set, m.cal.Location())

	if reply.ShouldCreate {
		return m.confirm(ctx, s, reply, userText, now)
	}

	// No taskDraft key keeps the draft; an explicit null drops it
	prev := s.draft
	if reply.HasDraftKey {
		s.setDraft(reply.Draft, userText)
	}

	state := stateOf(s.draft)
	replyText := reply.Text
	if prev != nil && s.draft == nil {
		state = StateCancelled
		replyText = ReplyCancelled
	}

	s.append(RoleAssistant, replyText, s.draft, false, now)
	return TurnResult{ReplyText: replyText, Draft: cloneDraft(s.draft), State: state}
}

// confirm handles shouldCreate. Any inline edit in the reply is applied before creating.
func (m *Machine) confirm(ctx context.Context, s *Session, reply modelReply, userText string, now time.Time) TurnResult {
	if reply.Draft != nil {
		s.setDraft(reply.Draft, userText)
	}
	if reply.Draft == nil || s.draft == nil {
		text := ReplyNothingToSave
		if s.draft != nil {
			text = fmt.Sprintf("确认要创建「%s」吗？", s.draft.Title)
		}
		s.append(RoleAssistant, text, s.draft, false, now)
		return TurnResult{ReplyText: text, Draft: cloneDraft(s.draft), State: stateOf(s.draft)}
	}

	if m.creator == nil {
		m.l.Errorf(ctx, "%s: session=%s: no task creator configured", LogPrefixHandleTurn, s.ID)
		return m.apologize(s, now)
	}

	// The stored raw input is the utterance that started the draft
	origin := s.draftOrigin
	if origin == "" {
		origin = userText
	}
	taskID, err := m.creator.CreateFromDraft(ctx, s.OwnerID, *s.draft, origin)
	if err != nil {
		m.l.Errorf(ctx, "%s: session=%s: create task: %v", LogPrefixHandleTurn, s.ID, err)
		return m.apologize(s, now)
	}

	// Keep the model's wording only if it names the task
	created := s.draft
	text := reply.Text
	if !strings.Contains(text, created.Title) {
		text = fmt.Sprintf(replyCreatedFormat, created.Title)
	}

	s.append(RoleAssistant, text, created, true, now)
	s.setDraft(nil, "")

	return TurnResult{ReplyText: text, Draft: cloneDraft(created), Created: true, State: StateCreated, TaskID: taskID}
}

// apologize answers a failed turn without touching the draft.
func (m *Machine) apologize(s *Session, now time.Time) TurnResult {
	s.append(RoleAssistant, ReplyApology, s.draft, false, now)
	return TurnResult{ReplyText: ReplyApology, Draft: cloneDraft(s.draft), State: stateOf(s.draft)}
}

// buildRequest assembles system prompt, current draft and capped history, oldest turn first.
func (m *Machine) buildRequest(s *Session, now time.Time) *llmprovider.Request {
	sys := llmprovider.TextMessage(llmprovider.RoleSystem, buildSystemPrompt(llmparse.NewTimeContext(m.cal, now), m.set))
	req := &llmprovider.Request{SystemInstruction: &sys, JSONResponse: true}

	if s.draft != nil {
		req.Messages = append(req.Messages, llmprovider.TextMessage(llmprovider.RoleSystem, draftContext(s.draft)))
	}

	// System turns are context for the transcript, not for the model
	history := make([]Turn, 0, len(s.turns))
	for _, t := range s.turns {
		if t.Role != RoleSystem {
			history = append(history, t)
		}
	}
	if m.maxHistory > 0 && len(history) > m.maxHistory {
		history = history[len(history)-m.maxHistory:]
	}
	for _, t := range history {
		req.Messages = append(req.Messages, llmprovider.TextMessage(string(t.Role), t.Text))
	}
	return req
}

func stateOf(d *draft.ParsedDraft) State {
	if d == nil {
		return StateNoDraft
	}
	return StateDraftPending
}
