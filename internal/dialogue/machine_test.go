package dialogue

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-todo/internal/draft"
	"smart-todo/pkg/datemath"
	"smart-todo/pkg/llmprovider"
	"smart-todo/pkg/log"
)

// scriptedProvider answers each call with the next scripted reply.
type scriptedProvider struct {
	mu       sync.Mutex
	replies  []string
	errs     []error
	requests []*llmprovider.Request
}

func (p *scriptedProvider) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := len(p.requests)
	p.requests = append(p.requests, req)
	if i < len(p.errs) && p.errs[i] != nil {
		return nil, p.errs[i]
	}
	if i >= len(p.replies) {
		return nil, errors.New("no scripted reply")
	}
	return &llmprovider.Response{Content: llmprovider.TextMessage(llmprovider.RoleAssistant, p.replies[i])}, nil
}

func (p *scriptedProvider) Name() string  { return "scripted" }
func (p *scriptedProvider) Model() string { return "scripted-1" }

type fakeCreator struct {
	calls []createCall
	err   error
}

type createCall struct {
	owner string
	draft draft.ParsedDraft
	raw   string
}

func (c *fakeCreator) CreateFromDraft(ctx context.Context, ownerID string, d draft.ParsedDraft, rawInput string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.calls = append(c.calls, createCall{owner: ownerID, draft: d, raw: rawInput})
	return "task-1", nil
}

const (
	draftReply   = `{"text":"好的，我帮你创建明天下午3点的会议任务。","taskDraft":{"title":"开会","dueDate":"2025-03-05T15:00:00+08:00","priority":"medium","category":"work","tags":["会议"]},"shouldCreate":false}`
	confirmReply = `{"text":"✅ 任务「开会」已创建！还有其他事情要安排吗？","taskDraft":{"title":"开会","dueDate":"2025-03-05T15:00:00+08:00","priority":"medium","category":"work","tags":["会议"]},"shouldCreate":true}`
	cancelReply  = `{"text":"好的","taskDraft":null,"shouldCreate":false}`
)

func newTestMachine(t *testing.T, p llmprovider.Provider, c TaskCreator, maxHistory int) *Machine {
	t.Helper()
	cal, err := datemath.NewCalendar("Asia/Shanghai")
	require.NoError(t, err)
	return NewMachine(log.NewNop(), Options{
		Provider:        p,
		Creator:         c,
		CategorySet:     draft.Conversational,
		Calendar:        cal,
		Timeout:         50 * time.Millisecond,
		MaxHistoryTurns: maxHistory,
		Now: func() time.Time {
			return time.Date(2025, 3, 4, 10, 0, 0, 0, cal.Location())
		},
	})
}

func newTestSession() *Session {
	return NewSession("s-1", "alice", time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC))
}

func TestHandleTurn_DraftThenConfirm(t *testing.T) {
	p := &scriptedProvider{replies: []string{draftReply, confirmReply}}
	c := &fakeCreator{}
	m := newTestMachine(t, p, c, 0)
	s := newTestSession()

	first := m.HandleTurn(context.Background(), s, "明天下午3点开会")
	assert.False(t, first.Created)
	assert.Equal(t, StateDraftPending, first.State)
	require.NotNil(t, first.Draft)
	assert.Equal(t, "开会", first.Draft.Title)

	second := m.HandleTurn(context.Background(), s, "好的")
	assert.True(t, second.Created)
	assert.Equal(t, StateCreated, second.State)
	assert.Equal(t, "task-1", second.TaskID)
	assert.Contains(t, second.ReplyText, "开会")
	require.NotNil(t, second.Draft)
	assert.Equal(t, "开会", second.Draft.Title)

	require.Len(t, c.calls, 1)
	assert.Equal(t, "alice", c.calls[0].owner)
	assert.Equal(t, "明天下午3点开会", c.calls[0].raw)

	view := s.Snapshot()
	assert.Nil(t, view.Draft)
	require.Len(t, view.Turns, 4)
	assert.True(t, view.Turns[3].Created)
	for i, turn := range view.Turns {
		assert.Equal(t, int64(i+1), turn.ID)
	}

	// the second request carries the draft context and the whole history
	req := p.requests[1]
	require.NotNil(t, req.SystemInstruction)
	assert.True(t, req.JSONResponse)
	require.Len(t, req.Messages, 4)
	assert.Equal(t, llmprovider.RoleSystem, req.Messages[0].Role)
	assert.True(t, strings.HasPrefix(req.Messages[0].Text(), draftContextPrefix))
	assert.Equal(t, "明天下午3点开会", req.Messages[1].Text())
	assert.Equal(t, llmprovider.RoleAssistant, req.Messages[2].Role)
	assert.Equal(t, "好的", req.Messages[3].Text())
}

func TestHandleTurn_Cancel(t *testing.T) {
	p := &scriptedProvider{replies: []string{draftReply, cancelReply}}
	m := newTestMachine(t, p, &fakeCreator{}, 0)
	s := newTestSession()

	m.HandleTurn(context.Background(), s, "明天下午3点开会")
	res := m.HandleTurn(context.Background(), s, "算了")

	assert.False(t, res.Created)
	assert.Nil(t, res.Draft)
	assert.Equal(t, StateCancelled, res.State)
	assert.Equal(t, ReplyCancelled, res.ReplyText)
	assert.Nil(t, s.Snapshot().Draft)
}

func TestHandleTurn_ModelFailureKeepsDraft(t *testing.T) {
	tcs := map[string]*scriptedProvider{
		"network error": {replies: []string{draftReply}, errs: []error{nil, errors.New("connection refused")}},
		"not json":      {replies: []string{draftReply, "我不知道"}},
		"json array":    {replies: []string{draftReply, `[1,2]`}},
	}

	for name, p := range tcs {
		t.Run(name, func(t *testing.T) {
			m := newTestMachine(t, p, &fakeCreator{}, 0)
			s := newTestSession()

			m.HandleTurn(context.Background(), s, "明天下午3点开会")
			res := m.HandleTurn(context.Background(), s, "改成4点")

			assert.Equal(t, ReplyApology, res.ReplyText)
			assert.False(t, res.Created)
			require.NotNil(t, res.Draft)
			assert.Equal(t, "开会", res.Draft.Title)
			assert.Equal(t, StateDraftPending, res.State)
		})
	}
}

func TestHandleTurn_NoProvider(t *testing.T) {
	m := newTestMachine(t, nil, &fakeCreator{}, 0)
	res := m.HandleTurn(context.Background(), newTestSession(), "你好")

	assert.Equal(t, ReplyApology, res.ReplyText)
	assert.Equal(t, StateNoDraft, res.State)
}

func TestHandleTurn_CreatorFailure(t *testing.T) {
	p := &scriptedProvider{replies: []string{draftReply, confirmReply}}
	m := newTestMachine(t, p, &fakeCreator{err: errors.New("db down")}, 0)
	s := newTestSession()

	m.HandleTurn(context.Background(), s, "明天下午3点开会")
	res := m.HandleTurn(context.Background(), s, "好的")

	assert.Equal(t, ReplyApology, res.ReplyText)
	assert.False(t, res.Created)
	require.NotNil(t, s.Snapshot().Draft)
}

func TestHandleTurn_CreateWithoutDraft(t *testing.T) {
	p := &scriptedProvider{replies: []string{`{"text":"好的","taskDraft":null,"shouldCreate":true}`}}
	c := &fakeCreator{}
	m := newTestMachine(t, p, c, 0)

	res := m.HandleTurn(context.Background(), newTestSession(), "确认")

	assert.False(t, res.Created)
	assert.Equal(t, ReplyNothingToSave, res.ReplyText)
	assert.Empty(t, c.calls)
}

func TestHandleTurn_EditAppliedBeforeConfirm(t *testing.T) {
	edit := `{"text":"好的","taskDraft":{"title":"季度汇报","priority":"high","category":"work"},"shouldCreate":true}`
	p := &scriptedProvider{replies: []string{draftReply, edit}}
	c := &fakeCreator{}
	m := newTestMachine(t, p, c, 0)
	s := newTestSession()

	m.HandleTurn(context.Background(), s, "明天下午3点开会")
	res := m.HandleTurn(context.Background(), s, "用季度汇报作为标题，确认")

	require.True(t, res.Created)
	require.Len(t, c.calls, 1)
	assert.Equal(t, "季度汇报", c.calls[0].draft.Title)
	assert.Equal(t, draft.PriorityHigh, c.calls[0].draft.Priority)
	assert.Contains(t, res.ReplyText, "季度汇报")
}

func TestHandleTurn_MissingDraftKeepsCurrent(t *testing.T) {
	p := &scriptedProvider{replies: []string{draftReply, `{"text":"今天天气不错"}`}}
	m := newTestMachine(t, p, &fakeCreator{}, 0)
	s := newTestSession()

	m.HandleTurn(context.Background(), s, "明天下午3点开会")
	res := m.HandleTurn(context.Background(), s, "天气怎么样")

	assert.Equal(t, "今天天气不错", res.ReplyText)
	require.NotNil(t, res.Draft)
	assert.Equal(t, StateDraftPending, res.State)
}

func TestHandleTurn_EmptyTextFallsBack(t *testing.T) {
	p := &scriptedProvider{replies: []string{`{"text":"","taskDraft":null}`}}
	m := newTestMachine(t, p, &fakeCreator{}, 0)

	res := m.HandleTurn(context.Background(), newTestSession(), "？")

	assert.Equal(t, ReplyNotUnderstood, res.ReplyText)
	assert.Equal(t, StateNoDraft, res.State)
}

func TestHandleTurn_HistoryCap(t *testing.T) {
	chat := `{"text":"嗯","taskDraft":null}`
	p := &scriptedProvider{replies: []string{chat, chat, chat}}
	m := newTestMachine(t, p, &fakeCreator{}, 3)
	s := newTestSession()

	for _, in := range []string{"一", "二", "三"} {
		m.HandleTurn(context.Background(), s, in)
	}

	last := p.requests[2]
	require.Len(t, last.Messages, 3)
	assert.Equal(t, "二", last.Messages[0].Text())
	assert.Equal(t, "三", last.Messages[2].Text())
}

func TestHandleTurn_SystemPrompt(t *testing.T) {
	p := &scriptedProvider{replies: []string{cancelReply}}
	m := newTestMachine(t, p, &fakeCreator{}, 0)

	m.HandleTurn(context.Background(), newTestSession(), "你好")

	sys := p.requests[0].SystemInstruction.Text()
	assert.Contains(t, sys, "2025-03-05")
	assert.Contains(t, sys, "UTC+08:00")
	assert.Contains(t, sys, "work|personal|health|study|shopping|other")
	assert.NotContains(t, sys, "{{")
}

func TestHandleTurn_SerializedPerSession(t *testing.T) {
	chat := `{"text":"嗯","taskDraft":null}`
	replies := make([]string, 20)
	for i := range replies {
		replies[i] = chat
	}
	p := &scriptedProvider{replies: replies}
	m := newTestMachine(t, p, &fakeCreator{}, 0)
	s := newTestSession()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.HandleTurn(context.Background(), s, "hi")
		}()
	}
	wg.Wait()

	turns := s.Snapshot().Turns
	require.Len(t, turns, 40)
	for i := 0; i < len(turns); i += 2 {
		assert.Equal(t, RoleUser, turns[i].Role)
		assert.Equal(t, RoleAssistant, turns[i+1].Role)
	}
}

func TestDecodeReply_Truthy(t *testing.T) {
	tcs := map[string]struct {
		in   any
		want bool
	}{
		"true":         {in: true, want: true},
		"false":        {in: false, want: false},
		"one":          {in: float64(1), want: true},
		"zero":         {in: float64(0), want: false},
		"string true":  {in: "true", want: true},
		"string false": {in: "false", want: false},
		"string zero":  {in: "0", want: false},
		"unreadable":   {in: "yes", want: false},
		"empty string": {in: "", want: false},
		"object":       {in: map[string]any{}, want: false},
		"nil":          {in: nil, want: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			r := decodeReply(map[string]any{"shouldCreate": tc.in}, draft.Conversational, time.UTC)
			assert.Equal(t, tc.want, r.ShouldCreate)
		})
	}
}
