package telegram_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"smart-todo/internal/dialogue"
	"smart-todo/internal/draft"
	"smart-todo/internal/model"
	"smart-todo/internal/task"
	"smart-todo/internal/task/delivery/telegram"
	"smart-todo/pkg/log"
	pkgTelegram "smart-todo/pkg/telegram"
)

// ── Mocks ──────────────────────────────────────────────────────────────────

type mockTaskUseCase struct {
	task.UseCase

	mu        sync.Mutex
	chatKeys  []string
	scopes    []model.Scope
	resets    int
	chatOut   dialogue.TurnResult
	chatErr   error
	parseOut  task.ParseOutput
	parseText string
}

func (m *mockTaskUseCase) Chat(ctx context.Context, sc model.Scope, chatKey, text string) (dialogue.TurnResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chatKeys = append(m.chatKeys, chatKey)
	m.scopes = append(m.scopes, sc)
	return m.chatOut, m.chatErr
}

func (m *mockTaskUseCase) ResetChat(ctx context.Context, sc model.Scope, chatKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
}

func (m *mockTaskUseCase) Parse(ctx context.Context, sc model.Scope, input task.ParseInput) (task.ParseOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parseText = input.Text
	return m.parseOut, nil
}

type captureSender struct {
	mu   sync.Mutex
	msgs []string
}

func (s *captureSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, text)
	return nil
}

func (s *captureSender) messages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.msgs...)
}

// ── Test Helpers ───────────────────────────────────────────────────────────

type testEnv struct {
	engine *gin.Engine
	muc    *mockTaskUseCase
	sender *captureSender
}

func newTestEnv(secret string) *testEnv {
	gin.SetMode(gin.TestMode)
	muc := &mockTaskUseCase{}
	sender := &captureSender{}

	engine := gin.New()
	h := telegram.New(log.NewNop(), muc, sender, secret)
	engine.POST("/webhook/telegram", h.HandleWebhook)

	return &testEnv{engine: engine, muc: muc, sender: sender}
}

func sendWebhook(engine *gin.Engine, text string, headers map[string]string) *httptest.ResponseRecorder {
	update := pkgTelegram.Update{
		UpdateID: 1,
		Message: &pkgTelegram.Message{
			MessageID: 1,
			Chat:      &pkgTelegram.Chat{ID: 123},
			From:      &pkgTelegram.User{ID: 456, Username: "alice"},
			Text:      text,
		},
	}
	body, _ := json.Marshal(update)
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func waitForMessages(s *captureSender, atLeast int, timeout time.Duration) []string {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) && len(s.messages()) < atLeast {
		time.Sleep(10 * time.Millisecond)
	}
	return s.messages()
}

func assertContains(t *testing.T, msgs []string, substr string) {
	t.Helper()
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Errorf("expected a message containing %q, got: %v", substr, msgs)
}

// ── Tests ──────────────────────────────────────────────────────────────────

func TestHandleWebhook_InvalidJSON(t *testing.T) {
	env := newTestEnv("")

	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString("{bad json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestHandleWebhook_NonMessageUpdate(t *testing.T) {
	env := newTestEnv("")

	body, _ := json.Marshal(pkgTelegram.Update{UpdateID: 1})
	req, _ := http.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestHandleWebhook_SecretToken(t *testing.T) {
	env := newTestEnv("s3cret")

	if w := sendWebhook(env.engine, "/start", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("missing secret: expected 401, got %d", w.Code)
	}
	if w := sendWebhook(env.engine, "/start", map[string]string{pkgTelegram.SecretTokenHeader: "s3cret"}); w.Code != http.StatusOK {
		t.Errorf("valid secret: expected 200, got %d", w.Code)
	}
}

func TestHandleCommands(t *testing.T) {
	tcs := []struct {
		text string
		want string
	}{
		{text: "/start", want: "欢迎使用"},
		{text: "/help", want: "/parse"},
		{text: "/cancel", want: "已清空"},
		{text: "/parse", want: "用法"},
	}

	for _, tc := range tcs {
		t.Run(tc.text, func(t *testing.T) {
			env := newTestEnv("")
			if w := sendWebhook(env.engine, tc.text, nil); w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			assertContains(t, waitForMessages(env.sender, 1, 500*time.Millisecond), tc.want)
		})
	}
}

func TestHandleCancel_ResetsChat(t *testing.T) {
	env := newTestEnv("")
	sendWebhook(env.engine, "/cancel@smart_todo_bot", nil)
	waitForMessages(env.sender, 1, 500*time.Millisecond)

	env.muc.mu.Lock()
	defer env.muc.mu.Unlock()
	if env.muc.resets != 1 {
		t.Errorf("resets = %d, want 1", env.muc.resets)
	}
}

func TestHandleParse(t *testing.T) {
	env := newTestEnv("")
	env.muc.parseOut = task.ParseOutput{Draft: draft.ParsedDraft{
		Title:           "开会",
		Priority:        draft.PriorityMedium,
		Category:        draft.CategoryWork,
		Tags:            []string{"会议"},
		Confidence:      0.8,
		UncertainFields: []draft.Field{draft.FieldPriority},
	}}

	sendWebhook(env.engine, "/parse 明天下午3点开会", nil)
	msgs := waitForMessages(env.sender, 1, 500*time.Millisecond)

	assertContains(t, msgs, "📝 开会")
	assertContains(t, msgs, "置信度：80%")
	assertContains(t, msgs, "待确认：priority")
	if env.muc.parseText != "明天下午3点开会" {
		t.Errorf("parse text = %q", env.muc.parseText)
	}
}

func TestHandleChat(t *testing.T) {
	env := newTestEnv("")
	env.muc.chatOut = dialogue.TurnResult{
		ReplyText: "好的，我帮你创建明天下午3点的会议任务。",
		Draft:     &draft.ParsedDraft{Title: "开会", Priority: draft.PriorityMedium, Category: draft.CategoryWork},
		State:     dialogue.StateDraftPending,
	}

	sendWebhook(env.engine, "明天下午3点开会", nil)
	msgs := waitForMessages(env.sender, 1, 500*time.Millisecond)

	assertContains(t, msgs, "会议任务")
	assertContains(t, msgs, "📝 开会")

	env.muc.mu.Lock()
	defer env.muc.mu.Unlock()
	if len(env.muc.chatKeys) != 1 || env.muc.chatKeys[0] != "telegram:123" {
		t.Errorf("chat keys = %v", env.muc.chatKeys)
	}
	if env.muc.scopes[0].UserID != "telegram_456" {
		t.Errorf("scope = %+v", env.muc.scopes[0])
	}
}

func TestHandleChat_Error(t *testing.T) {
	env := newTestEnv("")
	env.muc.chatErr = errors.New("boom")

	sendWebhook(env.engine, "明天开会", nil)
	assertContains(t, waitForMessages(env.sender, 1, 500*time.Millisecond), "出错了")
}

func TestHandleChat_LongReplyIsClipped(t *testing.T) {
	env := newTestEnv("")
	env.muc.chatOut = dialogue.TurnResult{ReplyText: strings.Repeat("长", pkgTelegram.MaxMessageLength+10), Created: true}

	sendWebhook(env.engine, "写很长的回复", nil)
	msgs := waitForMessages(env.sender, 1, 500*time.Millisecond)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if n := len([]rune(msgs[0])); n != pkgTelegram.MaxMessageLength {
		t.Errorf("message length = %d runes, want %d", n, pkgTelegram.MaxMessageLength)
	}
}
