package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"smart-todo/internal/draft"
	"smart-todo/internal/model"
	"smart-todo/internal/task"
	pkgLog "smart-todo/pkg/log"
	pkgResponse "smart-todo/pkg/response"
	pkgTelegram "smart-todo/pkg/telegram"
)

type handler struct {
	l      pkgLog.Logger
	uc     task.UseCase
	bot    Sender
	secret string
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It answers 200 at once and processes the message in a background goroutine, because a
// model call can outlast Telegram's webhook timeout.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if !pkgTelegram.ValidSecret(h.secret, c.GetHeader(pkgTelegram.SecretTokenHeader)) {
		h.l.Warnf(ctx, "telegram handler: rejected update with bad secret token")
		pkgResponse.Unauthorized(c)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.ValidationError(c, err)
		return
	}

	// Ignore non-message updates (edits, channel posts, ...)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	go func() {
		// Detach from the request context, which is cancelled once we respond
		bgCtx := context.Background()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(bgCtx, msg.Chat.ID, msgProcessError)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	sc := scopeOf(msg)
	chatKey := fmt.Sprintf("telegram:%d", msg.Chat.ID)

	cmd, arg := splitCommand(text)
	switch cmd {
	case "/start":
		return h.bot.SendMessage(ctx, msg.Chat.ID, msgStart)
	case "/help":
		return h.bot.SendMessage(ctx, msg.Chat.ID, msgHelp)
	case "/cancel":
		h.uc.ResetChat(ctx, sc, chatKey)
		return h.bot.SendMessage(ctx, msg.Chat.ID, msgCancelled)
	case "/parse":
		return h.handleParse(ctx, sc, msg.Chat.ID, arg)
	}

	res, err := h.uc.Chat(ctx, sc, chatKey, text)
	if err != nil {
		return fmt.Errorf("chat: %w", err)
	}

	reply := res.ReplyText
	if res.Draft != nil && !res.Created {
		reply += "\n\n" + formatDraft(*res.Draft)
	}
	return h.bot.SendMessage(ctx, msg.Chat.ID, clip(reply))
}

// handleParse answers /parse with a one-shot draft. Nothing is stored and the chat's
// dialogue is left alone.
func (h *handler) handleParse(ctx context.Context, sc model.Scope, chatID int64, text string) error {
	if text == "" {
		return h.bot.SendMessage(ctx, chatID, msgParseUsage)
	}

	out, err := h.uc.Parse(ctx, sc, task.ParseInput{Text: text})
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	return h.bot.SendMessage(ctx, chatID, formatDraft(out.Draft))
}

// scopeOf maps the sender to a task owner. Channel posts have no sender and fall back to
// the chat.
func scopeOf(msg *pkgTelegram.Message) model.Scope {
	if msg.From == nil {
		return model.NewScope(fmt.Sprintf("telegram_chat_%d", msg.Chat.ID))
	}
	return model.Scope{
		UserID:   fmt.Sprintf("telegram_%d", msg.From.ID),
		Username: msg.From.Username,
	}
}

// clip shortens text to the Bot API message limit, counted in runes.
func clip(text string) string {
	runes := []rune(text)
	if len(runes) <= pkgTelegram.MaxMessageLength {
		return text
	}
	return string(runes[:pkgTelegram.MaxMessageLength-1]) + "…"
}

// splitCommand separates a leading bot command from its argument. "/parse@my_bot x"
// yields ("/parse", "x"). Plain text yields an empty command.
func splitCommand(text string) (string, string) {
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, arg, _ := strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

var priorityLabels = map[draft.Priority]string{
	draft.PriorityUrgent: "紧急",
	draft.PriorityHigh:   "高",
	draft.PriorityMedium: "中",
	draft.PriorityLow:    "低",
}

// formatDraft renders a draft as a short plain-text card.
func formatDraft(d draft.ParsedDraft) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📝 %s\n", d.Title)
	if d.DueDate != nil {
		fmt.Fprintf(&sb, "⏰ %s\n", d.DueDate.Time().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&sb, "优先级：%s\n", priorityLabels[d.Priority])
	fmt.Fprintf(&sb, "分类：%s\n", d.Category)
	if len(d.Tags) > 0 {
		fmt.Fprintf(&sb, "标签：%s\n", strings.Join(d.Tags, "、"))
	}
	if d.EstimatedMinutes != nil {
		fmt.Fprintf(&sb, "预计：%d 分钟\n", *d.EstimatedMinutes)
	}
	fmt.Fprintf(&sb, "置信度：%.0f%%", d.Confidence*100)
	if len(d.UncertainFields) > 0 {
		names := make([]string, len(d.UncertainFields))
		for i, f := range d.UncertainFields {
			names[i] = string(f)
		}
		fmt.Fprintf(&sb, "（待确认：%s）", strings.Join(names, ", "))
	}
	return sb.String()
}
