package http

import (
	"errors"
	"strings"
	"time"

	"smart-todo/internal/dialogue"
	"smart-todo/internal/draft"
	"smart-todo/internal/model"
	"smart-todo/internal/task"
)

// --- Request DTOs ---

// parseReq is the body of POST /tasks/parse
type parseReq struct {
	Text       string `json:"text"       binding:"required,max=2000"`
	Mode       string `json:"mode"       binding:"omitempty,oneof=model rules"`
	AutoCreate bool   `json:"autoCreate"`
}

func (r parseReq) validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errors.New("text is required")
	}
	return nil
}

func (r parseReq) toInput() task.ParseInput {
	return task.ParseInput{
		Text:       r.Text,
		Mode:       task.ParseMode(r.Mode),
		AutoCreate: r.AutoCreate,
	}
}

// ---

// createReq is the body of POST /tasks. Category is kept verbatim when set.
type createReq struct {
	Title            string           `json:"title"            binding:"required,max=500"`
	Description      string           `json:"description"      binding:"max=5000"`
	DueDate          *draft.Timestamp `json:"dueDate"          swaggertype:"string" example:"2025-03-05T15:00:00+08:00"`
	Priority         string           `json:"priority"         binding:"omitempty,oneof=urgent high medium low"`
	Category         string           `json:"category"`
	EstimatedMinutes *int             `json:"estimatedMinutes" binding:"omitempty,min=1"`
	Tags             []string         `json:"tags"`
	RawInput         string           `json:"rawInput"`
}

func (r createReq) validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

func (r createReq) toInput() task.CreateInput {
	return task.CreateInput{
		Draft: draft.ParsedDraft{
			Title:            r.Title,
			Description:      r.Description,
			DueDate:          r.DueDate,
			Priority:         draft.Priority(r.Priority),
			Category:         draft.Category(r.Category),
			EstimatedMinutes: r.EstimatedMinutes,
			Tags:             r.Tags,
		},
		RawInput: r.RawInput,
		Source:   "manual",
	}
}

// ---

// listReq holds the GET /tasks query
type listReq struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// Filters are validated by the use case, which owns the vocabularies.
func (r listReq) validate() error { return nil }

func (r listReq) toInput() task.ListInput {
	return task.ListInput{
		Status:   r.Status,
		Priority: r.Priority,
		Category: r.Category,
		Page:     r.Page,
		Limit:    r.Limit,
	}
}

// ---

type sendMessageReq struct {
	SessionID string `json:"-"`
	Text      string `json:"text" binding:"required,max=2000"`
}

func (r sendMessageReq) validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errors.New("text is required")
	}
	return nil
}

func (r sendMessageReq) toInput() task.SendMessageInput {
	return task.SendMessageInput{SessionID: r.SessionID, Text: r.Text}
}

// --- Response DTOs ---

type taskResp struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	RawInput         string           `json:"rawInput,omitempty"`
	Category         string           `json:"category"`
	Tags             []string         `json:"tags"`
	Priority         string           `json:"priority"`
	Status           string           `json:"status"`
	DueDate          *draft.Timestamp `json:"dueDate,omitempty" swaggertype:"string"`
	EstimatedMinutes *int             `json:"estimatedMinutes,omitempty"`
	CompletedAt      *time.Time       `json:"completedAt,omitempty"`
	AIConfidence     *float64         `json:"aiConfidence,omitempty"`
	UncertainFields  []string         `json:"uncertainFields,omitempty"`
	CalendarLink     string           `json:"calendarLink,omitempty"`
	Version          int              `json:"version"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func newTaskResp(t model.Task) taskResp {
	resp := taskResp{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		RawInput:         t.RawInput,
		Category:         t.Category,
		Tags:             t.Tags,
		Priority:         t.Priority,
		Status:           string(t.Status),
		EstimatedMinutes: t.EstimatedMinutes,
		CompletedAt:      t.CompletedAt,
		AIConfidence:     t.AIConfidence,
		UncertainFields:  t.AIMetadata.UncertainFields,
		CalendarLink:     t.CalendarLink,
		Version:          t.Version,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
	if t.DueDate != nil {
		resp.DueDate = draft.NewTimestamp(*t.DueDate)
	}
	return resp
}

type parseResp struct {
	Draft   draft.ParsedDraft `json:"draft"`
	Outcome string            `json:"outcome"`
	Mode    string            `json:"mode"`
	Task    *taskResp         `json:"task,omitempty"`
}

func (h *handler) newParseResp(out task.ParseOutput) parseResp {
	resp := parseResp{Draft: out.Draft, Outcome: string(out.Outcome), Mode: string(out.Mode)}
	if out.Task != nil {
		t := newTaskResp(*out.Task)
		resp.Task = &t
	}
	return resp
}

type listResp struct {
	Tasks []taskResp `json:"tasks"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

func (h *handler) newListResp(out task.ListOutput) listResp {
	tasks := make([]taskResp, len(out.Tasks))
	for i, t := range out.Tasks {
		tasks[i] = newTaskResp(t)
	}
	return listResp{Tasks: tasks, Total: out.Total, Page: out.Page, Limit: out.Limit}
}

type sessionResp struct {
	ID        string             `json:"id"`
	Turns     []dialogue.Turn    `json:"turns"`
	Draft     *draft.ParsedDraft `json:"draft"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func (h *handler) newSessionResp(v dialogue.View) sessionResp {
	turns := v.Turns
	if turns == nil {
		turns = []dialogue.Turn{}
	}
	return sessionResp{ID: v.ID, Turns: turns, Draft: v.Draft, CreatedAt: v.CreatedAt, UpdatedAt: v.UpdatedAt}
}

type turnResp struct {
	Reply   string             `json:"reply"`
	Draft   *draft.ParsedDraft `json:"draft"`
	Created bool               `json:"created"`
	State   string             `json:"state"`
	TaskID  string             `json:"taskId,omitempty"`
}

func (h *handler) newTurnResp(r dialogue.TurnResult) turnResp {
	return turnResp{Reply: r.ReplyText, Draft: r.Draft, Created: r.Created, State: string(r.State), TaskID: r.TaskID}
}
