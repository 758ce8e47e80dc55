package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"smart-todo/internal/draft"
	"smart-todo/internal/model"
)

const dateLayout = "2006-01-02 15:04"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(1).
		PaddingRight(1)

	if title != "" {
		content = StyleHeader.Render(title) + "\n" + content
	}
	return box.Render(content)
}

// RenderDraft prints a draft with its uncertain fields highlighted.
func RenderDraft(d draft.ParsedDraft, loc *time.Location) string {
	uncertain := make(map[draft.Field]bool, len(d.UncertainFields))
	for _, f := range d.UncertainFields {
		uncertain[f] = true
	}
	mark := func(f draft.Field, s string) string {
		if uncertain[f] {
			return s + StyleYellow.Render(" ?")
		}
		return s
	}

	due := StyleDim.Render("无")
	if d.DueDate != nil {
		due = d.DueDate.Time().In(loc).Format(dateLayout)
	}

	lines := []string{
		row("标题", mark(draft.FieldTitle, StyleBold.Render(d.Title))),
		row("截止", mark(draft.FieldDueDate, due)),
		row("优先级", mark(draft.FieldPriority, PriorityStyle(string(d.Priority)).Render(string(d.Priority)))),
		row("分类", mark(draft.FieldCategory, string(d.Category))),
	}
	if d.Description != "" {
		lines = append(lines, row("描述", d.Description))
	}
	if len(d.Tags) > 0 {
		lines = append(lines, row("标签", strings.Join(d.Tags, ", ")))
	}
	if d.EstimatedMinutes != nil {
		lines = append(lines, row("预计", fmt.Sprintf("%d 分钟", *d.EstimatedMinutes)))
	}
	lines = append(lines, row("置信度", confidence(d.Confidence)))

	return RenderBox("任务草稿", strings.Join(lines, "\n"))
}

// RenderTaskList prints tasks one per line, followed by a paging footer.
func RenderTaskList(tasks []model.Task, total, page int, loc *time.Location) string {
	if len(tasks) == 0 {
		return StyleDim.Render("没有任务")
	}

	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(TaskLine(t, loc))
		sb.WriteString("\n")
	}
	sb.WriteString(StyleDim.Render(fmt.Sprintf("第 %d 页，共 %d 个任务", page, total)))
	return sb.String()
}

// TaskLine renders a one-line task summary.
func TaskLine(t model.Task, loc *time.Location) string {
	check := "○"
	if t.Status == model.TaskStatusCompleted {
		check = StyleGreen.Render("✓")
	}

	parts := []string{
		check,
		StyleDim.Render(shortID(t.ID)),
		PriorityStyle(t.Priority).Render(fmt.Sprintf("[%s]", t.Priority)),
		t.Title,
	}
	if t.DueDate != nil {
		parts = append(parts, StyleBlue.Render(t.DueDate.In(loc).Format(dateLayout)))
	}
	parts = append(parts, StyleDim.Render("#"+t.Category))
	return strings.Join(parts, " ")
}

// row renders one "label：value" line of the draft box
func row(label, value string) string {
	return StyleDim.Render(label+"：") + value
}

// confidence colours the score with the same thresholds the auto-create default uses
func confidence(c float64) string {
	s := fmt.Sprintf("%.0f%%", c*100)
	switch {
	case c >= 0.8:
		return StyleGreen.Render(s)
	case c >= 0.5:
		return StyleYellow.Render(s)
	default:
		return StyleRed.Render(s)
	}
}

// shortID is the uuid prefix shown in lists
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
