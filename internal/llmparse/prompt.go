package llmparse

import (
	"fmt"
	"strings"
	"time"

	"smart-todo/internal/draft"
	"smart-todo/pkg/datemath"
)

const (
	dateLayout      = "2006-01-02"
	localTimeLayout = "2006-01-02 15:04:05"
	isoLayout       = "2006-01-02T15:04:05-07:00"
)

var weekdayNames = [...]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// TimeContext is the set of concrete dates a prompt anchors relative expressions to.
type TimeContext struct {
	LocalTime       string
	ISOTime         string
	Timezone        string
	Weekday         string
	Today           string
	Tomorrow        string
	DayAfter        string
	EndOfWeek       string
	TomorrowExample string
}

// NewTimeContext computes the prompt dates for now in cal's timezone.
func NewTimeContext(cal *datemath.Calendar, now time.Time) TimeContext {
	now = cal.In(now)
	tomorrow := cal.AddDays(now, 1)
	return TimeContext{
		LocalTime:       now.Format(localTimeLayout),
		ISOTime:         now.Format(isoLayout),
		Timezone:        "UTC" + cal.Offset(now),
		Weekday:         weekdayNames[now.Weekday()],
		Today:           now.Format(dateLayout),
		Tomorrow:        tomorrow.Format(dateLayout),
		DayAfter:        cal.AddDays(now, 2).Format(dateLayout),
		EndOfWeek:       cal.EndOfWeek(now).Format(isoLayout),
		TomorrowExample: cal.AtClock(tomorrow, 15, 0).Format(isoLayout),
	}
}

// Pairs returns the {{placeholder}} substitutions for the time block.
func (tc TimeContext) Pairs() []string {
	return []string{
		"{{localTime}}", tc.LocalTime,
		"{{isoTime}}", tc.ISOTime,
		"{{timezone}}", tc.Timezone,
		"{{weekday}}", tc.Weekday,
		"{{today}}", tc.Today,
		"{{tomorrow}}", tc.Tomorrow,
		"{{dayAfter}}", tc.DayAfter,
		"{{endOfWeek}}", tc.EndOfWeek,
		"{{tomorrowExample}}", tc.TomorrowExample,
	}
}

// categoryKeywords are the prompt hints per category; they mirror the rule tables.
var categoryKeywords = map[draft.Category]string{
	draft.CategoryWork:     `"开会"、"会议"、"项目"、"工作"、"汇报"`,
	draft.CategoryStudy:    `"学习"、"看书"、"课程"、"复习"`,
	draft.CategoryHealth:   `"运动"、"健身"、"跑步"、"体检"`,
	draft.CategoryShopping: `"买"、"购物"、"超市"`,
	draft.CategoryFinance:  `"账单"、"还款"、"理财"`,
	draft.CategorySocial:   `"聚会"、"约会"、"朋友"`,
	draft.CategoryPersonal: `"约"、"聚餐"、"电影"、"朋友"`,
}

// CategoryRules renders one line per category of set that has keyword hints.
// lineFormat receives the keyword list and the category.
func CategoryRules(set draft.CategorySet, lineFormat string) string {
	var lines []string
	for _, c := range set.Members {
		if kw, ok := categoryKeywords[c]; ok {
			lines = append(lines, fmt.Sprintf(lineFormat, kw, c))
		}
	}
	return strings.Join(lines, "\n")
}

func buildParsePrompt(raw string, tc TimeContext, set draft.CategorySet) string {
	pairs := append(tc.Pairs(),
		"{{categories}}", set.Labels(),
		"{{categoryRules}}", CategoryRules(set, "   - 包含%s = %s"),
		"{{defaultCategory}}", string(set.Default),
		"{{userInput}}", raw,
	)
	return strings.NewReplacer(pairs...).Replace(parsePromptTemplate)
}
