package extract

import (
	"fmt"
	"regexp"
	"time"

	"smart-todo/internal/draft"
)

// RuleSet is the locale table driving every extractor. Patterns are Go regular expressions.
type RuleSet struct {
	RelativeDays     []RelativeDay  `yaml:"relative_days"`
	Weekdays         []WeekdayToken `yaml:"weekdays"`
	ClockPattern     string         `yaml:"clock_pattern"`
	AfternoonMarkers []string       `yaml:"afternoon_markers"`
	Priorities       []PriorityRule `yaml:"priorities"`
	Categories       []CategoryRule `yaml:"categories"`
	Tags             []TagRule      `yaml:"tags"`
	HourEstimate     string         `yaml:"hour_estimate"`
	MinuteEstimate   string         `yaml:"minute_estimate"`
	TitleStrip       []string       `yaml:"title_strip"`
}

// RelativeDay is a literal token meaning now plus Offset days.
type RelativeDay struct {
	Token  string `yaml:"token"`
	Offset int    `yaml:"offset"`
}

// WeekdayToken is a literal token naming a weekday, 0 being Sunday.
type WeekdayToken struct {
	Token   string `yaml:"token"`
	Weekday int    `yaml:"weekday"`
}

// PriorityRule assigns Priority when Pattern matches. Rules are tried in order, urgent first.
type PriorityRule struct {
	Pattern  string         `yaml:"pattern"`
	Priority draft.Priority `yaml:"priority"`
}

// CategoryRule maps a pattern onto the first of Categories that the active set contains.
// A rule with no member in the active set is skipped.
type CategoryRule struct {
	Pattern    string           `yaml:"pattern"`
	Categories []draft.Category `yaml:"categories"`
}

// TagRule adds Tag when Pattern matches. Every matching rule contributes.
type TagRule struct {
	Pattern string `yaml:"pattern"`
	Tag     string `yaml:"tag"`
}

// DefaultRuleSet is the zh table.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		RelativeDays: []RelativeDay{
			{Token: "今天", Offset: 0},
			{Token: "明天", Offset: 1},
			{Token: "后天", Offset: 2},
		},
		Weekdays: []WeekdayToken{
			{"周日", 0}, {"周一", 1}, {"周二", 2}, {"周三", 3}, {"周四", 4}, {"周五", 5}, {"周六", 6},
		},
		ClockPattern:     `(上午|下午|早上|晚上)?(\d{1,2})[点时]`,
		AfternoonMarkers: []string{"下午", "晚上"},
		Priorities: []PriorityRule{
			{Pattern: `紧急|立刻|马上`, Priority: draft.PriorityUrgent},
			{Pattern: `重要|高优先级|(?:^|[^低])优先`, Priority: draft.PriorityHigh},
			{Pattern: `不急|有空|低优先级`, Priority: draft.PriorityLow},
		},
		Categories: []CategoryRule{
			{Pattern: `开会|工作|项目|汇报|报告`, Categories: []draft.Category{draft.CategoryWork}},
			{Pattern: `学习|看书|课程|复习|阅读`, Categories: []draft.Category{draft.CategoryStudy}},
			{Pattern: `锻炼|跑步|健身|体检|运动`, Categories: []draft.Category{draft.CategoryHealth}},
			{Pattern: `买|购物|超市`, Categories: []draft.Category{draft.CategoryShopping}},
			{Pattern: `约|聚餐|电影|朋友`, Categories: []draft.Category{draft.CategoryPersonal, draft.CategorySocial}},
			{Pattern: `账单|还款|理财`, Categories: []draft.Category{draft.CategoryFinance}},
		},
		Tags: []TagRule{
			{Pattern: `会议|开会`, Tag: "会议"},
			{Pattern: `学习|复习`, Tag: "学习"},
			{Pattern: `运动|锻炼|健身`, Tag: "运动"},
			{Pattern: `购物|买`, Tag: "购物"},
		},
		HourEstimate:   `(\d+)\s*个?小时`,
		MinuteEstimate: `(\d+)\s*分钟`,
		TitleStrip: []string{
			`(今天|明天|后天|下?周[一二三四五六日])`,
			`(上午|下午|早上|晚上)?\d{1,2}[点时]`,
		},
	}
}

// Rules is a compiled RuleSet.
type Rules struct {
	relative  []RelativeDay
	weekdays  []WeekdayToken
	clock     *regexp.Regexp
	afternoon map[string]bool
	priority  []priorityMatcher
	category  []categoryMatcher
	tags      []tagMatcher
	hours     *regexp.Regexp
	minutes   *regexp.Regexp
	strip     []*regexp.Regexp
}

// Compiled forms of the rule types above.
type priorityMatcher struct {
	re       *regexp.Regexp
	priority draft.Priority
}

type categoryMatcher struct {
	re         *regexp.Regexp
	categories []draft.Category
}

type tagMatcher struct {
	re  *regexp.Regexp
	tag string
}

// whitespace collapses runs left behind by the title strippers
var whitespace = regexp.MustCompile(`\s+`)

// Compile validates rs and compiles every pattern.
func (rs RuleSet) Compile() (*Rules, error) {
	r := &Rules{
		relative:  rs.RelativeDays,
		weekdays:  rs.Weekdays,
		afternoon: make(map[string]bool, len(rs.AfternoonMarkers)),
	}

	// Validate weekdays and index the afternoon markers
	for _, w := range rs.Weekdays {
		if w.Weekday < int(time.Sunday) || w.Weekday > int(time.Saturday) {
			return nil, fmt.Errorf("%w: weekday %d for %q", ErrInvalidRuleSet, w.Weekday, w.Token)
		}
	}
	for _, m := range rs.AfternoonMarkers {
		r.afternoon[m] = true
	}

	// Clock and estimate patterns
	var err error
	if r.clock, err = compile("clock_pattern", rs.ClockPattern); err != nil {
		return nil, err
	}
	if r.clock.NumSubexp() != 2 {
		return nil, fmt.Errorf("%w: clock_pattern needs a period group and an hour group", ErrInvalidRuleSet)
	}
	if r.hours, err = compile("hour_estimate", rs.HourEstimate); err != nil {
		return nil, err
	}
	if r.minutes, err = compile("minute_estimate", rs.MinuteEstimate); err != nil {
		return nil, err
	}

	// Keyword tables keep their order; the first priority and category match wins
	for _, p := range rs.Priorities {
		re, err := compile("priorities", p.Pattern)
		if err != nil {
			return nil, err
		}
		if _, ok := draft.ParsePriority(string(p.Priority)); !ok {
			return nil, fmt.Errorf("%w: unknown priority %q", ErrInvalidRuleSet, p.Priority)
		}
		r.priority = append(r.priority, priorityMatcher{re: re, priority: p.Priority})
	}
	for _, c := range rs.Categories {
		re, err := compile("categories", c.Pattern)
		if err != nil {
			return nil, err
		}
		r.category = append(r.category, categoryMatcher{re: re, categories: c.Categories})
	}
	for _, t := range rs.Tags {
		re, err := compile("tags", t.Pattern)
		if err != nil {
			return nil, err
		}
		r.tags = append(r.tags, tagMatcher{re: re, tag: t.Tag})
	}
	for _, s := range rs.TitleStrip {
		re, err := compile("title_strip", s)
		if err != nil {
			return nil, err
		}
		r.strip = append(r.strip, re)
	}

	return r, nil
}

// compile rejects empty patterns and tags errors with the YAML field name
func compile(field, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrInvalidRuleSet, field)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRuleSet, field, err)
	}
	return re, nil
}

// MustDefaultRules compiles DefaultRuleSet and panics if the built-in table is broken.
func MustDefaultRules() *Rules {
	r, err := DefaultRuleSet().Compile()
	if err != nil {
		panic(err)
	}
	return r
}
