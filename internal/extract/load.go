package extract

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRuleSet reads a YAML rule table from path. Sections missing from the file keep the
// default zh entries, so an override only needs to list what it changes.
func LoadRuleSet(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadRuleSet, err)
	}
	return ParseRuleSet(data)
}

// ParseRuleSet decodes a YAML rule table.
func ParseRuleSet(data []byte) (*Rules, error) {
	var override RuleSet
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRuleSet, err)
	}
	return merge(DefaultRuleSet(), override).Compile()
}

func merge(base, override RuleSet) RuleSet {
	if len(override.RelativeDays) > 0 {
		base.RelativeDays = override.RelativeDays
	}
	if len(override.Weekdays) > 0 {
		base.Weekdays = override.Weekdays
	}
	if override.ClockPattern != "" {
		base.ClockPattern = override.ClockPattern
	}
	if len(override.AfternoonMarkers) > 0 {
		base.AfternoonMarkers = override.AfternoonMarkers
	}
	if len(override.Priorities) > 0 {
		base.Priorities = override.Priorities
	}
	if len(override.Categories) > 0 {
		base.Categories = override.Categories
	}
	if len(override.Tags) > 0 {
		base.Tags = override.Tags
	}
	if override.HourEstimate != "" {
		base.HourEstimate = override.HourEstimate
	}
	if override.MinuteEstimate != "" {
		base.MinuteEstimate = override.MinuteEstimate
	}
	if len(override.TitleStrip) > 0 {
		base.TitleStrip = override.TitleStrip
	}
	return base
}
