package extract

import "errors"

var (
	ErrInvalidRuleSet = errors.New("invalid rule set")
	ErrReadRuleSet    = errors.New("read rule set")
)
