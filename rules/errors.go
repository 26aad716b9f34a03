package rules

import "errors"

var (
	// ErrInvalidRules indicates a rules file could not be decoded or is inconsistent.
	ErrInvalidRules = errors.New("invalid rules")

	// ErrRulesUnreadable indicates a rules file could not be opened.
	ErrRulesUnreadable = errors.New("rules file unreadable")
)
