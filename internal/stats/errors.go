package stats

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagParse marks malformed timestamps and clock literals.
	ErrTagParse = goerr.NewTag("parse")
	// ErrTagInvalidWindow marks a window whose since is not before its until.
	ErrTagInvalidWindow = goerr.NewTag("invalid_window")
	// ErrTagOutOfWindow marks an incident created on a date the report does not cover.
	ErrTagOutOfWindow = goerr.NewTag("out_of_window")
)
