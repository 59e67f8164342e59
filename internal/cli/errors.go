package cli

import "errors"

var (
	// ErrPromptCancelled indicates that the user aborted an interactive prompt.
	ErrPromptCancelled = errors.New("prompt cancelled")

	ErrEmptyMenuCommand   = errors.New("no menu option entered")
	ErrUnknownMenuCommand = errors.New("unknown menu option")
	ErrMissingMenuIndex   = errors.New("menu option requires a jdk id")
	ErrInvalidMenuIndex   = errors.New("jdk id must be a non-negative number")
)
