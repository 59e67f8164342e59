package cli

import "strings"

// Prompter collects answers from the operator. Implementations return
// ErrPromptCancelled (wrapped) when input ends or the operator aborts.
type Prompter interface {
	Select(label string, items []string, defaultValue string) (int, string, error)
	Prompt(label string) (string, error)
	Confirm(label string, defaultYes bool) (bool, error)
}

// parseYesNo reads y/yes and n/no in any case; blank takes the default.
// ok is false for anything else.
func parseYesNo(answer string, defaultYes bool) (yes, ok bool) {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return defaultYes, true
	case "y", "yes":
		return true, true
	case "n", "no":
		return false, true
	}
	return false, false
}

func yesNoHint(defaultYes bool) string {
	if defaultYes {
		return "[Y/n]"
	}
	return "[y/N]"
}
