package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
)

// menuSize is the number of rows a selection shows at once.
const menuSize = 8

var (
	errNotYesNo = errors.New("answer y or n")

	selectTemplates = &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✔ {{ . | faint }}",
	}

	promptTemplates = &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | faint }}: ",
	}
)

// PromptUI asks questions through promptui. It needs a terminal on stdin;
// NewLinePrompter covers piped input.
type PromptUI struct {
	in  io.ReadCloser
	out io.WriteCloser
}

// NewPromptUI creates a PromptUI on the given streams. Nil streams fall back
// to the process ones.
func NewPromptUI(stdin io.Reader, stdout io.Writer) *PromptUI {
	p := &PromptUI{in: os.Stdin, out: os.Stdout}
	if stdin != nil {
		p.in = io.NopCloser(stdin)
	}
	if stdout != nil {
		p.out = writeCloser{stdout}
	}
	return p
}

// Select opens a list with the cursor on defaultValue.
func (p *PromptUI) Select(label string, items []string, defaultValue string) (int, string, error) {
	cursor := 0
	for i, item := range items {
		if item == defaultValue {
			cursor = i
			break
		}
	}

	sel := promptui.Select{
		Label:     label,
		Items:     items,
		Size:      menuSize,
		HideHelp:  true,
		CursorPos: cursor,
		Templates: selectTemplates,
		Stdin:     p.in,
		Stdout:    p.out,
	}
	idx, value, err := sel.Run()
	if err != nil {
		return -1, "", fmt.Errorf("%w: %v", ErrPromptCancelled, err)
	}
	return idx, value, nil
}

// Prompt reads one free-form answer, e.g. a JDK path or a menu option.
func (p *PromptUI) Prompt(label string) (string, error) {
	value, err := p.run(promptui.Prompt{Label: label})
	if err != nil {
		return "", err
	}
	return value, nil
}

// Confirm asks a yes/no question. The answer is parsed like LinePrompter's,
// so piped and interactive sessions accept the same input.
func (p *PromptUI) Confirm(label string, defaultYes bool) (bool, error) {
	value, err := p.run(promptui.Prompt{
		Label: label + " " + yesNoHint(defaultYes),
		Validate: func(answer string) error {
			if _, ok := parseYesNo(answer, defaultYes); !ok {
				return errNotYesNo
			}
			return nil
		},
	})
	if err != nil {
		return false, err
	}
	yes, _ := parseYesNo(value, defaultYes)
	return yes, nil
}

func (p *PromptUI) run(prompt promptui.Prompt) (string, error) {
	prompt.Templates = promptTemplates
	prompt.Stdin = p.in
	prompt.Stdout = p.out
	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPromptCancelled, err)
	}
	return value, nil
}

type writeCloser struct {
	io.Writer
}

func (writeCloser) Close() error {
	return nil
}
