package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LinePrompter reads one answer per line. It is used when stdin is not a
// terminal, e.g. when answers are piped in.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter reading from in and echoing labels
// to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", fmt.Errorf("%w: end of input", ErrPromptCancelled)
		}
		return "", fmt.Errorf("%w: %v", ErrPromptCancelled, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Select lists items with their position and accepts either the position or
// the item itself. An empty answer picks defaultValue when it is listed.
func (p *LinePrompter) Select(label string, items []string, defaultValue string) (int, string, error) {
	fmt.Fprintln(p.out, label)
	for i, item := range items {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, item)
	}
	for {
		fmt.Fprint(p.out, "> ")
		answer, err := p.readLine()
		if err != nil {
			return -1, "", err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" && defaultValue != "" {
			answer = defaultValue
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(items) {
			return n - 1, items[n-1], nil
		}
		for i, item := range items {
			if item == answer {
				return i, item, nil
			}
		}
		fmt.Fprintf(p.out, "Please choose 1-%d.\n", len(items))
	}
}

// Prompt prints label and returns the next line.
func (p *LinePrompter) Prompt(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	return p.readLine()
}

// Confirm accepts y/yes and n/no in any case. Empty input takes the default;
// anything else asks again.
func (p *LinePrompter) Confirm(label string, defaultYes bool) (bool, error) {
	for {
		fmt.Fprintf(p.out, "%s %s: ", label, yesNoHint(defaultYes))
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}
		if yes, ok := parseYesNo(answer, defaultYes); ok {
			return yes, nil
		}
	}
}
