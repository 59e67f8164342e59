package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/OpenGG/jdksw/internal/jdksw"
	"github.com/OpenGG/jdksw/internal/jdksw/backup"
	"github.com/OpenGG/jdksw/internal/jdksw/domain"
)

// MenuAction is one option of the interactive menu.
type MenuAction int

const (
	MenuAdd MenuAction = iota
	MenuChange
	MenuDelete
	MenuShow
	MenuRecover
	MenuBackup
	MenuExit
)

// MenuCommand is a parsed menu line.
type MenuCommand struct {
	Action MenuAction
	// Index is only set for MenuChange and MenuDelete.
	Index int
}

const menuText = `
=== jdksw ===
A      add a JDK
C <id> make JDK <id> the active one
D <id> delete JDK <id>
S      show registered JDKs
B      back up the current search path
R      restore the backed up search path
E      save and exit`

// ParseMenuCommand parses lines like "A", "C 1" or "d 0". Letters are
// case-insensitive and extra fields after the id are ignored.
func ParseMenuCommand(line string) (MenuCommand, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return MenuCommand{}, ErrEmptyMenuCommand
	}

	var cmd MenuCommand
	switch strings.ToUpper(fields[0]) {
	case "A":
		cmd.Action = MenuAdd
	case "C":
		cmd.Action = MenuChange
	case "D":
		cmd.Action = MenuDelete
	case "S":
		cmd.Action = MenuShow
	case "R":
		cmd.Action = MenuRecover
	case "B":
		cmd.Action = MenuBackup
	case "E":
		cmd.Action = MenuExit
	default:
		return MenuCommand{}, fmt.Errorf("%w: %q", ErrUnknownMenuCommand, fields[0])
	}

	if cmd.Action != MenuChange && cmd.Action != MenuDelete {
		return cmd, nil
	}
	if len(fields) < 2 {
		return MenuCommand{}, ErrMissingMenuIndex
	}
	index, err := strconv.Atoi(fields[1])
	if err != nil || index < 0 {
		return MenuCommand{}, fmt.Errorf("%w: %q", ErrInvalidMenuIndex, fields[1])
	}
	cmd.Index = index
	return cmd, nil
}

// Menu is the interactive session loop. Every error is reported and the
// loop continues; only E (or the end of input) leaves it.
type Menu struct {
	mgr      *jdksw.Manager
	prompter Prompter
	out      io.Writer
	errOut   io.Writer
}

// NewMenu creates a Menu.
func NewMenu(mgr *jdksw.Manager, prompter Prompter, out, errOut io.Writer) *Menu {
	return &Menu{mgr: mgr, prompter: prompter, out: out, errOut: errOut}
}

// Run shows the host's JDKs and then reads menu lines until exit. The
// configuration is saved on the way out.
func (m *Menu) Run() error {
	m.show()
	for {
		fmt.Fprintln(m.out, menuText)
		line, err := m.prompter.Prompt("Option")
		if err != nil {
			if errors.Is(err, ErrPromptCancelled) {
				break
			}
			return err
		}

		cmd, err := ParseMenuCommand(line)
		if err != nil {
			m.report(err)
			continue
		}
		if cmd.Action == MenuExit {
			break
		}
		if err := m.dispatch(cmd); err != nil {
			m.report(err)
		}
	}

	if err := m.mgr.Save(); err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Configuration saved to %s\n", m.mgr.ConfigFile())
	return nil
}

func (m *Menu) dispatch(cmd MenuCommand) error {
	switch cmd.Action {
	case MenuAdd:
		return m.add()
	case MenuChange:
		return m.change(cmd.Index)
	case MenuDelete:
		return m.remove(cmd.Index)
	case MenuShow:
		m.show()
		return nil
	case MenuRecover:
		if err := m.mgr.Restore(); err != nil {
			return err
		}
		fmt.Fprintln(m.out, "Search path restored from backup.")
		return nil
	case MenuBackup:
		if _, err := m.mgr.Backup(); err != nil {
			return err
		}
		fmt.Fprintln(m.out, "Current search path backed up.")
		return nil
	}
	return nil
}

func (m *Menu) add() error {
	reportCurrent(m.mgr, m.out)

	root, err := m.prompter.Prompt("New JDK path")
	if err != nil {
		return err
	}
	candidate, err := m.mgr.Probe(root)
	if err != nil {
		return err
	}

	useVersion, err := m.prompter.Confirm(fmt.Sprintf("Use detected version %q as the name?", candidate.Version), true)
	if err != nil {
		return err
	}
	name := ""
	if !useVersion {
		if name, err = m.prompter.Prompt("Name"); err != nil {
			return err
		}
	}

	entry, err := m.mgr.Register(candidate, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Added %s (%s)\n", entry.Name, entry.InstallRoot)
	m.show()
	return nil
}

func (m *Menu) change(index int) error {
	if _, err := m.mgr.Entry(index); err != nil {
		return err
	}
	answer, err := m.prompter.Prompt("Back up the current search path first? [Y/n]")
	if err != nil {
		return err
	}
	result, err := m.mgr.Activate(index, backup.ShouldCapture(answer))
	if err != nil {
		return err
	}
	printActivation(m.out, result)
	return nil
}

func (m *Menu) remove(index int) error {
	entry, err := m.mgr.Remove(index)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Removed %s (%s)\n", entry.Name, entry.InstallRoot)
	m.show()
	return nil
}

func (m *Menu) show() {
	renderEntries(m.out, m.mgr.HostName(), m.mgr.Entries(), activeIndex(m.mgr))
}

func (m *Menu) report(err error) {
	fmt.Fprintf(m.errOut, "Error: %v\n", err)
	if isRangeError(err) {
		m.show()
	}
}

// activeIndex is the entry owning the active launcher, or -1. Lookup
// failures only cost the marker.
func activeIndex(mgr *jdksw.Manager) int {
	active, _ := mgr.Current()
	return active.Index
}

func reportCurrent(mgr *jdksw.Manager, w io.Writer) {
	active, err := mgr.Current()
	switch {
	case errors.Is(err, domain.ErrActiveJdkNotFound):
		fmt.Fprintln(w, "No java launcher is on the search path.")
	case err != nil && active.Launcher == "":
		fmt.Fprintf(w, "Could not resolve the active java launcher: %v\n", err)
	case err != nil:
		fmt.Fprintf(w, "Active launcher: %s (version unknown: %v)\n", active.Launcher, err)
	default:
		fmt.Fprintf(w, "Active launcher: %s (version %s)\n", active.Launcher, active.Version)
	}
}
