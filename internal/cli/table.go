package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/OpenGG/jdksw/internal/jdksw/config"
)

var (
	hostStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	activeStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("81")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// activeMarker flags the entry that owns the launcher on the search path.
const activeMarker = "*"

// renderEntries prints the host header followed by an ID | NAME | PATH table.
// active is the index of the entry currently on the search path, or -1.
func renderEntries(w io.Writer, host string, entries []config.JdkEntry, active int) {
	fmt.Fprintln(w, hostStyle.Render("HOST_NAME "+host))
	if len(entries) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No JDKs registered. Use A (or `jdksw add <path>`) to add one."))
		return
	}

	rows := make([][]string, 0, len(entries))
	for i, entry := range entries {
		id := strconv.Itoa(i)
		if i == active {
			id = activeMarker + id
		}
		rows = append(rows, []string{id, entry.Name, entry.InstallRoot})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("ID", "NAME", "PATH").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == active:
				return activeStyle
			default:
				return cellStyle
			}
		})
	fmt.Fprintln(w, t.Render())
}
