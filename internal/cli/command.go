package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/OpenGG/jdksw/internal/jdksw"
	"github.com/OpenGG/jdksw/internal/jdksw/domain"
	"github.com/OpenGG/jdksw/internal/jdksw/pathenv"
)

// Settings carries the global flags into the ManagerFactory.
type Settings struct {
	ConfigFile string
	PathFile   string
	Verbosity  int
}

// ManagerFactory builds the session Manager once flags are parsed.
type ManagerFactory func(Settings) (*jdksw.Manager, error)

type session struct {
	settings Settings
	factory  ManagerFactory
	mgr      *jdksw.Manager
}

func (s *session) manager() (*jdksw.Manager, error) {
	if s.mgr != nil {
		return s.mgr, nil
	}
	mgr, err := s.factory(s.settings)
	if err != nil {
		return nil, err
	}
	s.mgr = mgr
	return mgr, nil
}

// NewRootCommand constructs the root Cobra command for jdksw. Without a
// subcommand it runs the interactive menu.
func NewRootCommand(factory ManagerFactory, prompter Prompter, stdout, stderr io.Writer) *cobra.Command {
	s := &session{factory: factory}

	cmd := &cobra.Command{
		Use:   "jdksw",
		Short: "JDK switcher",
		Long: "jdksw keeps a per-host list of installed JDKs and rewrites the machine\n" +
			"search path so that one of them becomes the active java.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := s.manager()
			if err != nil {
				return err
			}
			return NewMenu(mgr, prompter, stdout, stderr).Run()
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&s.settings.ConfigFile, "config", "", "Configuration file (default $JDKSW_CONFIG or the XDG config dir)")
	flags.StringVar(&s.settings.PathFile, "path-file", "", "Keep the search path in this file instead of the system store (default $JDKSW_PATH_FILE)")
	flags.CountVarP(&s.settings.Verbosity, "verbose", "v", "Increase log verbosity (-v, -vv, -vvv)")

	cmd.AddCommand(newListCommand(s, stdout))
	cmd.AddCommand(newAddCommand(s, stdout))
	cmd.AddCommand(newUseCommand(s, stdout))
	cmd.AddCommand(newRemoveCommand(s, stdout))
	cmd.AddCommand(newRestoreCommand(s, stdout))
	cmd.AddCommand(newBackupCommand(s, stdout))
	cmd.AddCommand(newCurrentCommand(s, stdout))
	cmd.AddCommand(newPruneCommand(s, prompter, stdout))

	return cmd
}

func newListCommand(s *session, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"show"},
		Short:   "Show the JDKs registered for this host",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := s.manager()
			if err != nil {
				return err
			}
			renderEntries(stdout, mgr.HostName(), mgr.Entries(), activeIndex(mgr))
			return nil
		},
	}
}

func newAddCommand(s *session, stdout io.Writer) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Register a JDK installation",
		Long:  "Runs <path>/bin/java -version and registers the installation. The detected version is the default name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := s.manager()
			if err != nil {
				return err
			}
			entry, err := mgr.Add(args[0], name)
			if err != nil {
				return err
			}
			if err := mgr.Save(); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Added %s (%s) as id %d\n", entry.Name, entry.InstallRoot, len(mgr.Entries())-1)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the detected version)")
	return cmd
}

func newUseCommand(s *session, stdout io.Writer) *cobra.Command {
	var noBackup bool

	cmd := &cobra.Command{
		Use:   "use <id>",
		Short: "Make a registered JDK the active one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			mgr, err := s.manager()
			if err != nil {
				return err
			}
			result, err := mgr.Activate(index, !noBackup)
			if err != nil {
				return err
			}
			if err := mgr.Save(); err != nil {
				return err
			}
			printActivation(stdout, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not back up the current search path first")
	return cmd
}

func newRemoveCommand(s *session, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Unregister a JDK",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			mgr, err := s.manager()
			if err != nil {
				return err
			}
			entry, err := mgr.Remove(index)
			if err != nil {
				return err
			}
			if err := mgr.Save(); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Removed %s (%s)\n", entry.Name, entry.InstallRoot)
			return nil
		},
	}
}

func newRestoreCommand(s *session, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Write the backed up search path back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := s.manager()
			if err != nil {
				return err
			}
			if err := mgr.Restore(); err != nil {
				return err
			}
			fmt.Fprintln(stdout, "Search path restored from backup.")
			return nil
		},
	}
}

func newBackupCommand(s *session, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Back up the current search path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := s.manager()
			if err != nil {
				return err
			}
			current, err := mgr.Backup()
			if err != nil {
				return err
			}
			if err := mgr.Save(); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Backed up %d search path segment(s).\n", len(current))
			return nil
		},
	}
}

func newCurrentCommand(s *session, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show which java the search path resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := s.manager()
			if err != nil {
				return err
			}
			active, err := mgr.Current()
			if err != nil && active.Launcher == "" {
				return err
			}
			fmt.Fprintf(stdout, "Launcher: %s\n", active.Launcher)
			if err != nil {
				fmt.Fprintf(stdout, "Version:  unknown (%v)\n", err)
			} else {
				fmt.Fprintf(stdout, "Version:  %s\n", active.Version)
			}
			if active.Index >= 0 {
				entry, _ := mgr.Entry(active.Index)
				fmt.Fprintf(stdout, "Entry:    %d %s\n", active.Index, entry.Name)
			} else {
				fmt.Fprintln(stdout, "Entry:    not registered")
			}
			return nil
		},
	}
}

func newPruneCommand(s *session, prompter Prompter, stdout io.Writer) *cobra.Command {
	var olderThanStr string
	var force bool

	cmd := &cobra.Command{
		Use:   "prune-backups",
		Short: "Remove outdated search path archives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var duration time.Duration
			var err error

			if olderThanStr != "" {
				duration, err = parseHumanDuration(olderThanStr)
				if err != nil {
					return err
				}
			} else {
				options := []string{"30d", "90d", "180d", "Cancel"}
				_, choice, err := prompter.Select("Prune archives older than", options, "30d")
				if err != nil {
					return err
				}
				if choice == "Cancel" {
					fmt.Fprintln(stdout, "Prune cancelled.")
					return nil
				}
				duration, err = parseHumanDuration(choice)
				if err != nil {
					return err
				}
			}

			mgr, err := s.manager()
			if err != nil {
				return err
			}

			if !force {
				confirm, err := prompter.Confirm(fmt.Sprintf("Delete archives in %s older than %s?", mgr.BackupDir(), duration), false)
				if err != nil {
					return err
				}
				if !confirm {
					fmt.Fprintln(stdout, "Prune cancelled.")
					return nil
				}
			}

			count, err := mgr.PruneBackups(duration)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Deleted %d archive(s).\n", count)
			return nil
		},
	}

	cmd.Flags().StringVar(&olderThanStr, "older-than", "", "Delete archives older than the specified duration (e.g. 30d)")
	cmd.Flags().BoolVar(&force, "force", false, "Do not prompt for confirmation")

	return cmd
}

func printActivation(w io.Writer, result pathenv.MergeResult) {
	if result.Appended {
		fmt.Fprintf(w, "No active java found; appended %s to the search path.\n", result.Target)
	} else {
		fmt.Fprintf(w, "Replaced %d segment(s) with %s (was %s).\n", len(result.Replaced), result.Target, result.Active)
	}
	fmt.Fprintln(w, "Open a new terminal for the change to take effect.")
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMenuIndex, arg)
	}
	return index, nil
}

func parseHumanDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return 0, errors.New("duration cannot be empty")
	}
	if strings.HasSuffix(value, "d") {
		days := strings.TrimSuffix(value, "d")
		v, err := parseDays(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day duration: %w", err)
		}
		return v, nil
	}
	if strings.HasSuffix(value, "h") || strings.HasSuffix(value, "m") || strings.HasSuffix(value, "s") {
		dur, err := time.ParseDuration(value)
		if err != nil {
			return 0, err
		}
		if dur < 0 {
			return 0, fmt.Errorf("duration cannot be negative")
		}
		return dur, nil
	}
	return 0, fmt.Errorf("unsupported duration format: %s", value)
}

func parseDays(value string) (time.Duration, error) {
	d, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid day duration: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid day duration: %d", d)
	}
	return time.Duration(d) * 24 * time.Hour, nil
}

// isRangeError reports whether err is an unknown-id error, which the menu
// prints together with the table.
func isRangeError(err error) bool {
	return errors.Is(err, domain.ErrIndexOutOfRange)
}
