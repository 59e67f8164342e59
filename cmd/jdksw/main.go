package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	"github.com/OpenGG/jdksw/internal/cli"
	"github.com/OpenGG/jdksw/internal/jdksw"
	"github.com/OpenGG/jdksw/internal/jdksw/pathenv"
	"github.com/OpenGG/jdksw/internal/jdksw/paths"
	"github.com/OpenGG/jdksw/internal/jdksw/storage"
	"github.com/OpenGG/jdksw/internal/logging"
)

const (
	envConfig   = "JDKSW_CONFIG"
	envPathFile = "JDKSW_PATH_FILE"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	layout := paths.Default()
	closeLog := func() {}
	defer func() { closeLog() }()

	factory := func(s cli.Settings) (*jdksw.Manager, error) {
		closeLog = logging.SetupLogger(s.Verbosity, layout.LogFile())
		return newManager(afero.NewOsFs(), s, os.Getenv, layout)
	}

	root := cli.NewRootCommand(factory, newPrompter(stdin, stdout), stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

// newManager resolves flags, environment and XDG defaults into a Manager.
func newManager(fs afero.Fs, s cli.Settings, getenv func(string) string, layout *paths.PathBuilder) (*jdksw.Manager, error) {
	configFile := firstNonEmpty(s.ConfigFile, getenv(envConfig), layout.ConfigFile())

	stor := storage.New(fs)
	var repo pathenv.Repository
	if pathFile := firstNonEmpty(s.PathFile, getenv(envPathFile)); pathFile != "" {
		repo = pathenv.NewFileRepository(stor, pathFile)
	} else {
		repo = pathenv.SystemRepository(stor, layout.PathFile())
	}

	logger := logging.GetLogger("jdksw")
	return jdksw.NewManager(jdksw.Options{
		Fs:         fs,
		ConfigFile: configFile,
		ArchiveDir: layout.BackupDir(),
		HostName:   jdksw.ResolveHostName(),
		Repository: repo,
		Logger:     &logger,
	})
}

// newPrompter uses promptui on a terminal and plain line input otherwise.
func newPrompter(stdin *os.File, stdout io.Writer) cli.Prompter {
	if isatty.IsTerminal(stdin.Fd()) || isatty.IsCygwinTerminal(stdin.Fd()) {
		return cli.NewPromptUI(stdin, stdout)
	}
	return cli.NewLinePrompter(stdin, stdout)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
