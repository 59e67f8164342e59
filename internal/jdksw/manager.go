package jdksw

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/OpenGG/jdksw/internal/jdksw/backup"
	"github.com/OpenGG/jdksw/internal/jdksw/config"
	"github.com/OpenGG/jdksw/internal/jdksw/domain"
	"github.com/OpenGG/jdksw/internal/jdksw/pathenv"
	"github.com/OpenGG/jdksw/internal/jdksw/probe"
	"github.com/OpenGG/jdksw/internal/jdksw/storage"
	"github.com/OpenGG/jdksw/internal/jdksw/validator"
)

// Options wires a Manager. Zero-valued collaborators get platform defaults.
type Options struct {
	Fs         afero.Fs
	ConfigFile string
	ArchiveDir string
	HostName   string
	Repository pathenv.Repository
	Expander   pathenv.Expander
	Locator    pathenv.Locator
	Runner     probe.Runner
	Logger     *zerolog.Logger
}

// Manager runs one session against the current host's configuration and the
// machine search path.
type Manager struct {
	storage  *storage.Storage
	loader   *config.Loader
	registry *config.Registry
	host     *config.HostConfiguration
	repo     pathenv.Repository
	expander pathenv.Expander
	locator  pathenv.Locator
	merger   *pathenv.Merger
	backup   *backup.Service
	prober   *probe.Prober
	logger   zerolog.Logger
}

// Candidate is a JDK whose launcher answered the version probe.
type Candidate struct {
	InstallRoot string
	Version     string
}

// ActiveJdk describes the launcher the search path currently resolves to.
type ActiveJdk struct {
	Launcher string
	Version  string
	// Index is the registered entry owning the launcher, or -1.
	Index int
}

// NewManager loads the configuration document and selects the host record.
func NewManager(opts Options) (*Manager, error) {
	if opts.Fs == nil {
		return nil, errors.New("filesystem cannot be nil")
	}
	if opts.ConfigFile == "" {
		return nil, errors.New("config file cannot be empty")
	}
	if opts.Repository == nil {
		return nil, errors.New("search path repository cannot be nil")
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	expander := opts.Expander
	if expander == nil {
		expander = pathenv.DefaultExpander()
	}
	locator := opts.Locator
	if locator == nil {
		locator = pathenv.NewExecutableLocator(opts.Fs, pathenv.LauncherName)
	}
	hostName := opts.HostName
	if hostName == "" {
		hostName = config.UnknownHost
	}

	stor := storage.New(opts.Fs)
	loader := config.NewLoader(stor, opts.ConfigFile, logger.With().Str("component", "config").Logger())
	registry, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return &Manager{
		storage:  stor,
		loader:   loader,
		registry: registry,
		host:     registry.Host(hostName),
		repo:     opts.Repository,
		expander: expander,
		locator:  locator,
		merger:   pathenv.NewMerger(expander, locator, logger.With().Str("component", "merge").Logger()),
		backup:   backup.New(opts.Repository, stor, opts.ArchiveDir, logger.With().Str("component", "backup").Logger()),
		prober:   probe.New(opts.Runner, logger.With().Str("component", "probe").Logger()),
		logger:   logger,
	}, nil
}

// HostName returns the host whose record is being edited.
func (m *Manager) HostName() string {
	return m.host.HostName
}

// ConfigFile returns the configuration document path.
func (m *Manager) ConfigFile() string {
	return m.loader.Path()
}

// FileSystem returns the underlying filesystem.
func (m *Manager) FileSystem() afero.Fs {
	return m.storage.FileSystem()
}

// SetNow allows overriding the archive clock for testing.
func (m *Manager) SetNow(now func() time.Time) {
	m.backup.SetNow(now)
}

// Entries lists the registered JDKs of this host.
func (m *Manager) Entries() []config.JdkEntry {
	return m.host.ListEntries()
}

// Entry returns the registered JDK at index.
func (m *Manager) Entry(index int) (config.JdkEntry, error) {
	entry, ok := m.host.GetEntry(index)
	if !ok {
		return config.JdkEntry{}, &domain.IndexOutOfRangeError{Index: index, Len: m.host.Len()}
	}
	return entry, nil
}

// Probe runs the launcher under installRoot and reports its version.
func (m *Manager) Probe(installRoot string) (Candidate, error) {
	installRoot = strings.TrimSpace(installRoot)
	if err := validator.ValidateInstallRoot(installRoot); err != nil {
		return Candidate{}, err
	}
	version, err := m.prober.Probe(installRoot)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{InstallRoot: installRoot, Version: version}, nil
}

// Register stores a probed candidate. An empty name uses the probed version.
func (m *Manager) Register(c Candidate, name string) (config.JdkEntry, error) {
	if strings.TrimSpace(name) == "" {
		name = c.Version
	}
	if err := m.host.AddEntry(name, c.InstallRoot); err != nil {
		return config.JdkEntry{}, err
	}
	entry, _ := m.host.GetEntry(m.host.Len() - 1)
	m.logger.Info().
		Str("name", entry.Name).
		Str("path", entry.InstallRoot).
		Msg("jdk registered")
	return entry, nil
}

// Add probes installRoot and registers it. Nothing is stored when the probe
// fails.
func (m *Manager) Add(installRoot, name string) (config.JdkEntry, error) {
	candidate, err := m.Probe(installRoot)
	if err != nil {
		return config.JdkEntry{}, err
	}
	return m.Register(candidate, name)
}

// Remove deletes the entry at index. Later entries move down by one.
func (m *Manager) Remove(index int) (config.JdkEntry, error) {
	entry, ok := m.host.GetEntry(index)
	if err := m.host.RemoveEntry(index); err != nil {
		return config.JdkEntry{}, err
	}
	if ok {
		m.logger.Info().Int("index", index).Str("name", entry.Name).Msg("jdk removed")
	}
	return entry, nil
}

// Activate makes the JDK at index the active one. The search path is read
// once and written once; when capture is set the value read is stored as
// the host's snapshot first.
func (m *Manager) Activate(index int, capture bool) (pathenv.MergeResult, error) {
	entry, err := m.Entry(index)
	if err != nil {
		return pathenv.MergeResult{}, err
	}

	current, err := m.repo.Read()
	if err != nil {
		return pathenv.MergeResult{}, fmt.Errorf("failed to read search path: %w", err)
	}
	if capture {
		if err := m.backup.Capture(m.host, current); err != nil {
			m.logger.Warn().Err(err).Msg("snapshot archive failed")
		}
	}

	result := m.merger.Merge(current, entry.InstallRoot)
	if err := m.repo.Write(result.Path); err != nil {
		return pathenv.MergeResult{}, fmt.Errorf("failed to write search path: %w", err)
	}

	m.logger.Info().
		Str("name", entry.Name).
		Str("target", result.Target).
		Bool("appended", result.Appended).
		Ints("replaced", result.Replaced).
		Msg("jdk activated")
	return result, nil
}

// Backup captures the current search path as the host's snapshot.
func (m *Manager) Backup() (pathenv.SearchPath, error) {
	current, err := m.repo.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read search path: %w", err)
	}
	if err := m.backup.Capture(m.host, current); err != nil {
		m.logger.Warn().Err(err).Msg("snapshot archive failed")
	}
	return current, nil
}

// Snapshot returns the host's stored snapshot, empty when none was taken.
func (m *Manager) Snapshot() string {
	return m.host.Backup
}

// Restore writes the host's snapshot back to the search path.
func (m *Manager) Restore() error {
	return m.backup.Restore(m.host)
}

// SearchPath reads the current search path.
func (m *Manager) SearchPath() (pathenv.SearchPath, error) {
	return m.repo.Read()
}

// Current resolves the active launcher on the machine search path and probes
// its version. domain.ErrActiveJdkNotFound is returned when nothing resolves.
// A failed probe still returns the launcher.
func (m *Manager) Current() (ActiveJdk, error) {
	current, err := m.repo.Read()
	if err != nil {
		return ActiveJdk{Index: -1}, fmt.Errorf("failed to read search path: %w", err)
	}
	expanded := make([]string, len(current))
	for i, segment := range current {
		expanded[i] = m.expander.Expand(segment)
	}

	launcher, err := m.locator.Locate(expanded)
	if err != nil {
		return ActiveJdk{Index: -1}, err
	}
	active := ActiveJdk{Launcher: launcher, Index: m.owningEntry(launcher)}

	version, err := m.prober.ProbeLauncher(launcher)
	if err != nil {
		return active, err
	}
	active.Version = version
	return active, nil
}

func (m *Manager) owningEntry(launcher string) int {
	for i, entry := range m.host.ListEntries() {
		bin := pathenv.JdkBinDir(entry.InstallRoot)
		if len(launcher) <= len(bin) || !strings.EqualFold(launcher[:len(bin)], bin) {
			continue
		}
		if sep := launcher[len(bin)]; sep == '\\' || sep == '/' {
			return i
		}
	}
	return -1
}

// PruneBackups removes archived snapshots older than olderThan.
func (m *Manager) PruneBackups(olderThan time.Duration) (int, error) {
	return m.backup.PruneArchive(olderThan)
}

// BackupDir returns the snapshot archive directory.
func (m *Manager) BackupDir() string {
	return m.backup.ArchiveDir()
}

// Save persists every host record.
func (m *Manager) Save() error {
	return m.loader.Save(m.registry)
}

// ResolveHostName returns the machine name, or config.UnknownHost.
func ResolveHostName() string {
	name, err := os.Hostname()
	if err != nil || strings.TrimSpace(name) == "" {
		return config.UnknownHost
	}
	return name
}
