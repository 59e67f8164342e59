package config

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/OpenGG/jdksw/internal/jdksw/domain"
	"github.com/OpenGG/jdksw/internal/jdksw/storage"
)

type hostDocument struct {
	BackPath string        `toml:"back_path"`
	Java     []jdkDocument `toml:"java"`
}

type jdkDocument struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Loader reads and writes the configuration document.
type Loader struct {
	storage *storage.Storage
	path    string
	logger  zerolog.Logger
}

// NewLoader creates a Loader for the document at path.
func NewLoader(storage *storage.Storage, path string, logger zerolog.Logger) *Loader {
	return &Loader{storage: storage, path: path, logger: logger}
}

// Path returns the document location.
func (l *Loader) Path() string {
	return l.path
}

// Load parses the document. A missing document yields an empty registry.
func (l *Loader) Load() (*Registry, error) {
	data, err := l.storage.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.logger.Info().Str("path", l.path).Msg("configuration not found, starting empty")
			return NewRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	var doc map[string]hostDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w %s: %v", domain.ErrConfigParse, l.path, err)
	}

	registry := NewRegistry()
	for hostName, hostDoc := range doc {
		host := registry.Host(hostName)
		host.Backup = hostDoc.BackPath
		for _, j := range hostDoc.Java {
			// Stored entries are taken as-is; validation applies to new input.
			host.entries = append(host.entries, JdkEntry{Name: j.Name, InstallRoot: j.Path})
		}
	}

	l.logger.Debug().
		Str("path", l.path).
		Int("hosts", len(doc)).
		Msg("configuration loaded")
	return registry, nil
}

// Save writes every host record back to the document.
func (l *Loader) Save(registry *Registry) error {
	doc := make(map[string]hostDocument, len(registry.hosts))
	for name, host := range registry.hosts {
		hostDoc := hostDocument{BackPath: host.Backup, Java: []jdkDocument{}}
		for _, e := range host.entries {
			hostDoc.Java = append(hostDoc.Java, jdkDocument{Name: e.Name, Path: e.InstallRoot})
		}
		doc[name] = hostDoc
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := l.storage.WriteFileAtomic(l.path, data); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	l.logger.Debug().Str("path", l.path).Msg("configuration saved")
	return nil
}
