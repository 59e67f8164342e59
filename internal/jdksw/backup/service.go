package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/OpenGG/jdksw/internal/jdksw/config"
	"github.com/OpenGG/jdksw/internal/jdksw/domain"
	"github.com/OpenGG/jdksw/internal/jdksw/pathenv"
	"github.com/OpenGG/jdksw/internal/jdksw/storage"
)

const archiveExt = ".path"

// Service captures and restores search path snapshots. The live snapshot is
// kept on the host record; every capture is also archived by content hash so
// older values can be recovered by hand.
type Service struct {
	repo       pathenv.Repository
	storage    *storage.Storage
	archiveDir string
	now        func() time.Time
	logger     zerolog.Logger
}

// New creates a backup Service. An empty archiveDir disables archiving.
func New(repo pathenv.Repository, storage *storage.Storage, archiveDir string, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		storage:    storage,
		archiveDir: archiveDir,
		now:        time.Now,
		logger:     logger,
	}
}

// SetNow allows overriding the clock for testing.
func (s *Service) SetNow(now func() time.Time) {
	if now == nil {
		s.now = time.Now
		return
	}
	s.now = now
}

// ShouldCapture turns an operator's answer to "back up the current path?"
// into a decision. Anything other than an explicit no means yes.
func ShouldCapture(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "n", "no":
		return false
	default:
		return true
	}
}

// Capture records current as the host's snapshot, replacing any earlier one.
func (s *Service) Capture(host *config.HostConfiguration, current pathenv.SearchPath) error {
	raw := current.String()
	host.Backup = raw
	s.logger.Info().
		Str("host", host.HostName).
		Int("segments", len(current)).
		Msg("search path captured")
	if err := s.archive(raw); err != nil {
		return fmt.Errorf("snapshot captured but not archived: %w", err)
	}
	return nil
}

// Restore writes the host's snapshot back verbatim. The snapshot is kept so
// it can be restored again.
func (s *Service) Restore(host *config.HostConfiguration) error {
	if host.Backup == "" {
		return domain.ErrEmptySnapshot
	}
	if err := s.repo.Write(pathenv.ParseSearchPath(host.Backup)); err != nil {
		return fmt.Errorf("failed to restore search path: %w", err)
	}
	s.logger.Info().Str("host", host.HostName).Msg("search path restored from snapshot")
	return nil
}

// ArchiveDir returns the archive directory path.
func (s *Service) ArchiveDir() string {
	return s.archiveDir
}

// archive stores raw under its SHA-256. An existing identical snapshot only
// has its mtime refreshed, which keeps it out of reach of PruneArchive.
func (s *Service) archive(raw string) error {
	if s.archiveDir == "" || s.storage == nil {
		return nil
	}
	sum := sha256.Sum256([]byte(raw))
	hash := hex.EncodeToString(sum[:])
	archivePath := filepath.Join(s.archiveDir, hash+archiveExt)
	now := s.now()

	if _, err := s.storage.Stat(archivePath); err == nil {
		if err := s.storage.Chtimes(archivePath, now, now); err != nil {
			return fmt.Errorf("failed to update archive timestamp: %w", err)
		}
		s.logger.Debug().Str("archive", archivePath).Msg("snapshot already archived, updated timestamp")
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat archive: %w", err)
	}

	if err := s.storage.WriteFileAtomic(archivePath, []byte(raw)); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := s.storage.Chtimes(archivePath, now, now); err != nil {
		return fmt.Errorf("failed to update archive timestamp: %w", err)
	}
	s.logger.Debug().Str("archive", archivePath).Msg("snapshot archived")
	return nil
}

// PruneArchive removes archived snapshots whose mtime is older than
// olderThan and returns how many were deleted.
func (s *Service) PruneArchive(olderThan time.Duration) (int, error) {
	if s.archiveDir == "" || s.storage == nil {
		return 0, nil
	}
	entries, err := s.storage.ReadDir(s.archiveDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read archive directory: %w", err)
	}
	cutoff := s.now().Add(-olderThan)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != archiveExt {
			continue
		}
		if entry.ModTime().Before(cutoff) {
			path := filepath.Join(s.archiveDir, entry.Name())
			if err := s.storage.Remove(path); err != nil {
				return deleted, fmt.Errorf("failed to delete archive: %w", err)
			}
			deleted++
		}
	}
	return deleted, nil
}
