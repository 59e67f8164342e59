package pathenv

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/OpenGG/jdksw/internal/jdksw/storage"
)

// Repository reads and writes the machine-wide search path value. Callers
// read once, compute the full new value and write once; there is no locking.
type Repository interface {
	Read() (SearchPath, error)
	Write(SearchPath) error
}

// MemoryRepository keeps the search path in memory.
type MemoryRepository struct {
	raw    string
	writes int
}

// NewMemoryRepository creates a repository holding raw.
func NewMemoryRepository(raw string) *MemoryRepository {
	return &MemoryRepository{raw: raw}
}

// Read implements Repository.
func (r *MemoryRepository) Read() (SearchPath, error) {
	return ParseSearchPath(r.raw), nil
}

// Write implements Repository.
func (r *MemoryRepository) Write(p SearchPath) error {
	r.raw = p.String()
	r.writes++
	return nil
}

// Raw returns the stored value.
func (r *MemoryRepository) Raw() string {
	return r.raw
}

// Writes reports how many times Write was called.
func (r *MemoryRepository) Writes() int {
	return r.writes
}

// FileRepository stores the raw search path in a single file. It stands in
// for the registry on hosts without one.
type FileRepository struct {
	storage *storage.Storage
	path    string
}

// NewFileRepository creates a FileRepository backed by path.
func NewFileRepository(storage *storage.Storage, path string) *FileRepository {
	return &FileRepository{storage: storage, path: path}
}

// Path returns the backing file.
func (r *FileRepository) Path() string {
	return r.path
}

// Read implements Repository. A missing file is an empty search path.
func (r *FileRepository) Read() (SearchPath, error) {
	data, err := r.storage.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return SearchPath{}, nil
		}
		return nil, fmt.Errorf("failed to read search path: %w", err)
	}
	return ParseSearchPath(strings.TrimRight(string(data), "\r\n")), nil
}

// Write implements Repository.
func (r *FileRepository) Write(p SearchPath) error {
	if err := r.storage.WriteFileAtomic(r.path, []byte(p.String()+"\n")); err != nil {
		return fmt.Errorf("failed to write search path: %w", err)
	}
	return nil
}
