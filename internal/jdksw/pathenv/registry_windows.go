//go:build windows

package pathenv

import (
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/OpenGG/jdksw/internal/jdksw/storage"
)

const (
	environmentKey  = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`
	searchPathValue = "Path"
)

// RegistryRepository reads and writes the machine Path value. Writing needs
// an elevated process.
type RegistryRepository struct {
	root  registry.Key
	key   string
	value string
}

// NewRegistryRepository targets HKLM\...\Session Manager\Environment\Path.
func NewRegistryRepository() *RegistryRepository {
	return &RegistryRepository{root: registry.LOCAL_MACHINE, key: environmentKey, value: searchPathValue}
}

// Read implements Repository. The value is returned unexpanded.
func (r *RegistryRepository) Read() (SearchPath, error) {
	k, err := registry.OpenKey(r.root, r.key, registry.QUERY_VALUE)
	if err != nil {
		return nil, fmt.Errorf("open environment key: %w", err)
	}
	defer k.Close()

	raw, _, err := k.GetStringValue(r.value)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.value, err)
	}
	return ParseSearchPath(raw), nil
}

// Write implements Repository. The value is stored as REG_EXPAND_SZ so that
// %VAR% segments keep working.
func (r *RegistryRepository) Write(p SearchPath) error {
	k, err := registry.OpenKey(r.root, r.key, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open environment key: %w", err)
	}
	defer k.Close()

	if err := k.SetExpandStringValue(r.value, p.String()); err != nil {
		return fmt.Errorf("write %s: %w", r.value, err)
	}
	return nil
}

// SystemRepository returns the registry repository. The file arguments are
// only used on hosts without a registry.
func SystemRepository(_ *storage.Storage, _ string) Repository {
	return NewRegistryRepository()
}
