// Package config holds the per-host JDK registry and its TOML persistence.
package config

import (
	"sort"

	"github.com/OpenGG/jdksw/internal/jdksw/domain"
	"github.com/OpenGG/jdksw/internal/jdksw/validator"
)

// UnknownHost names the record used when the host name cannot be read.
const UnknownHost = "unknown_host"

// JdkEntry is one registered JDK. Entries are addressed by their position in
// the owning host's list; positions shift down after a removal.
type JdkEntry struct {
	Name        string
	InstallRoot string
}

// HostConfiguration is the record for a single machine.
type HostConfiguration struct {
	HostName string
	// Backup is the last captured search path; empty means none was taken.
	Backup  string
	entries []JdkEntry
}

// NewHostConfiguration creates an empty record for hostName.
func NewHostConfiguration(hostName string) *HostConfiguration {
	return &HostConfiguration{HostName: hostName}
}

// AddEntry appends a JDK to the end of the list.
func (h *HostConfiguration) AddEntry(name, installRoot string) error {
	if err := validator.ValidateInstallRoot(installRoot); err != nil {
		return err
	}
	normalized, err := validator.NormalizeName(name)
	if err != nil {
		return err
	}
	h.entries = append(h.entries, JdkEntry{Name: normalized, InstallRoot: installRoot})
	return nil
}

// RemoveEntry deletes the entry at index and shifts later entries down.
func (h *HostConfiguration) RemoveEntry(index int) error {
	if index < 0 || index >= len(h.entries) {
		return &domain.IndexOutOfRangeError{Index: index, Len: len(h.entries)}
	}
	h.entries = append(h.entries[:index], h.entries[index+1:]...)
	return nil
}

// GetEntry returns the entry at index.
func (h *HostConfiguration) GetEntry(index int) (JdkEntry, bool) {
	if index < 0 || index >= len(h.entries) {
		return JdkEntry{}, false
	}
	return h.entries[index], true
}

// ListEntries returns a snapshot of the entries in order.
func (h *HostConfiguration) ListEntries() []JdkEntry {
	out := make([]JdkEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *HostConfiguration) Len() int {
	return len(h.entries)
}

// Registry is the set of host records kept in one configuration document.
type Registry struct {
	hosts map[string]*HostConfiguration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{hosts: make(map[string]*HostConfiguration)}
}

// Host returns the record for hostName, creating it when missing.
func (r *Registry) Host(hostName string) *HostConfiguration {
	if hostName == "" {
		hostName = UnknownHost
	}
	if h, ok := r.hosts[hostName]; ok {
		return h
	}
	h := NewHostConfiguration(hostName)
	r.hosts[hostName] = h
	return h
}

// Lookup returns the record for hostName without creating one.
func (r *Registry) Lookup(hostName string) (*HostConfiguration, bool) {
	h, ok := r.hosts[hostName]
	return h, ok
}

// HostNames lists the known hosts in sorted order.
func (r *Registry) HostNames() []string {
	names := make([]string, 0, len(r.hosts))
	for name := range r.hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
