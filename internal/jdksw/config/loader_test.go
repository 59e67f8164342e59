package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenGG/jdksw/internal/jdksw/domain"
	"github.com/OpenGG/jdksw/internal/jdksw/storage"
)

const configPath = "/cfg/jdksw/configuration.toml"

func newTestLoader(t *testing.T) (*Loader, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewLoader(storage.New(fs), configPath, zerolog.Nop()), fs
}

func TestLoad_MissingFileGivesEmptyRegistry(t *testing.T) {
	loader, _ := newTestLoader(t)

	registry, err := loader.Load()
	require.NoError(t, err)
	assert.Empty(t, registry.HostNames())
}

func TestLoad_ParsesHostRecords(t *testing.T) {
	loader, fs := newTestLoader(t)
	doc := `
[DESKTOP-1]
back_path = 'C:\Windows;C:\jdk8\bin'

[[DESKTOP-1.java]]
name = "1.8.0_392"
path = 'C:\jdk8'

[[DESKTOP-1.java]]
name = "17.0.2"
path = 'C:\jdk17'

[laptop]
back_path = ""
java = []
`
	require.NoError(t, afero.WriteFile(fs, configPath, []byte(doc), 0o600))

	registry, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"DESKTOP-1", "laptop"}, registry.HostNames())

	host, ok := registry.Lookup("DESKTOP-1")
	require.True(t, ok)
	assert.Equal(t, `C:\Windows;C:\jdk8\bin`, host.Backup)
	assert.Equal(t, []JdkEntry{
		{Name: "1.8.0_392", InstallRoot: `C:\jdk8`},
		{Name: "17.0.2", InstallRoot: `C:\jdk17`},
	}, host.ListEntries())

	laptop, ok := registry.Lookup("laptop")
	require.True(t, ok)
	assert.Zero(t, laptop.Len())
}

func TestLoad_InvalidDocument(t *testing.T) {
	loader, fs := newTestLoader(t)
	require.NoError(t, afero.WriteFile(fs, configPath, []byte("[broken"), 0o600))

	_, err := loader.Load()
	assert.ErrorIs(t, err, domain.ErrConfigParse)
}

func TestSaveThenLoad_PreservesEntriesAndBackup(t *testing.T) {
	loader, _ := newTestLoader(t)
	registry := NewRegistry()
	host := registry.Host("build-box")
	host.Backup = `%SystemRoot%\system32;C:\jdk11\bin`
	require.NoError(t, host.AddEntry("11", `C:\jdk11`))
	require.NoError(t, host.AddEntry("17", `C:\jdk17`))
	registry.Host("other")

	require.NoError(t, loader.Save(registry))

	reloaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"build-box", "other"}, reloaded.HostNames())
	got, ok := reloaded.Lookup("build-box")
	require.True(t, ok)
	assert.Equal(t, host.Backup, got.Backup)
	assert.Equal(t, host.ListEntries(), got.ListEntries())
}
