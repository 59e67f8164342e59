package pathenv

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenGG/jdksw/internal/jdksw/storage"
)

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository(`C:\a;C:\b`)

	p, err := repo.Read()
	require.NoError(t, err)
	assert.Equal(t, SearchPath{`C:\a`, `C:\b`}, p)

	require.NoError(t, repo.Write(SearchPath{`C:\c`}))
	assert.Equal(t, `C:\c`, repo.Raw())
	assert.Equal(t, 1, repo.Writes())
}

func TestFileRepository_MissingFileIsEmpty(t *testing.T) {
	repo := NewFileRepository(storage.New(afero.NewMemMapFs()), "/state/path")

	p, err := repo.Read()
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestFileRepository_WriteThenRead(t *testing.T) {
	fs := afero.NewMemMapFs()
	repo := NewFileRepository(storage.New(fs), "/state/path")

	require.NoError(t, repo.Write(SearchPath{"/usr/bin", "%JAVA_HOME%/bin", ""}))

	raw, err := afero.ReadFile(fs, "/state/path")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin;%JAVA_HOME%/bin;\n", string(raw))

	p, err := repo.Read()
	require.NoError(t, err)
	assert.Equal(t, SearchPath{"/usr/bin", "%JAVA_HOME%/bin", ""}, p)
}
