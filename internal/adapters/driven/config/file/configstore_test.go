package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/core/domain"
)

func newTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".doclens", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("embedding.provider", "cohere"))
	require.NoError(t, store.Set("embedding.model", "embed-multilingual-v3.0"))

	assert.Equal(t, "cohere", store.GetString("embedding.provider"))
	assert.Equal(t, "embed-multilingual-v3.0", store.GetString("embedding.model"))
}

func TestConfigStore_GetString_Missing(t *testing.T) {
	store := newTestConfigStore(t)

	assert.Empty(t, store.GetString("llm.api_key"))
}

func TestConfigStore_Set_UnknownSection(t *testing.T) {
	store := newTestConfigStore(t)

	err := store.Set("connectors.github", "x")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.Set("nodot", "x")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigStore_Set_Overwrite(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("llm.provider", "gemini"))
	require.NoError(t, store.Set("llm.provider", "openai"))

	assert.Equal(t, "openai", store.GetString("llm.provider"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("vector_index.provider", "pinecone"))
	require.NoError(t, store.Set("vector_index.host", "index-abc.svc.pinecone.io"))

	// A fresh store over the same directory reads the written values.
	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "pinecone", reopened.GetString("vector_index.provider"))
	assert.Equal(t, "index-abc.svc.pinecone.io", reopened.GetString("vector_index.host"))
}

func TestConfigStore_WritesSectionTables(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("embedding.provider", "cohere"))
	require.NoError(t, store.Set("storage.data_dir", "/tmp/doclens"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[embedding]")
	assert.Contains(t, content, "provider = 'cohere'")
	assert.Contains(t, content, "[storage]")
	assert.Contains(t, content, "data_dir = '/tmp/doclens'")
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions only")
	}

	store := newTestConfigStore(t)
	require.NoError(t, store.Set("embedding.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestNewConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[embedding]
provider = "openai"
api_key = "sk-test"

[llm]
provider = "gemini"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "openai", store.GetString("embedding.provider"))
	assert.Equal(t, "sk-test", store.GetString("embedding.api_key"))
	assert.Equal(t, "gemini", store.GetString("llm.provider"))
}

func TestNewConfigStore_SkipsUnknownAndNonString(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
top_level = "ignored"

[unknown_section]
key = "ignored"

[storage]
data_dir = "/data"
retries = 3
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "/data", store.GetString("storage.data_dir"))
	assert.Empty(t, store.GetString("unknown_section.key"))
	assert.Empty(t, store.GetString("storage.retries"))
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not [valid toml"), 0600))

	_, err := NewConfigStore(tmpDir)
	require.Error(t, err)
}

func TestNewConfigStore_MissingFile(t *testing.T) {
	store := newTestConfigStore(t)

	assert.Empty(t, store.GetString("embedding.provider"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestConfigStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("llm.model", "gpt-4o-mini")
		}()
		go func() {
			defer wg.Done()
			_ = store.GetString("llm.model")
		}()
	}
	wg.Wait()

	assert.Equal(t, "gpt-4o-mini", store.GetString("llm.model"))
}
