package nativelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDir(t *testing.T) {
	t.Setenv(EnvLogDir, "")
	assert.Equal(t, "/var/log/storefront", ResolveDir("/var/log/storefront"))
	assert.Equal(t, filepath.Join(".", "logs"), ResolveDir(" "))

	t.Setenv(EnvLogDir, "/tmp/override")
	assert.Equal(t, "/tmp/override", ResolveDir("/var/log/storefront"))
}

func TestWriterRollsDaily(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	day := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return day }
	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)

	w.now = func() time.Time { return day.Add(24 * time.Hour) }
	_, err = w.Write([]byte("third\n"))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "storefront_2024-03-09.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(got))

	got, err = os.ReadFile(filepath.Join(dir, "storefront_2024-03-10.log"))
	require.NoError(t, err)
	assert.Equal(t, "third\n", string(got))
}
