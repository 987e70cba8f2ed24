package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "EE1801.xlsx"))
	touch(t, filepath.Join(dir, "EE1802.csv"))
	touch(t, filepath.Join(dir, "EE1803", "page1.csv"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "EE9999.csv"))
	touch(t, filepath.Join(dir, "~$EE1801.xlsx"))

	report, err := NewDiscovery(dir).Scan([]string{"EE1804", "EE1801", "EE1802", "EE1803"})
	require.NoError(t, err)

	assert.Equal(t, []string{"EE1801", "EE1802", "EE1803"}, report.Found)
	assert.Equal(t, []string{"EE1804"}, report.Missing)
	assert.Equal(t, []string{"EE9999.csv", "notes.txt"}, report.Unclaimed)
}

func TestScan_MissingDirectory(t *testing.T) {
	report, err := NewDiscovery(filepath.Join(t.TempDir(), "absent")).Scan([]string{"EE1801"})
	require.NoError(t, err)

	assert.Empty(t, report.Found)
	assert.Equal(t, []string{"EE1801"}, report.Missing)
}

func TestScan_EmptyModuleList(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "EE1801.csv"))

	report, err := NewDiscovery(dir).Scan(nil)
	require.NoError(t, err)
	assert.Empty(t, report.Found)
	assert.Equal(t, []string{"EE1801.csv"}, report.Unclaimed)
}
