package exporter

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Strip the BOM before parsing.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV_BOMPrefix(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, slog.Default())

	path, err := e.WriteCSV("out.csv", WriteOptions{
		Headers:   []string{"a", "b"},
		Records:   [][]string{{"1", "2"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteCSV_NoBOM(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, slog.Default())

	path, err := e.WriteCSV("out.csv", WriteOptions{
		Headers: []string{"a"},
		Records: [][]string{{"1"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestExportRankingsCSV(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, slog.Default())

	path, err := e.ExportRankingsCSV(testInput())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Rankings - Semester 1.csv"), path)

	records := readCSVFile(t, path)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"Rank", "Index", "Name", "EE1801", "EE1802",
		"SGPA (4.0)", "SGPA (4.2)", "Max Possible SGPA", "Rank (4.2 scale)",
	}, records[0])

	assert.Equal(t, []string{
		"1", "230001", "A.B.C. Perera", "A+", "A",
		"4.000", "4.120", "4.000", "1",
	}, records[1])

	// Missing grade and roster entry.
	assert.Equal(t, []string{
		"2", "230002", "Unknown", "B", "-",
		"1.800", "1.800", "3.400", "2",
	}, records[2])
}
