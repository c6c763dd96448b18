package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRowWritesHeaderExactlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outlets.csv")
	header := []string{"name", "address", "link"}

	require.NoError(t, AppendRow(path, header, []string{"ZUS KLCC", "Suria KLCC", "https://maps.example.com/1"}))
	require.NoError(t, AppendRow(path, header, []string{"ZUS Subang", "SS15", "https://maps.example.com/2"}))
	require.NoError(t, AppendRow(path, header, []string{"ZUS Bangsar", "Jalan Telawi", ""}))

	gotHeader, rows, err := ReadRows(path)
	require.NoError(t, err)

	assert.Equal(t, header, gotHeader)
	require.Len(t, rows, 3)
	assert.Equal(t, "ZUS KLCC", rows[0][0])
	assert.Equal(t, "", rows[2][2])
}

func TestAppendRowQuotesEmbeddedCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outlets.csv")

	require.NoError(t, AppendRow(path, []string{"name", "address", "link"},
		[]string{"ZUS KLCC", "Lot 12, Level 2, Suria KLCC", "x"}))

	_, rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lot 12, Level 2, Suria KLCC", rows[0][1])
}

func TestAppendRowCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "products.csv")

	require.NoError(t, AppendRow(path, []string{"a"}, []string{"1"}))

	header, rows, err := ReadRows(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, header)
	assert.Len(t, rows, 1)
}

func TestReadRowsMissingFile(t *testing.T) {
	_, _, err := ReadRows(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
