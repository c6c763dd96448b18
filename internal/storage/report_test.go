package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReportSaveAndShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run_report.json")

	report := NewRunReport(path)
	assert.True(t, report.Empty())

	report.AddFailedPages([]int{3, 7})
	report.AddFailedLinks([]string{"https://maps.example.com/broken"})
	assert.False(t, report.Empty())

	require.NoError(t, report.Save())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		FailedPages []int    `json:"failed_pages"`
		FailedLinks []string `json:"failed_links"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, []int{3, 7}, decoded.FailedPages)
	assert.Equal(t, []string{"https://maps.example.com/broken"}, decoded.FailedLinks)
}
