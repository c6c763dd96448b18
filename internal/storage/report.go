package storage

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// RunReport records what a scrape run could not finish: directory pages
// that never loaded and profile links whose enrichment failed. The
// operator re-runs just these items instead of the whole batch.
type RunReport struct {
	mu       sync.RWMutex
	filename string

	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	FailedPages []int     `json:"failed_pages,omitempty"`
	FailedLinks []string  `json:"failed_links,omitempty"`
}

func NewRunReport(filename string) *RunReport {
	return &RunReport{
		filename:  filename,
		StartedAt: time.Now(),
	}
}

func (r *RunReport) AddFailedPages(pages []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FailedPages = append(r.FailedPages, pages...)
}

func (r *RunReport) AddFailedLinks(links []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FailedLinks = append(r.FailedLinks, links...)
}

func (r *RunReport) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.FailedPages) == 0 && len(r.FailedLinks) == 0
}

// Save writes the report atomically: temp file first, then rename.
func (r *RunReport) Save() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.FinishedAt = time.Now()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	tmpFile := r.filename + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return err
	}

	return os.Rename(tmpFile, r.filename)
}
