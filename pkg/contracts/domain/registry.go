package domain

import (
	"time"
)

// Registry identifies the source a loader ingests
type Registry string

const (
	RegistryCommercial Registry = "ccm" // municipal commercial registry
	RegistryFederal    Registry = "rfb" // federal tax registry extract
)

// ActivityCode is one (tax ID, CNAE) association extracted from a
// commercial-registry row. A row yields zero or more of them.
type ActivityCode struct {
	TaxID string `json:"cnpj_cpf"`
	Code  string `json:"cnae"`
}

// FileStatus is the outcome of processing one source file
type FileStatus string

const (
	FileStatusProcessed FileStatus = "processed"
	FileStatusSkipped   FileStatus = "skipped"
	FileStatusFailed    FileStatus = "failed"
)

// FileResult describes what a loader did with one source file
type FileResult struct {
	Source        string        `json:"source"`
	Stem          string        `json:"stem"`
	Status        FileStatus    `json:"status"`
	Rows          int           `json:"rows"`
	ActivityCodes int           `json:"activity_codes,omitempty"`
	Duration      time.Duration `json:"duration"`
	Err           error         `json:"-"`
}

// JobSummary aggregates the results of one loader run
type JobSummary struct {
	Registry  Registry     `json:"registry"`
	TraceID   string       `json:"trace_id"`
	StartedAt time.Time    `json:"started_at"`
	Results   []FileResult `json:"results"`
}

// Count returns the number of results with the given status
func (s JobSummary) Count(status FileStatus) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Failed reports whether any file failed
func (s JobSummary) Failed() bool {
	return s.Count(FileStatusFailed) > 0
}
