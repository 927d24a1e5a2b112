// Package report provides structured persistence and retrieval of lint
// run records. Records are stored as typed structs and can be queried
// by file.
package report

// Store persists and retrieves run records.
type Store interface {
	Save(rec *Record) error
	Load(runID string) (*Record, error)
}

// Record holds the outcome of a single lint run.
type Record struct {
	ID     string `json:"id"`
	Tool   string `json:"tool"`
	Target string `json:"target"`

	// ExitCode is the tool's own termination status. Passed is true
	// only when it was zero.
	ExitCode int  `json:"exit_code"`
	Passed   bool `json:"passed"`

	Truncated bool    `json:"truncated,omitempty"` // captured output hit the size cap
	Issues    []Issue `json:"issues,omitempty"`    // best-effort parse of the tool's output
}

// Issue represents a single finding reported by the lint tool.
type Issue struct {
	File    string `json:"file"`
	Line    int    `json:"line,omitempty"`
	Col     int    `json:"col,omitempty"`
	Code    string `json:"code,omitempty"` // tool-specific rule code, e.g. E501
	Message string `json:"message"`
}

// ByFile returns the record's issues for a given file path.
func (r *Record) ByFile(file string) []Issue {
	var out []Issue
	for _, is := range r.Issues {
		if is.File == file {
			out = append(out, is)
		}
	}
	return out
}

// Files returns the distinct files with issues, in first-seen order.
func (r *Record) Files() []string {
	var out []string
	seen := make(map[string]bool)
	for _, is := range r.Issues {
		if !seen[is.File] {
			seen[is.File] = true
			out = append(out, is.File)
		}
	}
	return out
}
