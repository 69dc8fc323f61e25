package models

// RunStatus is the terminal state of one pipeline run.
type RunStatus string

const (
	RunCompleted          RunStatus = "completed"
	RunCompletedWithSkips RunStatus = "completed_with_skips"
	RunAborted            RunStatus = "aborted"
)

// RunResult summarizes one pipeline run for logging and tests.
type RunResult struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Status     RunStatus `json:"status"`
	Discovered int       `json:"discovered"`
	New        int       `json:"new"`
	Extracted  int       `json:"extracted"`
	Skipped    int       `json:"skipped"`
	Delivered  int       `json:"delivered"`
	Err        string    `json:"error,omitempty"`
}
