package model

// Path represents a file system path.
type Path string

// Problem is one entry of a batch file.
type Problem struct {
	ID            string             `yaml:"id"`
	Input         string             `yaml:"input"`
	Operation     OperationKind      `yaml:"operation,omitempty"`
	WithRespectTo string             `yaml:"wrt,omitempty"`
	Variables     map[string]float64 `yaml:"variables,omitempty"`
	// Expect, when set, is compared against the final result.
	Expect string `yaml:"expect,omitempty"`
	// Source is the file the problem was read from.
	Source Path `yaml:"-"`
}

// ReportStatus is the outcome of a batch problem.
type ReportStatus string

const (
	// Solved means the engine produced a solution matching any expectation.
	Solved ReportStatus = "solved"
	// Mismatch means a solution was produced but differs from the expectation.
	Mismatch ReportStatus = "mismatch"
	// Failed means the engine returned an error.
	Failed ReportStatus = "failed"
)

// Report records the result of evaluating one Problem.
type Report struct {
	Source   Path         `yaml:"source"`
	Problem  Problem      `yaml:"problem"`
	Status   ReportStatus `yaml:"status"`
	Solution *Solution    `yaml:"solution,omitempty"`
	Error    string       `yaml:"error,omitempty"`
	Diff     string       `yaml:"diff,omitempty"`
}
