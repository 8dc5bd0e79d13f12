package framework

import (
	"strings"
	"time"
)

// TestID identifies a check by its position in the suite tree, for instance
// "backend/generate report/simple EDA".
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// Plus returns the TestID of a child check. The path is copied so that IDs
// remain valid after the parent runs further children.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

// TestResult is the record of one attempted check. Exactly one is appended to
// the run's results when the check finishes, whether it passed, failed its
// assertions, or blew up with a panic; after that it is never modified.
type TestResult struct {
	ID        TestID
	Passed    bool
	Message   string
	Details   map[string]interface{}
	Timestamp time.Time
}

// Results is the ordered accumulation of every TestResult from one run.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}
