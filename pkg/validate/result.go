package validate

// Result is the outcome of a single check.
type Result int

const (
	// ResultFailed means the metadata value is outside the bound and a
	// message was appended.
	ResultFailed Result = iota
	// ResultPassed means the metadata value satisfies the bound.
	ResultPassed
	// ResultSkipped means the check did not run because the inspected field
	// was never populated. Nothing was appended. Callers treating results as
	// booleans should decide explicitly whether skipped counts as passed.
	ResultSkipped
)

func (r Result) String() string {
	switch r {
	case ResultFailed:
		return "failed"
	case ResultPassed:
		return "passed"
	case ResultSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Failed reports whether the check appended an error.
func (r Result) Failed() bool { return r == ResultFailed }
