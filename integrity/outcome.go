package integrity

// Outcome is the three-state result of evaluating one constraint.
type Outcome int

const (
	// Satisfied means the check ran and found no violating binding.
	Satisfied Outcome = iota
	// Violated means at least one violating binding was found.
	Violated
	// Error means the check itself failed to execute; it contributes
	// neither a pass nor a fail to the aggregate verdict.
	Error
)

// String returns the outcome name for logs and reports.
func (o Outcome) String() string {
	switch o {
	case Satisfied:
		return "satisfied"
	case Violated:
		return "violated"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one constraint.
type Result struct {
	ID      string
	Name    string
	Outcome Outcome
	Err     error
}

// Report collects the results of a full validation run, in battery order.
type Report struct {
	Results []Result
}

// Passed reports whether no constraint was violated. Constraints that
// errored do not count either way.
func (r Report) Passed() bool {
	for _, res := range r.Results {
		if res.Outcome == Violated {
			return false
		}
	}
	return true
}

// Violations returns the IDs of all violated constraints, in order.
func (r Report) Violations() []string {
	var out []string
	for _, res := range r.Results {
		if res.Outcome == Violated {
			out = append(out, res.ID)
		}
	}
	return out
}

// Errors returns the IDs of all constraints that failed to execute.
func (r Report) Errors() []string {
	var out []string
	for _, res := range r.Results {
		if res.Outcome == Error {
			out = append(out, res.ID)
		}
	}
	return out
}
