package integrity

import (
	"fmt"
	"log/slog"

	"github.com/opendata-cz/cubepipe/rdf"
)

// Validator runs the constraint battery over a data cube graph.
type Validator struct {
	logger      *slog.Logger
	constraints []Constraint
}

// NewValidator returns a Validator over the full battery.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{logger: logger, constraints: Battery()}
}

// Validate evaluates every constraint against the graph. A constraint
// whose check panics is recorded as an errored result and does not
// count against the verdict.
func (v *Validator) Validate(g *rdf.Graph) Report {
	report := Report{Results: make([]Result, 0, len(v.constraints))}
	for _, c := range v.constraints {
		report.Results = append(report.Results, v.run(c, g))
	}
	for _, r := range report.Results {
		switch r.Outcome {
		case Violated:
			v.logger.Warn("constraint violated", "id", r.ID, "name", r.Name)
		case Error:
			v.logger.Warn("constraint check failed", "id", r.ID, "name", r.Name, "error", r.Err)
		}
	}
	if report.Passed() {
		v.logger.Info("data cube validation PASSED", "constraints", len(report.Results))
	} else {
		v.logger.Info("data cube validation FAILED", "violations", len(report.Violations()))
	}
	return report
}

// ValidateFile loads an RDF file and validates it. A parse failure is
// fatal, unlike a failing constraint check.
func (v *Validator) ValidateFile(path string) (Report, error) {
	g, err := rdf.Load(path)
	if err != nil {
		return Report{}, fmt.Errorf("load cube %s: %w", path, err)
	}
	return v.Validate(g), nil
}

func (v *Validator) run(c Constraint, g *rdf.Graph) (res Result) {
	res = Result{ID: c.ID, Name: c.Name, Outcome: Satisfied}
	defer func() {
		if r := recover(); r != nil {
			res.Outcome = Error
			res.Err = fmt.Errorf("constraint %s: %v", c.ID, r)
		}
	}()
	if c.Check(g) {
		res.Outcome = Violated
	}
	return res
}
