package nlreader

import (
	"fmt"
	"strings"
)

// Severity represents the severity level of a header diagnostic.
type Severity int

const (
	// Error means the header contradicts itself.
	Error Severity = iota
	// Warning means the header is consistent but the stream cannot be fully read.
	Warning
	// Info is an informational note.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single header lint finding.
type Diagnostic struct {
	Rule     string   // rule identifier (e.g., "nl_cons_within_cons")
	Severity Severity // ERROR, WARNING, or INFO
	Message  string   // human-readable description
	Field    string   // header field at fault (optional)
	Fix      string   // suggested fix (optional)
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.Field != "" {
		fmt.Fprintf(&b, " (field: %s)", d.Field)
	}
	if d.Fix != "" {
		fmt.Fprintf(&b, " -- fix: %s", d.Fix)
	}
	return b.String()
}

// LintRule is the interface for a single header check.
type LintRule interface {
	Name() string
	Apply(h Header) []Diagnostic
}

// ValidationError is returned by ValidateOrError when error-severity diagnostics exist.
type ValidationError struct {
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, d := range e.Diagnostics {
		msgs = append(msgs, d.String())
	}
	return fmt.Sprintf("validation failed with %d error(s):\n  %s", len(e.Diagnostics), strings.Join(msgs, "\n  "))
}

// ValidateHeader runs all built-in rules (and any extra rules) against the
// header's own arithmetic. Returns all diagnostics regardless of severity.
func ValidateHeader(h Header, extraRules ...LintRule) []Diagnostic {
	rules := builtInRules()
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(h)...)
	}
	return diagnostics
}

// ValidateOrError runs ValidateHeader and returns an error if any
// error-severity diagnostics are found. Non-error diagnostics are still
// returned.
func ValidateOrError(h Header, extraRules ...LintRule) ([]Diagnostic, error) {
	diagnostics := ValidateHeader(h, extraRules...)

	var errors []Diagnostic
	for _, d := range diagnostics {
		if d.Severity == Error {
			errors = append(errors, d)
		}
	}
	if len(errors) > 0 {
		return diagnostics, &ValidationError{Diagnostics: errors}
	}
	return diagnostics, nil
}

func builtInRules() []LintRule {
	return []LintRule{
		boundRule{"nl_cons_within_cons", "num_nl_cons",
			func(h Header) int64 { return int64(h.NumNLCons) },
			func(h Header) int64 { return int64(h.NumAlgebraicCons) },
			"nonlinear constraints exceed constraints"},
		boundRule{"nl_objs_within_objs", "num_nl_objs",
			func(h Header) int64 { return int64(h.NumNLObjs) },
			func(h Header) int64 { return int64(h.NumObjs) },
			"nonlinear objectives exceed objectives"},
		boundRule{"ranges_eqns_within_cons", "num_ranges",
			func(h Header) int64 { return int64(h.NumRanges) + int64(h.NumEqns) },
			func(h Header) int64 { return int64(h.NumAlgebraicCons) },
			"ranges plus equations exceed constraints"},
		boundRule{"network_cons_within_cons", "num_nl_net_cons",
			func(h Header) int64 { return int64(h.NumNLNetCons) + int64(h.NumLinearNetCons) },
			func(h Header) int64 { return int64(h.NumAlgebraicCons) },
			"network constraints exceed constraints"},
		boundRule{"compl_within_cons", "num_compl_conds",
			func(h Header) int64 { return int64(h.NumComplConds) },
			func(h Header) int64 { return int64(h.NumAlgebraicCons) },
			"complementarity conditions exceed constraints"},
		boundRule{"nl_compl_within_compl", "num_nl_compl_conds",
			func(h Header) int64 { return int64(h.NumNLComplConds) },
			func(h Header) int64 { return int64(h.NumComplConds) },
			"nonlinear complementarity conditions exceed complementarity conditions"},
		boundRule{"nl_vars_in_cons_within_vars", "num_nl_vars_in_cons",
			func(h Header) int64 { return int64(h.NumNLVarsInCons) },
			func(h Header) int64 { return int64(h.NumVars) },
			"nonlinear variables in constraints exceed variables"},
		boundRule{"nl_vars_in_objs_within_vars", "num_nl_vars_in_objs",
			func(h Header) int64 { return int64(h.NumNLVarsInObjs) },
			func(h Header) int64 { return int64(h.NumVars) },
			"nonlinear variables in objectives exceed variables"},
		boundRule{"nl_vars_in_both_within_each", "num_nl_vars_in_both",
			func(h Header) int64 { return int64(h.NumNLVarsInBoth) },
			func(h Header) int64 { return int64(min(h.NumNLVarsInCons, h.NumNLVarsInObjs)) },
			"nonlinear variables in both exceed nonlinear variables in constraints or objectives"},
		boundRule{"integer_vars_within_vars", "num_linear_integer_vars",
			func(h Header) int64 { return int64(h.NumIntegerVars()) },
			func(h Header) int64 { return int64(h.NumVars) },
			"discrete variables exceed variables"},
		boundRule{"con_nonzeros_bound", "num_con_nonzeros",
			func(h Header) int64 { return int64(h.NumConNonzeros) },
			func(h Header) int64 { return int64(h.NumVars) * int64(h.NumAlgebraicCons) },
			"Jacobian nonzeros exceed variables times constraints"},
		boundRule{"obj_nonzeros_bound", "num_obj_nonzeros",
			func(h Header) int64 { return int64(h.NumObjNonzeros) },
			func(h Header) int64 { return int64(h.NumVars) * int64(h.NumObjs) },
			"gradient nonzeros exceed variables times objectives"},
		binaryFormatRule{},
		noObjectiveRule{},
	}
}

// --- Rule: counts must not exceed their totals ---

type boundRule struct {
	name    string
	field   string
	count   func(Header) int64
	limit   func(Header) int64
	message string
}

func (r boundRule) Name() string { return r.name }

func (r boundRule) Apply(h Header) []Diagnostic {
	count, limit := r.count(h), r.limit(h)
	if count <= limit {
		return nil
	}
	return []Diagnostic{{
		Rule:     r.name,
		Severity: Error,
		Message:  fmt.Sprintf("%s (%d > %d)", r.message, count, limit),
		Field:    r.field,
	}}
}

// --- Rule: binary segments cannot be read ---

type binaryFormatRule struct{}

func (binaryFormatRule) Name() string { return "binary_format" }

func (binaryFormatRule) Apply(h Header) []Diagnostic {
	if h.Format != FormatBinary {
		return nil
	}
	return []Diagnostic{{
		Rule:     "binary_format",
		Severity: Warning,
		Message:  "header announces binary segments, which this reader does not decode",
		Field:    "format",
		Fix:      "write the problem in text format (option -og)",
	}}
}

// --- Rule: a problem without objectives is a feasibility problem ---

type noObjectiveRule struct{}

func (noObjectiveRule) Name() string { return "no_objective" }

func (noObjectiveRule) Apply(h Header) []Diagnostic {
	if h.NumObjs > 0 {
		return nil
	}
	return []Diagnostic{{
		Rule:     "no_objective",
		Severity: Info,
		Message:  "problem has no objectives",
		Field:    "num_objs",
	}}
}
