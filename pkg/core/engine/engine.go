package engine

import (
	"fmt"
	"slices"
	"time"
)

// Rule is a named, stateless constraint evaluator. Evaluate must treat the
// context as read-only and return its findings, or an error when the rule
// itself fails. A rule error never aborts a validation pass; the engine
// converts it into a single CRITICAL result and moves on.
type Rule interface {
	// ID returns a stable identifier for this rule
	ID() string

	// Evaluate runs the rule against the context and returns its findings
	Evaluate(ctx *Context) ([]ValidationResult, error)
}

// Engine runs an ordered list of rules over a shared context. The rule list
// is injected at construction so callers can customize or subset it; there
// is no global registry.
type Engine struct {
	rules []Rule

	// Clock supplies "now" for dating rule-failure results. Defaults to
	// time.Now; tests pin it.
	Clock func() time.Time
}

// New creates an engine with the given rules
func New(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the engine's rule list in evaluation order
func (e *Engine) Rules() []Rule {
	return slices.Clone(e.rules)
}

// Without returns a new engine with the named rules removed
func (e *Engine) Without(ruleIDs ...string) *Engine {
	kept := make([]Rule, 0, len(e.rules))
	for _, r := range e.rules {
		if !slices.Contains(ruleIDs, r.ID()) {
			kept = append(kept, r)
		}
	}
	return &Engine{rules: kept, Clock: e.Clock}
}

// Validate evaluates every rule once and concatenates their findings. Each
// rule's own findings are sorted by (date, staff) so output is deterministic;
// ordering between rules follows the injected rule order. A failing rule
// contributes one CRITICAL result carrying the rule's identifier and the raw
// error text, dated now, and evaluation continues with the remaining rules.
func (e *Engine) Validate(ctx *Context) []ValidationResult {
	now := time.Now
	if e.Clock != nil {
		now = e.Clock
	}

	var out []ValidationResult
	for _, rule := range e.rules {
		results, err := rule.Evaluate(ctx)
		if err != nil {
			out = append(out, ValidationResult{
				RuleID:   rule.ID(),
				Severity: SeverityCritical,
				Message:  fmt.Sprintf("rule %s failed: %v", rule.ID(), err),
				Date:     now(),
				Metadata: map[string]string{"error": err.Error()},
			})
			continue
		}
		sortResults(results)
		out = append(out, results...)
	}
	return out
}

// sortResults orders one rule's findings by (date, staff) for stable output
func sortResults(results []ValidationResult) {
	slices.SortStableFunc(results, func(a, b ValidationResult) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		switch {
		case a.StaffID < b.StaffID:
			return -1
		case a.StaffID > b.StaffID:
			return 1
		}
		return 0
	})
}
