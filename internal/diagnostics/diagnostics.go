// Package diagnostics provides the error records the parser emits and the
// collector that accumulates them. The parser never aborts on malformed
// input; it reports here and resynchronizes, so a run always ends with a
// Program plus zero or more diagnostics.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/piotrmaciejbednarski/FluxLang-sub000/internal/source"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Code classifies a diagnostic.
type Code int

const (
	// LexicalPassthrough reports a token already marked erroneous upstream;
	// the parser forwards it without re-validation.
	LexicalPassthrough Code = iota
	// UnexpectedToken reports a required terminal that was not found.
	UnexpectedToken
	ExpectedIdentifier
	ExpectedType
	ExpectedExpression
	ExpectedDeclaration
	UnmatchedDelimiter
)

func (c Code) String() string {
	switch c {
	case LexicalPassthrough:
		return "lexical"
	case UnexpectedToken:
		return "unexpected-token"
	case ExpectedIdentifier:
		return "expected-identifier"
	case ExpectedType:
		return "expected-type"
	case ExpectedExpression:
		return "expected-expression"
	case ExpectedDeclaration:
		return "expected-declaration"
	case UnmatchedDelimiter:
		return "unmatched-delimiter"
	default:
		return "unknown"
	}
}

// Diagnostic is a single structured report with its source range.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Message  string
	Span     source.Span
}

// String formats the diagnostic the way the CLI prints it unstyled.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", d.Span.Start, d.Severity, d.Message, d.Code)
}

// Collector accumulates diagnostics. The zero value is ready to use.
type Collector struct {
	items  []Diagnostic
	errors int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector { return &Collector{} }

// Add records a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.items = append(c.items, d)
	if d.Severity == SeverityError {
		c.errors++
	}
}

// AddError records an error-severity diagnostic.
func (c *Collector) AddError(code Code, message string, span source.Span) {
	c.Add(Diagnostic{Code: code, Severity: SeverityError, Message: message, Span: span})
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (c *Collector) HasErrors() bool { return c.errors > 0 }

// Len returns the number of recorded diagnostics.
func (c *Collector) Len() int { return len(c.items) }

// Items returns the recorded diagnostics in insertion order.
func (c *Collector) Items() []Diagnostic { return c.items }

// Sort orders diagnostics by source position, preserving insertion order
// for equal positions.
func (c *Collector) Sort() {
	sort.SliceStable(c.items, func(i, j int) bool {
		return c.items[i].Span.Start.Before(c.items[j].Span.Start)
	})
}
