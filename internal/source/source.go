// Package source provides source position and span value types shared by
// the token stream, the AST and diagnostics.
package source

import "fmt"

// Position is a location in a source file. Line and Column are 1-based,
// Offset is the 0-based byte offset.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

// String returns a string representation of the position.
func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p is located before other in the same file.
func (p Position) Before(other Position) bool {
	return p.Offset < other.Offset
}

// Span is a half-open source range from Start to End.
type Span struct {
	Start Position
	End   Position
}

// String returns a string representation of the span.
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s:%d:%d-%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", s.Start.File, s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// Len returns the byte length covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Between creates a span from start to end.
func Between(start, end Position) Span {
	return Span{Start: start, End: end}
}

// Join combines spans into one encompassing span.
func Join(spans ...Span) Span {
	if len(spans) == 0 {
		return Span{}
	}
	result := spans[0]
	for _, span := range spans[1:] {
		if span.Start.Offset < result.Start.Offset {
			result.Start = span.Start
		}
		if span.End.Offset > result.End.Offset {
			result.End = span.End
		}
	}
	return result
}
