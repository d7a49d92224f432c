package validator

import (
	"fmt"
	"strings"
)

// Kind classifies a validation error.
type Kind int

const (
	// ColumnCount: fewer than ten columns.
	ColumnCount Kind = iota
	// UnknownChromosome: the chromosome is not in the reference.
	UnknownChromosome
	// NonIntegerPosition: a start or end column is not an integer.
	NonIntegerPosition
	// BothPositionsUnknown: start and end of one side are both -1.
	BothPositionsUnknown
	// PositionOutOfRange: a position lies outside the chromosome.
	PositionOutOfRange
	// PositionOrder: start+1 > end.
	PositionOrder
	// InvalidStrand: a strand is not one of "+", "-", ".".
	InvalidStrand
	// AmbiguousStrand: a '.' strand in check mode.
	AmbiguousStrand
	// DuplicateBreakpoint: two records describe the same fusion, in check mode.
	DuplicateBreakpoint
)

var kindNames = [...]string{
	ColumnCount:          "column count",
	UnknownChromosome:    "unknown chromosome",
	NonIntegerPosition:   "non-integer position",
	BothPositionsUnknown: "both positions unknown",
	PositionOutOfRange:   "position out of range",
	PositionOrder:        "position order",
	InvalidStrand:        "invalid strand",
	AmbiguousStrand:      "ambiguous strand",
	DuplicateBreakpoint:  "duplicate breakpoint",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("validator.Kind(%d)", int(k))
}

// Error describes one invalid record.
type Error struct {
	Kind Kind
	// Line is the 1-based input line.
	Line int
	// Col is the 1-based column, or zero if the error is not about one column.
	Col int
	Msg string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d", e.Line)
		if e.Col > 0 {
			fmt.Fprintf(&b, ", column %d", e.Col)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	return b.String()
}

// Errors is the error returned by Validate when Opts.CollectErrors is set.
type Errors []*Error

// maxReportedErrors limits the number of messages joined by Errors.Error.
const maxReportedErrors = 20

func (errs Errors) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d invalid record(s)", len(errs))
	for i, e := range errs {
		if i == maxReportedErrors {
			fmt.Fprintf(&b, "\n(%d more)", len(errs)-i)
			break
		}
		b.WriteString("\n")
		b.WriteString(e.Error())
	}
	return b.String()
}
