// Package bedpe reads and writes BEDPE files.  A BEDPE line describes a pair
// of genomic intervals, such as the two breakpoints of a gene fusion:
//
//   chrom1 start1 end1 chrom2 start2 end2 name score strand1 strand2 [extra...]
//
// Columns are tab-separated.  Intervals are 0-based and half-open.  A position
// of -1 means the coordinate is unknown.
package bedpe

import (
	"strconv"
	"strings"
)

// NumColumns is the number of required BEDPE columns.
const NumColumns = 10

// Column indexes of the required fields.
const (
	ColChrom1 = iota
	ColStart1
	ColEnd1
	ColChrom2
	ColStart2
	ColEnd2
	ColName
	ColScore
	ColStrand1
	ColStrand2
)

// UnknownPos is the sentinel for an unknown breakpoint coordinate.
const UnknownPos = -1

// Strand is the orientation of one side of a record.
type Strand byte

const (
	// Forward is the '+' strand.
	Forward Strand = '+'
	// Reverse is the '-' strand.
	Reverse Strand = '-'
	// Unstranded is the '.' strand, for records whose orientation could not be
	// determined.
	Unstranded Strand = '.'
)

// ParseStrand parses "+", "-" or ".".
func ParseStrand(s string) (Strand, bool) {
	if len(s) != 1 {
		return 0, false
	}
	switch st := Strand(s[0]); st {
	case Forward, Reverse, Unstranded:
		return st, true
	}
	return 0, false
}

func (s Strand) String() string { return string([]byte{byte(s)}) }

// Record is one BEDPE line.
type Record struct {
	Chrom1       string
	Start1, End1 int
	Chrom2       string
	Start2, End2 int
	Name         string
	Score        string
	Strand1      Strand
	Strand2      Strand
	Extra        []string // Columns after strand2, verbatim.
}

// anchor returns the coordinate that marks the junction on one side: the end
// of a '+' interval, the start otherwise.
func anchor(strand Strand, start, end int) int {
	if strand == Forward {
		return end
	}
	return start
}

// Anchor1 returns the junction coordinate of the first breakpoint.
func (r *Record) Anchor1() int { return anchor(r.Strand1, r.Start1, r.End1) }

// Anchor2 returns the junction coordinate of the second breakpoint.
func (r *Record) Anchor2() int { return anchor(r.Strand2, r.Start2, r.End2) }

// Fields returns the record's columns as strings.
func (r *Record) Fields() []string {
	f := make([]string, 0, NumColumns+len(r.Extra))
	f = append(f,
		r.Chrom1, strconv.Itoa(r.Start1), strconv.Itoa(r.End1),
		r.Chrom2, strconv.Itoa(r.Start2), strconv.Itoa(r.End2),
		r.Name, r.Score, r.Strand1.String(), r.Strand2.String())
	return append(f, r.Extra...)
}

// String returns the record as a BEDPE line, without the trailing newline.
func (r *Record) String() string { return strings.Join(r.Fields(), "\t") }
