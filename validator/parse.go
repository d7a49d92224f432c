package validator

import (
	"fmt"
	"strconv"

	"github.com/grailbio/bedpe/encoding/bedpe"
	"github.com/grailbio/bedpe/encoding/chromref"
)

// ParseRecord validates the columns of one BEDPE line and converts them into
// a record with canonical chromosome names.  line is the 1-based input line,
// used in error messages.
//
// Checks run in column order and the first failure is returned as err.
// Out-of-range conditions that are not fatal under opts are returned as
// warnings.  ParseRecord does not apply the '.'-strand filter, nor the naming
// and scoring options.  fields may be modified.
func ParseRecord(ref *chromref.Table, fields []string, line int, opts Opts) (rec bedpe.Record, warnings []*Error, err *Error) {
	if len(fields) < bedpe.NumColumns {
		err = &Error{Kind: ColumnCount, Line: line,
			Msg: fmt.Sprintf("found %d column(s), a fusion bedpe needs at least %d", len(fields), bedpe.NumColumns)}
		return
	}
	if opts.FixStrand {
		fields[bedpe.ColStrand1] = fixStrand(fields[bedpe.ColStrand1])
		fields[bedpe.ColStrand2] = fixStrand(fields[bedpe.ColStrand2])
	}

	side := func(chromCol int, chrom *string, start, end *int) *Error {
		var (
			length int
			e      *Error
		)
		if *chrom, length, e = resolveChrom(ref, fields[chromCol], line, chromCol+1); e != nil {
			return e
		}
		if *start, e = parsePos(fields[chromCol+1], line, chromCol+2); e != nil {
			return e
		}
		if *end, e = parsePos(fields[chromCol+2], line, chromCol+3); e != nil {
			return e
		}
		if opts.SwapReversed && *start != bedpe.UnknownPos && *end != bedpe.UnknownPos && *start+1 > *end {
			*start, *end = *end, *start
		}
		w, e := checkPositions(*start, *end, length, line, chromCol+2, opts.StrictRange)
		warnings = append(warnings, w...)
		return e
	}
	if err = side(bedpe.ColChrom1, &rec.Chrom1, &rec.Start1, &rec.End1); err != nil {
		return
	}
	if err = side(bedpe.ColChrom2, &rec.Chrom2, &rec.Start2, &rec.End2); err != nil {
		return
	}
	if rec.Strand1, err = parseStrand(fields[bedpe.ColStrand1], line, bedpe.ColStrand1+1); err != nil {
		return
	}
	if rec.Strand2, err = parseStrand(fields[bedpe.ColStrand2], line, bedpe.ColStrand2+1); err != nil {
		return
	}
	rec.Name = fields[bedpe.ColName]
	rec.Score = fields[bedpe.ColScore]
	if len(fields) > bedpe.NumColumns {
		rec.Extra = append([]string(nil), fields[bedpe.NumColumns:]...)
	}
	return
}

func resolveChrom(ref *chromref.Table, token string, line, col int) (name string, length int, err *Error) {
	name, ok := ref.Resolve(token)
	if !ok {
		msg := fmt.Sprintf("chromosome name %q is not allowed", token)
		if s := ref.Suggest(token); s != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		return "", 0, &Error{Kind: UnknownChromosome, Line: line, Col: col, Msg: msg}
	}
	if length, ok = ref.Length(name); !ok {
		// chromref.Table guarantees every canonical name has a length.
		panic(name)
	}
	return name, length, nil
}

func parsePos(token string, line, col int) (int, *Error) {
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, &Error{Kind: NonIntegerPosition, Line: line, Col: col,
			Msg: fmt.Sprintf("position %q is not an integer", token)}
	}
	return v, nil
}

// checkPositions applies the paired-position rule to one side.  col is the
// 1-based column of start.
//
// With one position unknown, the other must lie in [1, length], where a start
// is taken as the 1-based position start+1.  With both known, start+1 <= end
// is required; start+1 < 1 and end > length are warnings unless strict is set.
func checkPositions(start, end, length, line, col int, strict bool) (warnings []*Error, err *Error) {
	outOfRange := func(pos, col int) *Error {
		return &Error{Kind: PositionOutOfRange, Line: line, Col: col,
			Msg: fmt.Sprintf("position %d out of range for chromosome of length %d", pos, length)}
	}
	switch {
	case start == bedpe.UnknownPos && end == bedpe.UnknownPos:
		err = &Error{Kind: BothPositionsUnknown, Line: line, Col: col,
			Msg: "positions -1 -1 are not allowed"}
	case start == bedpe.UnknownPos:
		if end < 1 || end > length {
			err = outOfRange(end, col+1)
		}
	case end == bedpe.UnknownPos:
		if start+1 < 1 || start+1 > length {
			err = outOfRange(start, col)
		}
	default:
		if start+1 > end {
			err = &Error{Kind: PositionOrder, Line: line, Col: col,
				Msg: fmt.Sprintf("position %d + 1 > %d", start, end)}
			return
		}
		if start+1 < 1 {
			warnings = append(warnings, outOfRange(start, col))
		}
		if end > length {
			warnings = append(warnings, outOfRange(end, col+1))
		}
		if strict && len(warnings) > 0 {
			err, warnings = warnings[0], nil
		}
	}
	return
}

func parseStrand(token string, line, col int) (bedpe.Strand, *Error) {
	s, ok := bedpe.ParseStrand(token)
	if !ok {
		return 0, &Error{Kind: InvalidStrand, Line: line, Col: col,
			Msg: fmt.Sprintf("strand %q should only contain +/-/.", token)}
	}
	return s, nil
}

// fixStrand maps the numeric strand spellings used by some callers to the
// BEDPE ones.
func fixStrand(s string) string {
	switch s {
	case "1", "+1":
		return "+"
	case "-1":
		return "-"
	}
	return s
}
