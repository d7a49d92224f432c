// Package validator checks BEDPE fusion calls against a chromosome reference
// and rewrites them into a canonical form.
//
// Each line is validated on its own (see ParseRecord): chromosome names are
// resolved to their canonical spelling, positions are checked against the
// chromosome length, and strands must be one of "+", "-", ".".  Records with
// a '.' strand are dropped unless Opts.KeepAmbiguousStrand is set, in which
// case duplicate elimination (see Dedup) is skipped as well.
//
// Validate stops at the first invalid record unless Opts.CollectErrors is
// set.  Nothing is written on failure.
package validator

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bedpe/encoding/bedpe"
	"github.com/grailbio/bedpe/encoding/chromref"
)

// Stats counts what happened to the input lines.
type Stats struct {
	// Lines is the number of lines read.
	Lines int
	// Accepted is the number of records in the result.
	Accepted int
	// DroppedAmbiguous counts records dropped because of a '.' strand.
	DroppedAmbiguous int
	// DroppedUnknownChrom counts records dropped by Opts.DropUnknownChrom.
	DroppedUnknownChrom int
	// DroppedDuplicate counts records removed by Dedup.
	DroppedDuplicate int
}

// Result is the output of a successful Validate call.
type Result struct {
	// Records is the validated output.  It is in sorted order if duplicate
	// elimination ran, and in input order otherwise.
	Records []bedpe.Record
	// Warnings lists the non-fatal position checks that failed on accepted
	// records.
	Warnings []*Error
	Stats    Stats
}

// Digest returns a hash of the serialized records.  Two results with the same
// records in the same order have the same digest.
func (r *Result) Digest() uint64 {
	h := seahash.New()
	for i := range r.Records {
		h.Write([]byte(r.Records[i].String())) // nolint: errcheck
		h.Write([]byte{'\n'})                  // nolint: errcheck
	}
	return h.Sum64()
}

// validation is the state of one Validate call.
type validation struct {
	ref  *chromref.Table
	opts Opts
	res  *Result
	errs Errors
	// lines[i] is the input line of res.Records[i], before dedup.
	lines []int
}

// fail records err.  It returns true if validation must stop.
func (v *validation) fail(err *Error) bool {
	v.errs = append(v.errs, err)
	return !v.opts.CollectErrors
}

func (v *validation) add(fields []string, line int) (stop bool) {
	v.res.Stats.Lines++
	rec, warnings, err := ParseRecord(v.ref, fields, line, v.opts)
	if err != nil {
		if err.Kind == UnknownChromosome && v.opts.DropUnknownChrom {
			log.Debug.Printf("dropping record: %v", err)
			v.res.Stats.DroppedUnknownChrom++
			return false
		}
		return v.fail(err)
	}
	if rec.Strand1 == bedpe.Unstranded || rec.Strand2 == bedpe.Unstranded {
		switch {
		case v.opts.Check:
			col := bedpe.ColStrand1 + 1
			if rec.Strand1 != bedpe.Unstranded {
				col++
			}
			return v.fail(&Error{Kind: AmbiguousStrand, Line: line, Col: col, Msg: "dot not allowed for strand"})
		case !v.opts.KeepAmbiguousStrand:
			v.res.Stats.DroppedAmbiguous++
			return false
		}
	}
	for _, w := range warnings {
		log.Error.Printf("warning: %v", w)
	}
	v.res.Warnings = append(v.res.Warnings, warnings...)
	if v.opts.TruncateExtra {
		rec.Extra = nil
	}
	v.res.Records = append(v.res.Records, rec)
	v.lines = append(v.lines, line)
	return false
}

func (v *validation) dedup() {
	recs := v.res.Records
	kept, dups := Dedup(recs)
	if v.opts.Check {
		for _, d := range dups {
			prev, cur := &recs[d.Prev], &recs[d.Index]
			msg := fmt.Sprintf("lines %d (%s:%d-%d) and %d (%s:%d-%d) are essentially the same",
				v.lines[d.Prev], prev.Chrom1, prev.Start1, prev.End1,
				v.lines[d.Index], cur.Chrom1, cur.Start1, cur.End1)
			if v.fail(&Error{Kind: DuplicateBreakpoint, Line: v.lines[d.Index], Msg: msg}) {
				return
			}
		}
		return
	}
	for _, d := range dups {
		log.Debug.Printf("line %d duplicates line %d, removed", v.lines[d.Index], v.lines[d.Prev])
	}
	v.res.Records = kept
	v.res.Stats.DroppedDuplicate = len(dups)
}

// rewrite applies the naming and scoring options in output order.
func (v *validation) rewrite() {
	if v.opts.Check {
		return
	}
	for i := range v.res.Records {
		r := &v.res.Records[i]
		if v.opts.SynthesizeName {
			r.Name = "name" + strconv.Itoa(i)
		}
		if v.opts.ZeroScore {
			r.Score = "0"
		}
	}
}

// Validate reads BEDPE lines from in and validates them against ref.  On
// failure it returns a *Error, or an Errors value if opts.CollectErrors is
// set.  Read errors are returned as is.
func Validate(ref *chromref.Table, in *bedpe.Reader, opts Opts) (*Result, error) {
	v := &validation{ref: ref, opts: opts, res: &Result{}}
	for in.Scan() {
		if v.add(in.Fields(), in.Line()) {
			break
		}
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	if len(v.errs) == 0 && opts.dedupEnabled() {
		v.dedup()
	}
	if len(v.errs) > 0 {
		if !opts.CollectErrors {
			return nil, v.errs[0]
		}
		return nil, v.errs
	}
	v.rewrite()

	s := &v.res.Stats
	s.Accepted = len(v.res.Records)
	log.Printf("validated %d line(s): %d accepted, %d dropped for '.' strand, %d dropped for unknown chromosome, %d duplicate(s) removed, %d warning(s)",
		s.Lines, s.Accepted, s.DroppedAmbiguous, s.DroppedUnknownChrom, s.DroppedDuplicate, len(v.res.Warnings))
	return v.res, nil
}

// ValidateReader is a wrapper for Validate that takes an io.Reader.
func ValidateReader(ref *chromref.Table, in io.Reader, opts Opts) (*Result, error) {
	return Validate(ref, bedpe.NewReader(in), opts)
}

// ValidatePath is a wrapper for Validate that takes a path.
func ValidatePath(ctx context.Context, ref *chromref.Table, path string, opts Opts) (res *Result, err error) {
	var in *bedpe.PathReader
	if in, err = bedpe.Open(ctx, path); err != nil {
		return nil, err
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Validate(ref, in.Reader, opts)
}
