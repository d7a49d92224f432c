package validator

// Opts controls Validate.
type Opts struct {
	// SynthesizeName replaces the name column with "name<i>", where i is the
	// 0-based index of the record in the output.  Names are assigned after
	// duplicate elimination, so i follows the sorted output order rather than
	// input order: the first input record is not necessarily name0.  Running
	// Validate again on its own output leaves the names unchanged.
	SynthesizeName bool
	// ZeroScore replaces the score column with "0".
	ZeroScore bool
	// KeepAmbiguousStrand keeps records with a '.' strand.  It also disables
	// duplicate elimination.  By default such records are silently dropped and
	// the remaining records are deduplicated.
	KeepAmbiguousStrand bool
	// TruncateExtra drops the columns after strand2.
	TruncateExtra bool

	// StrictRange makes two out-of-range conditions on fully specified
	// intervals fatal: start+1 < 1, and end > chromosome length.  By default
	// they are only reported as warnings.
	StrictRange bool
	// CollectErrors continues past invalid records and reports all of them at
	// the end as an Errors value.  By default Validate stops at the first one.
	CollectErrors bool

	// Check selects the simple-check behavior: '.' strands and records that
	// collapse under duplicate elimination are errors, and the naming and
	// scoring options are ignored.
	Check bool

	// FixStrand rewrites strands "1" and "-1" to "+" and "-" before
	// validation.
	FixStrand bool
	// SwapReversed swaps start and end of a side when start+1 > end.
	SwapReversed bool
	// DropUnknownChrom skips records whose chromosome is not in the reference,
	// instead of failing.
	DropUnknownChrom bool
}

// DefaultOpts is the default configuration.  It matches the validator used for
// challenge submissions: no rewriting, '.' strands dropped, duplicates removed,
// and failure on the first invalid record.
var DefaultOpts = Opts{
	SynthesizeName:      false, // -s, -strict-name
	ZeroScore:           false, // -x, -strict-score
	KeepAmbiguousStrand: false, // -d, -keep-dot
	TruncateExtra:       false, // -truncate
	StrictRange:         false, // -strict-range
	CollectErrors:       false, // -collect-errors
	Check:               false, // "check" subcommand
	FixStrand:           false, // -fix-strand
	SwapReversed:        false, // -swap-reversed
	DropUnknownChrom:    false, // -drop-unknown-chrom
}

// dedupEnabled reports whether Validate runs duplicate elimination.
func (o Opts) dedupEnabled() bool {
	return o.Check || !o.KeepAmbiguousStrand
}
