package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bedpe/encoding/bedpe"
	"github.com/grailbio/bedpe/encoding/chromref"
	"github.com/grailbio/bedpe/validator"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"
)

// pathFlags are the file arguments shared by all subcommands.
type pathFlags struct {
	chromPath, inputPath, outputPath string
}

// boolFlag registers a bool flag under several names.
func boolFlag(fs *flag.FlagSet, p *bool, usage string, names ...string) {
	for _, name := range names {
		fs.BoolVar(p, name, *p, usage)
	}
}

func stringFlag(fs *flag.FlagSet, p *string, usage string, names ...string) {
	for _, name := range names {
		fs.StringVar(p, name, *p, usage)
	}
}

func addPathFlags(fs *flag.FlagSet, f *pathFlags, withOutput bool) {
	stringFlag(fs, &f.chromPath, "Chromosome reference table: name, length and comma-separated aliases per line, after a header line.",
		"c", "chromosome-file")
	stringFlag(fs, &f.inputPath, "Input BEDPE file. Paths ending in .gz are decompressed.",
		"i", "input-file")
	if withOutput {
		stringFlag(fs, &f.outputPath, "Output BEDPE file. Paths ending in .gz are compressed. If empty, records are written to stdout.",
			"o", "output-file")
	}
}

func (f *pathFlags) check(cmd string, argv []string) error {
	if len(argv) != 0 {
		return fmt.Errorf("%s takes no positional arguments, but got %v", cmd, argv)
	}
	if f.chromPath == "" {
		return fmt.Errorf("%s: -chromosome-file is required", cmd)
	}
	if f.inputPath == "" {
		return fmt.Errorf("%s: -input-file is required", cmd)
	}
	return nil
}

func newCmdValidate() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "validate",
		Short: "Validate a BEDPE file and write it in canonical form",
		Long: `
Validate reads the input BEDPE file, checks every record against the chromosome
reference, and writes the records with canonical chromosome names.  Records
with a '.' strand are dropped, and calls that describe the same fusion are
collapsed, unless -keep-dot is set.  If any record is invalid the command fails
and no output is written.`,
	}
	var (
		paths pathFlags
		opts  = validator.DefaultOpts
		fs    = &cmd.Flags
	)
	addPathFlags(fs, &paths, true)
	boolFlag(fs, &opts.SynthesizeName, "Replace the name column with name<i>, i being the output record index.",
		"s", "strict-name", "is-strict-1")
	boolFlag(fs, &opts.ZeroScore, "Replace the score column with 0.",
		"x", "strict-score", "is-strict-2")
	boolFlag(fs, &opts.KeepAmbiguousStrand, "Keep records with a '.' strand, and skip duplicate elimination.",
		"d", "keep-dot", "is-keep-dot")
	boolFlag(fs, &opts.StrictRange, "Fail, instead of warning, on start+1 < 1 or end > chromosome length.",
		"strict-range")
	boolFlag(fs, &opts.CollectErrors, "Report every invalid record instead of stopping at the first.",
		"collect-errors")
	boolFlag(fs, &opts.TruncateExtra, "Drop the columns after strand2.",
		"truncate")
	boolFlag(fs, &opts.FixStrand, "Rewrite strands 1 and -1 to + and -.",
		"fix-strand")
	boolFlag(fs, &opts.SwapReversed, "Swap start and end when start+1 > end.",
		"swap-reversed")
	boolFlag(fs, &opts.DropUnknownChrom, "Skip records on chromosomes missing from the reference.",
		"drop-unknown-chrom")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := paths.check(cmd.Name, argv); err != nil {
			return err
		}
		return validate(vcontext.Background(), env.Stdout, paths, opts)
	})
	return cmd
}

func newCmdCheck() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "check",
		Short: "Check that a BEDPE file needs no rewriting",
		Long: `
Check validates the input BEDPE file like validate, but also rejects records
with a '.' strand and calls that describe the same fusion as another call.  It
prints "Validated" on success and writes no records.`,
	}
	var (
		paths pathFlags
		opts  = validator.DefaultOpts
	)
	opts.Check = true
	addPathFlags(&cmd.Flags, &paths, false)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if err := paths.check(cmd.Name, argv); err != nil {
			return err
		}
		if _, err := run(vcontext.Background(), paths, opts); err != nil {
			return err
		}
		_, err := fmt.Fprintln(env.Stdout, "Validated")
		return err
	})
	return cmd
}

func run(ctx context.Context, paths pathFlags, opts validator.Opts) (*validator.Result, error) {
	ref, err := chromref.ReadPath(ctx, paths.chromPath)
	if err != nil {
		return nil, err
	}
	log.Debug.Printf("%s: %d chromosome(s)", paths.chromPath, ref.Len())
	res, err := validator.ValidatePath(ctx, ref, paths.inputPath, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", paths.inputPath)
	}
	return res, nil
}

func validate(ctx context.Context, stdout io.Writer, paths pathFlags, opts validator.Opts) error {
	res, err := run(ctx, paths, opts)
	if err != nil {
		return err
	}
	if paths.outputPath == "" {
		w := bedpe.NewWriter(stdout)
		for i := range res.Records {
			if err := w.Write(&res.Records[i]); err != nil {
				return err
			}
		}
		return w.Flush()
	}
	if err := bedpe.WritePath(ctx, paths.outputPath, res.Records); err != nil {
		return err
	}
	log.Printf("wrote %d record(s) to %s, digest %016x", len(res.Records), paths.outputPath, res.Digest())
	return nil
}
