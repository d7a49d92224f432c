package main

// bio-bedpe validates fusion calls in BEDPE format against a chromosome
// reference table.
//
// Example:
//
//    bio-bedpe validate -c chroms.tsv -i calls.bedpe -o calls.valid.bedpe
//
// rewrites calls.bedpe with canonical chromosome names, drops records with a
// '.' strand, and removes calls that describe the same fusion.  Nothing is
// written if any record is invalid.
//
//    bio-bedpe check -c chroms.tsv -i calls.bedpe
//
// prints "Validated" if calls.bedpe is already acceptable as is.

import (
	"log"

	"v.io/x/lib/cmdline"
)

func newCmdRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:     "bio-bedpe",
		Short:    "Validate and canonicalize fusion calls in BEDPE format",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdValidate(),
			newCmdCheck(),
		},
	}
}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
