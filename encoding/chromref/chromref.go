// Package chromref loads chromosome reference tables.  A reference table maps
// every accepted spelling of a chromosome name (an alias) to one canonical
// name, and records the length of each canonical chromosome.
//
// The file format is tab-separated, with one header line followed by one line
// per chromosome:
//
//   <canonical name>\t<length>\t<alias1,alias2,...>
//
// For example:
//
//   name	length	aliases
//   chr1	249250621	1,chr1
//   chrM	16571	MT,chrM,M
//
// A canonical name is not implicitly an alias of itself; it must be listed in
// the alias column to be accepted in input files.
package chromref

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
)

// Kind classifies a reference-file error.
type Kind int

const (
	// MalformedReference is reported for lines that cannot be parsed, and for
	// canonical names defined more than once.
	MalformedReference Kind = iota
	// ConflictingAlias is reported when one alias is listed under two
	// different canonical names.
	ConflictingAlias
)

func (k Kind) String() string {
	switch k {
	case MalformedReference:
		return "malformed reference"
	case ConflictingAlias:
		return "conflicting alias"
	}
	return fmt.Sprintf("chromref.Kind(%d)", int(k))
}

// Error describes a problem in a reference file.
type Error struct {
	Kind Kind
	// Line is the 1-based line number in the reference file, counting the
	// header line.  Zero if unknown.
	Line int
	Msg  string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("chromref: %v: line %d: %s", e.Kind, e.Line, e.Msg)
	}
	return fmt.Sprintf("chromref: %v: %s", e.Kind, e.Msg)
}

// Entry is one chromosome of the reference.
type Entry struct {
	// Name is the canonical chromosome name used in output.
	Name string
	// Length is the chromosome length in bases.
	Length int
	// Aliases lists the names accepted for this chromosome, in file order.
	Aliases []string
}

// Table is a loaded chromosome reference.  It is read-only once Read returns,
// and safe for concurrent use.
type Table struct {
	entries   []Entry
	canonical map[string]string // alias -> canonical name
	lengths   map[string]int    // canonical name -> length
	aliases   []string          // sorted, for Suggest
}

// numRefColumns is the number of fields on a reference line.
const numRefColumns = 3

// refRow is one data line of the reference file.  Length is kept as a string
// so that a bad value is reported as a MalformedReference error with the line
// number.
type refRow struct {
	Name    string
	Length  string
	Aliases string
}

// Read parses a reference table from r.  The first line is a header and is
// ignored.  Blank lines are skipped.
func Read(r io.Reader) (*Table, error) {
	in := tsv.NewReader(r)
	in.LazyQuotes = true
	// Field counts are checked below, so that short and long lines are
	// reported with their line number.
	in.FieldsPerRecord = -1

	t := &Table{
		canonical: map[string]string{},
		lengths:   map[string]int{},
	}
	for header := true; ; header = false {
		fields, err := in.Reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			line := 0
			if pe, ok := err.(*csv.ParseError); ok {
				line = pe.Line
			}
			return nil, &Error{Kind: MalformedReference, Line: line, Msg: err.Error()}
		}
		if header {
			continue
		}
		line, _ := in.Reader.FieldPos(0)
		if len(fields) != numRefColumns {
			return nil, &Error{Kind: MalformedReference, Line: line,
				Msg: fmt.Sprintf("found %d field(s), want %d (name, length, aliases)", len(fields), numRefColumns)}
		}
		row := refRow{Name: fields[0], Length: fields[1], Aliases: fields[2]}
		if err := t.add(row, line); err != nil {
			return nil, err
		}
	}
	sort.Strings(t.aliases)
	return t, nil
}

func (t *Table) add(row refRow, line int) error {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return &Error{Kind: MalformedReference, Line: line, Msg: "empty chromosome name"}
	}
	length, err := strconv.Atoi(strings.TrimSpace(row.Length))
	if err != nil || length <= 0 {
		return &Error{Kind: MalformedReference, Line: line,
			Msg: fmt.Sprintf("chromosome %s: length %q is not a positive integer", name, row.Length)}
	}
	if _, ok := t.lengths[name]; ok {
		return &Error{Kind: MalformedReference, Line: line,
			Msg: fmt.Sprintf("chromosome %s is defined more than once", name)}
	}
	e := Entry{Name: name, Length: length}
	for _, alias := range strings.Split(strings.TrimRight(row.Aliases, "\r\n"), ",") {
		if alias == "" {
			continue
		}
		if prev, ok := t.canonical[alias]; ok {
			if prev != name {
				return &Error{Kind: ConflictingAlias, Line: line,
					Msg: fmt.Sprintf("alias %s maps to both %s and %s", alias, prev, name)}
			}
			continue
		}
		t.canonical[alias] = name
		t.aliases = append(t.aliases, alias)
		e.Aliases = append(e.Aliases, alias)
	}
	t.lengths[name] = length
	t.entries = append(t.entries, e)
	return nil
}

// ReadPath is a wrapper for Read that takes a path instead of an io.Reader.
// Paths ending in ".gz" are decompressed.
func ReadPath(ctx context.Context, path string) (t *Table, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, errors.E(err, "open chromosome reference", path)
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	r := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(r); err != nil {
			return nil, errors.E(err, "gunzip", path)
		}
		defer gz.Close() // nolint: errcheck
		r = gz
	}
	return Read(r)
}

// Resolve returns the canonical name for the given alias.
func (t *Table) Resolve(alias string) (string, bool) {
	name, ok := t.canonical[alias]
	return name, ok
}

// Length returns the length of the canonical chromosome.
func (t *Table) Length(name string) (int, bool) {
	n, ok := t.lengths[name]
	return n, ok
}

// Entries returns the chromosomes in file order.  The caller must not modify
// the result.
func (t *Table) Entries() []Entry { return t.entries }

// Len returns the number of canonical chromosomes.
func (t *Table) Len() int { return len(t.entries) }

// maxSuggestDistance bounds the edit distance of a Suggest match.
const maxSuggestDistance = 1

// Suggest returns the alias closest to name, or "" if no alias is close.  An
// alias that differs from name only in case is preferred; otherwise the alias
// with the smallest Levenshtein distance wins, with ties resolved to the
// lexicographically smallest alias.
func (t *Table) Suggest(name string) string {
	for _, alias := range t.aliases {
		if strings.EqualFold(alias, name) {
			return alias
		}
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, alias := range t.aliases {
		if d := matchr.Levenshtein(name, alias); d < bestDist {
			best, bestDist = alias, d
		}
	}
	return best
}
