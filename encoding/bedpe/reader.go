package bedpe

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
	perrors "github.com/pkg/errors"
)

// maxLineLen bounds the length of one BEDPE line.  bufio.Scanner does not
// grow its buffer past this.
const maxLineLen = 16 << 20

// Reader splits a BEDPE stream into lines of tab-separated fields.  It does
// not interpret the fields; see the validator package for that.
//
// Example:
//   r := bedpe.NewReader(in)
//   for r.Scan() {
//     fields := r.Fields()
//     ...
//   }
//   if err := r.Err(); err != nil { ... }
type Reader struct {
	scanner *bufio.Scanner
	line    int
	fields  []string
	err     error
}

// NewReader creates a Reader that reads from in.
func NewReader(in io.Reader) *Reader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineLen)
	return &Reader{scanner: scanner}
}

// Scan reads the next line.  It returns false on EOF or error.  Every line,
// including an empty one, is reported.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			r.err = perrors.Wrapf(err, "bedpe: read line %d", r.line+1)
		}
		return false
	}
	r.line++
	// The scanner removes the "\n" or "\r\n" terminator.
	r.fields = strings.Split(r.scanner.Text(), "\t")
	return true
}

// Fields returns the columns of the current line.  The slice is owned by the
// caller; the next Scan allocates a new one.
func (r *Reader) Fields() []string { return r.fields }

// Line returns the 1-based number of the current line.
func (r *Reader) Line() int { return r.line }

// Err returns the first error encountered by Scan.
func (r *Reader) Err() error { return r.err }

// PathReader is a Reader over a file.  It must be closed after use.
type PathReader struct {
	*Reader
	in file.File
	gz *gzip.Reader
}

// Open opens the BEDPE file at path for reading.  Paths ending in ".gz" are
// decompressed.
func Open(ctx context.Context, path string) (*PathReader, error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open bedpe", path)
	}
	pr := &PathReader{in: in}
	r := io.Reader(in.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		if pr.gz, err = gzip.NewReader(r); err != nil {
			_ = in.Close(ctx)
			return nil, errors.E(err, "gunzip", path)
		}
		r = pr.gz
	}
	pr.Reader = NewReader(r)
	return pr, nil
}

// Close closes the underlying file.
func (pr *PathReader) Close(ctx context.Context) error {
	if pr.gz != nil {
		if err := pr.gz.Close(); err != nil {
			_ = pr.in.Close(ctx)
			return err
		}
	}
	return pr.in.Close(ctx)
}
