package bedpe

import (
	"context"
	"io"
	"strconv"

	"github.com/grailbio/base/errorreporter"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
)

// Writer serializes records as BEDPE lines.
type Writer struct {
	out *tsv.Writer
}

// NewWriter creates a Writer that writes to w.  Flush must be called after the
// last Write.
func NewWriter(w io.Writer) *Writer {
	return &Writer{out: tsv.NewWriter(w)}
}

// Write appends one line.
func (w *Writer) Write(r *Record) error {
	w.out.WriteString(r.Chrom1)
	w.out.WriteString(strconv.Itoa(r.Start1))
	w.out.WriteString(strconv.Itoa(r.End1))
	w.out.WriteString(r.Chrom2)
	w.out.WriteString(strconv.Itoa(r.Start2))
	w.out.WriteString(strconv.Itoa(r.End2))
	w.out.WriteString(r.Name)
	w.out.WriteString(r.Score)
	w.out.WriteByte(byte(r.Strand1))
	w.out.WriteByte(byte(r.Strand2))
	for _, col := range r.Extra {
		w.out.WriteString(col)
	}
	return w.out.EndLine()
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error { return w.out.Flush() }

// WritePath writes records to path, replacing any existing file.  Paths ending
// in ".gz" are gzip-compressed.  If writing fails, the partial file is
// removed.
func WritePath(ctx context.Context, path string, records []Record) (err error) {
	var out file.File
	if out, err = file.Create(ctx, path); err != nil {
		return errors.E(err, "create bedpe", path)
	}
	defer func() {
		if err != nil {
			if rerr := file.Remove(ctx, path); rerr != nil {
				log.Error.Printf("bedpe: remove %s: %v", path, rerr)
			}
		}
	}()

	var (
		dst = out.Writer(ctx)
		gz  *gzip.Writer
	)
	if fileio.DetermineType(path) == fileio.Gzip {
		gz = gzip.NewWriter(dst)
		dst = gz
	}
	w := NewWriter(dst)

	e := errorreporter.T{}
	for i := range records {
		if err := w.Write(&records[i]); err != nil {
			e.Set(errors.E(err, "write", path))
			break
		}
	}
	e.Set(w.Flush())
	if gz != nil {
		e.Set(gz.Close())
	}
	e.Set(out.Close(ctx))
	return e.Err()
}
