package validator

import (
	"strings"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/bedpe/encoding/bedpe"
)

// dedupKey orders records by (chrom1, chrom2, strand1, strand2, anchor1,
// anchor2).  Ties are broken by input index, so the order is stable and no two
// keys compare equal in the tree.
type dedupKey struct {
	rec              *bedpe.Record
	anchor1, anchor2 int
	index            int
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Compare implements llrb.Comparable.
func (k dedupKey) Compare(c llrb.Comparable) int {
	k2 := c.(dedupKey)
	if c := strings.Compare(k.rec.Chrom1, k2.rec.Chrom1); c != 0 {
		return c
	}
	if c := strings.Compare(k.rec.Chrom2, k2.rec.Chrom2); c != 0 {
		return c
	}
	if c := cmpInt(int(k.rec.Strand1), int(k2.rec.Strand1)); c != 0 {
		return c
	}
	if c := cmpInt(int(k.rec.Strand2), int(k2.rec.Strand2)); c != 0 {
		return c
	}
	if c := cmpInt(k.anchor1, k2.anchor1); c != 0 {
		return c
	}
	if c := cmpInt(k.anchor2, k2.anchor2); c != 0 {
		return c
	}
	return cmpInt(k.index, k2.index)
}

// sameOrientation reports whether two keys are on the same chromosome pair
// with the same strands.
func (k dedupKey) sameOrientation(k2 dedupKey) bool {
	return k.rec.Chrom1 == k2.rec.Chrom1 && k.rec.Chrom2 == k2.rec.Chrom2 &&
		k.rec.Strand1 == k2.rec.Strand1 && k.rec.Strand2 == k2.rec.Strand2
}

// shift returns the distance from prev to cur along the strand.
func shift(strand bedpe.Strand, prev, cur int) int {
	if strand == bedpe.Forward {
		return cur - prev
	}
	return prev - cur
}

// Duplicate describes a record removed by Dedup.  Both fields index the slice
// passed to Dedup.
type Duplicate struct {
	// Index is the removed record.
	Index int
	// Prev is the record immediately before it in sorted order.  It may itself
	// have been removed.
	Prev int
}

// Dedup removes records that describe the same fusion as their predecessor.
//
// The records are sorted by chromosomes, strands and anchor positions (see
// bedpe.Record.Anchor1).  A record is a duplicate of the one before it if
// both have the same chromosomes and strands, and both anchors moved by the
// same distance along their strands: the two calls are the same junction
// placed at different positions within a region of microhomology.  Within a
// run of such records only the first is kept.
//
// Dedup returns the remaining records in sorted order, and the removed ones.
// It does not modify recs.
func Dedup(recs []bedpe.Record) (kept []bedpe.Record, dups []Duplicate) {
	tree := llrb.Tree{}
	for i := range recs {
		r := &recs[i]
		tree.Insert(dedupKey{rec: r, anchor1: r.Anchor1(), anchor2: r.Anchor2(), index: i})
	}
	kept = make([]bedpe.Record, 0, len(recs))
	var (
		prev    dedupKey
		hasPrev bool
	)
	tree.Do(func(c llrb.Comparable) bool {
		k := c.(dedupKey)
		if hasPrev && k.sameOrientation(prev) &&
			shift(k.rec.Strand1, prev.anchor1, k.anchor1) == shift(k.rec.Strand2, prev.anchor2, k.anchor2) {
			dups = append(dups, Duplicate{Index: k.index, Prev: prev.index})
		} else {
			kept = append(kept, *k.rec)
		}
		prev, hasPrev = k, true
		return false
	})
	return kept, dups
}
