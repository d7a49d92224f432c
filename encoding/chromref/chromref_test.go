package chromref_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/bedpe/encoding/chromref"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
)

const testRef = "name\tlength\taliases\n" +
	"chr1\t249250621\t1,chr1\n" +
	"chr2\t243199373\t2,chr2,\n" +
	"chrM\t16571\tMT,M,chrM\n"

func TestRead(t *testing.T) {
	tab, err := chromref.Read(strings.NewReader(testRef))
	assert.NoError(t, err)
	expect.EQ(t, tab.Len(), 3)

	for _, test := range []struct {
		alias, want string
	}{
		{"1", "chr1"},
		{"chr1", "chr1"},
		{"2", "chr2"},
		{"MT", "chrM"},
		{"M", "chrM"},
		{"chrM", "chrM"},
	} {
		got, ok := tab.Resolve(test.alias)
		expect.True(t, ok, "alias %s", test.alias)
		expect.EQ(t, got, test.want, "alias %s", test.alias)
	}
	_, ok := tab.Resolve("")
	expect.False(t, ok)
	_, ok = tab.Resolve("chrZZ")
	expect.False(t, ok)

	n, ok := tab.Length("chrM")
	expect.True(t, ok)
	expect.EQ(t, n, 16571)
	_, ok = tab.Length("MT")
	expect.False(t, ok)

	entries := tab.Entries()
	expect.EQ(t, entries[1], chromref.Entry{Name: "chr2", Length: 243199373, Aliases: []string{"2", "chr2"}})
}

// Every alias of a canonical name resolves to the same name as the canonical
// name itself, when the latter is also listed as an alias.
func TestResolveConsistent(t *testing.T) {
	tab, err := chromref.Read(strings.NewReader(testRef))
	assert.NoError(t, err)
	for _, e := range tab.Entries() {
		self, ok := tab.Resolve(e.Name)
		assert.True(t, ok)
		for _, alias := range e.Aliases {
			got, ok := tab.Resolve(alias)
			assert.True(t, ok)
			expect.EQ(t, got, self)
		}
		_, ok = tab.Length(self)
		expect.True(t, ok)
	}
}

func TestReadEmpty(t *testing.T) {
	tab, err := chromref.Read(strings.NewReader("name\tlength\taliases\n"))
	assert.NoError(t, err)
	expect.EQ(t, tab.Len(), 0)
}

func TestReadCRLF(t *testing.T) {
	tab, err := chromref.Read(strings.NewReader("name\tlength\taliases\r\nchr1\t100\t1,chr1\r\n"))
	assert.NoError(t, err)
	got, ok := tab.Resolve("chr1")
	expect.True(t, ok)
	expect.EQ(t, got, "chr1")
}

func TestReadErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		data string
		kind chromref.Kind
		line int
	}{
		{"nonNumericLength", "h\nchr1\tabc\t1,chr1\n", chromref.MalformedReference, 2},
		{"zeroLength", "h\nchr1\t0\t1\n", chromref.MalformedReference, 2},
		{"missingColumns", "h\nchr1\t100\t1\nchr2\n", chromref.MalformedReference, 3},
		{"missingAliases", "h\tl\ta\nchr1\t100\n", chromref.MalformedReference, 2},
		{"extraColumns", "h\nchr1\t100\t1\tchr1\n", chromref.MalformedReference, 2},
		{"afterBlankLine", "h\nchr1\t100\t1\n\n\nchr2\tabc\t2\n", chromref.MalformedReference, 5},
		{"duplicateCanonical", "h\nchr1\t100\t1\nchr1\t100\tchr1\n", chromref.MalformedReference, 3},
		{"conflictingAlias", "h\nchr1\t100\t1,x\nchr2\t200\t2,x\n", chromref.ConflictingAlias, 3},
	} {
		_, err := chromref.Read(strings.NewReader(test.data))
		assert.NotNil(t, err, test.name)
		e, ok := err.(*chromref.Error)
		assert.True(t, ok, "%s: %v", test.name, err)
		expect.EQ(t, e.Kind, test.kind, test.name)
		expect.EQ(t, e.Line, test.line, test.name)
	}
}

func TestSuggest(t *testing.T) {
	tab, err := chromref.Read(strings.NewReader(testRef))
	assert.NoError(t, err)
	expect.EQ(t, tab.Suggest("chr1 "), "chr1")
	expect.EQ(t, tab.Suggest("chrMT"), "chrM")
	expect.EQ(t, tab.Suggest("CHRM"), "chrM")
	expect.EQ(t, tab.Suggest("scaffold_12345"), "")
}

func TestReadPath(t *testing.T) {
	ctx := context.Background()
	tmpDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	plain := filepath.Join(tmpDir, "ref.txt")
	assert.NoError(t, ioutil.WriteFile(plain, []byte(testRef), 0644))
	tab, err := chromref.ReadPath(ctx, plain)
	assert.NoError(t, err)
	expect.EQ(t, tab.Len(), 3)

	gzPath := filepath.Join(tmpDir, "ref.txt.gz")
	f, err := os.Create(gzPath)
	assert.NoError(t, err)
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte(testRef))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, f.Close())
	tab, err = chromref.ReadPath(ctx, gzPath)
	assert.NoError(t, err)
	got, ok := tab.Resolve("MT")
	expect.True(t, ok)
	expect.EQ(t, got, "chrM")

	_, err = chromref.ReadPath(ctx, filepath.Join(tmpDir, "missing.txt"))
	expect.NotNil(t, err)
}
