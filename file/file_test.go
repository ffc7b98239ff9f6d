package file

import (
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/vocstat/count"
	"github.com/revelaction/vocstat/unknown"
	"github.com/revelaction/vocstat/vocab"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeGzip(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestOpenPlain(t *testing.T) {
	path := writeFile(t, "train.en", "a b a\nc a\n")

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	var progress []int64
	r.OnRead = func(n int64) { progress = append(progress, n) }

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "a b a\nc a\n", string(data))
	assert.Equal(t, int64(10), r.Size)
	require.NotEmpty(t, progress)
	assert.Equal(t, r.Size, progress[len(progress)-1])
}

func TestOpenGzip(t *testing.T) {
	path := writeGzip(t, "train.en.gz", "a b a\nc a\n")

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	var c count.Counter
	res, err := c.Count(r)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Lines)
	assert.Equal(t, 5, res.Tokens)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"))

	var me *MissingFileError
	require.True(t, errors.As(err, &me))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadReference(t *testing.T) {
	path := writeFile(t, "vocab.json", `{"a": [0], "c": [1, "extra"]}`)

	ref, err := ReadReference(path)
	require.NoError(t, err)
	assert.Equal(t, vocab.Reference{"a": 0, "c": 1}, ref)
}

func TestReadReferenceGzip(t *testing.T) {
	path := writeGzip(t, "vocab.json.gz", `{"a": [0]}`)

	ref, err := ReadReference(path)
	require.NoError(t, err)
	assert.True(t, ref.Has("a"))
}

func TestReadReferenceMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"a": [0}`},
		{"array at top level", `[["a", 0]]`},
		{"null", `null`},
		{"empty id array", `{"a": []}`},
		{"non integer id", `{"a": ["zero"]}`},
		{"value not an array", `{"a": 0}`},
		{"trailing text", `{"a": [0]} not json at all`},
		{"two documents", `{"a": [0]}{"b": [1]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadReference(writeFile(t, "vocab.json", tc.content))

			var me *MalformedVocabularyError
			require.True(t, errors.As(err, &me), "got %v", err)
		})
	}
}

func TestWriteUnknownWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unks.src")
	table := count.Table{"b": 1, "z": 4, "y": 1}

	require.NoError(t, WriteUnknownWords(path, []string{"b", "y", "z"}, table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "z 4\nb 1\ny 1\n", string(data))
}

func TestWriteUnknownLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unk-sentences.src")
	lines := []unknown.Line{{Index: 0, Text: "a b a"}, {Index: 7, Text: "b"}}

	require.NoError(t, WriteUnknownLines(path, lines))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0\ta b a\n7\tb\n", string(data))
}
