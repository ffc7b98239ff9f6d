package file

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/revelaction/vocstat/count"
	"github.com/revelaction/vocstat/unknown"
	"github.com/revelaction/vocstat/vocab"
)

const gzipSuffix = ".gz"

// MissingFileError is returned when a corpus or vocabulary file does not
// exist.
type MissingFileError struct {
	Path string
	Err  error
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *MissingFileError) Unwrap() error {
	return e.Err
}

// MalformedVocabularyError is returned when a reference vocabulary is not a
// JSON object mapping each token to an array starting with an integer id.
type MalformedVocabularyError struct {
	Path string
	Err  error
}

func (e *MalformedVocabularyError) Error() string {
	return fmt.Sprintf("malformed vocabulary %s: %v", e.Path, e.Err)
}

func (e *MalformedVocabularyError) Unwrap() error {
	return e.Err
}

// Reader reads a corpus file, decompressing it when the name ends in .gz.
type Reader struct {
	io.Reader

	// Size is the size in bytes of the file on disk.
	Size int64

	// OnRead, if set, is called with the number of bytes read from disk so
	// far. For gzip files this is the compressed position.
	OnRead func(read int64)

	f    *os.File
	gz   *gzip.Reader
	read int64
}

// Open opens path for reading.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingFileError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("IO error: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("IO error: %w", err)
	}

	r := &Reader{Size: info.Size(), f: f}
	src := &diskReader{r: r}

	if !strings.HasSuffix(path, gzipSuffix) {
		r.Reader = src
		return r, nil
	}

	gz, err := gzip.NewReader(src)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("gzip error in %s: %w", path, err)
	}
	r.gz = gz
	r.Reader = gz
	return r, nil
}

func (r *Reader) Close() error {
	if r.gz != nil {
		if err := r.gz.Close(); err != nil {
			r.f.Close()
			return err
		}
	}
	return r.f.Close()
}

// diskReader tracks the bytes read from the underlying file.
type diskReader struct {
	r *Reader
}

func (d *diskReader) Read(p []byte) (int, error) {
	n, err := d.r.f.Read(p)
	d.r.read += int64(n)
	if d.r.OnRead != nil && n > 0 {
		d.r.OnRead(d.r.read)
	}
	return n, err
}

// ReadReference loads a reference vocabulary: a JSON object mapping each
// token to an array whose first element is the token id.
func ReadReference(path string) (vocab.Reference, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	// the whole file must be one JSON document
	var raw map[string][]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &MalformedVocabularyError{Path: path, Err: fmt.Errorf("JSON decoding error: %w", err)}
	}

	if raw == nil {
		return nil, &MalformedVocabularyError{Path: path, Err: errors.New("not a JSON object")}
	}

	ref := make(vocab.Reference, len(raw))
	for tok, v := range raw {
		if len(v) == 0 {
			return nil, &MalformedVocabularyError{Path: path, Err: fmt.Errorf("token %q has no id", tok)}
		}

		var id int
		if err := json.Unmarshal(v[0], &id); err != nil {
			return nil, &MalformedVocabularyError{Path: path, Err: fmt.Errorf("token %q: id is not an integer: %w", tok, err)}
		}
		ref[tok] = id
	}

	return ref, nil
}

// WriteUnknownWords writes one "token count" line per unknown word, most
// frequent first, counts taken from table.
func WriteUnknownWords(path string, words []string, table count.Table) error {
	sorted := append([]string(nil), words...)
	sort.Slice(sorted, func(i, j int) bool {
		ci, cj := table[sorted[i]], table[sorted[j]]
		if ci != cj {
			return ci > cj
		}
		return sorted[i] < sorted[j]
	})

	return writeLines(path, func(w *bufio.Writer) error {
		for _, word := range sorted {
			if _, err := fmt.Fprintf(w, "%s %d\n", word, table[word]); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteUnknownLines writes one "index<TAB>line" line per sentence holding
// unknown words.
func WriteUnknownLines(path string, lines []unknown.Line) error {
	return writeLines(path, func(w *bufio.Writer) error {
		for _, l := range lines {
			if _, err := fmt.Fprintf(w, "%d\t%s\n", l.Index, l.Text); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeLines(path string, fn func(w *bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("IO error: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := fn(w); err != nil {
		f.Close()
		return fmt.Errorf("IO error: %w", err)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("IO error: %w", err)
	}

	return f.Close()
}
