package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/vocstat/config"
	"github.com/revelaction/vocstat/corpus"
	"github.com/revelaction/vocstat/dataset"
	"github.com/revelaction/vocstat/file"
	"github.com/revelaction/vocstat/stat"
)

func testUI() (UI, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return UI{Out: &out, Err: &errOut}, &out, &errOut
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func trainArgs(dir string, extra ...string) []string {
	args := []string{"vocstat", "stat",
		"--src", filepath.Join(dir, "train.src"),
		"--trg", filepath.Join(dir, "train.trg"),
	}
	return append(args, extra...)
}

var trainFiles = map[string]string{
	"train.src": "a b a\nc a\n",
	"train.trg": "x y\nx\n",
	"dev.src":   "a z\n",
	"dev.trg":   "x\n",
}

func TestVersion(t *testing.T) {
	ui, out, _ := testUI()
	require.NoError(t, run([]string{"vocstat", "version"}, ui))
	assert.Equal(t, "vocstat version dev (commit: none)\n", out.String())
}

func TestBash(t *testing.T) {
	ui, out, _ := testUI()
	require.NoError(t, run([]string{"vocstat", "bash"}, ui))
	assert.Contains(t, out.String(), "--generate-bash-completion")
	assert.Contains(t, out.String(), "complete -o bashdefault -o default -F _vocstat_autocomplete vocstat")
}

func TestStatBlocks(t *testing.T) {
	dir := writeFiles(t, trainFiles)
	ui, out, _ := testUI()

	args := trainArgs(dir,
		"--src-test", filepath.Join(dir, "dev.src"),
		"--trg-test", filepath.Join(dir, "dev.trg"),
		"--names", "dev",
	)
	require.NoError(t, run(args, ui))

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "Train source corpus: "+filepath.Join(dir, "train.src")+"\n# lines: 2\nrunning words: 5\n"), got)
	assert.Contains(t, got, "Train target corpus: "+filepath.Join(dir, "train.trg")+"\n")
	assert.Contains(t, got, "Test source corpus: dev "+filepath.Join(dir, "dev.src")+"\n")
	assert.Contains(t, got, "Test target corpus: dev "+filepath.Join(dir, "dev.trg")+"\n")
	// "z" is unseen in training
	assert.Contains(t, got, "total oov rate: 50.00 %\n")
}

func TestStatTable(t *testing.T) {
	dir := writeFiles(t, trainFiles)
	ui, out, _ := testUI()

	args := trainArgs(dir,
		"--src-test", filepath.Join(dir, "dev.src"),
		"--trg-test", filepath.Join(dir, "dev.trg"),
		"--table", "--subword",
	)
	require.NoError(t, run(args, ui))

	lines := strings.Split(out.String(), "\n")
	assert.Equal(t, []string{"SRC", "TRG"}, strings.Fields(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "train\tSentences"), lines[1])
	assert.Contains(t, out.String(), "test1\tSentences")
	assert.Contains(t, out.String(), "Subwords")
}

func TestStatJSON(t *testing.T) {
	dir := writeFiles(t, trainFiles)
	ui, out, _ := testUI()

	require.NoError(t, run(trainArgs(dir, "--json"), ui))

	var got []struct {
		Name string      `json:"name"`
		Src  *stat.Stats `json:"src"`
		Trg  *stat.Stats `json:"trg"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, corpus.TrainName, got[0].Name)
	assert.Equal(t, 5, got[0].Src.Tokens)
	assert.Equal(t, 3, got[0].Trg.Tokens)
}

func TestStatProfile(t *testing.T) {
	dir := writeFiles(t, trainFiles)
	profile := filepath.Join(dir, "run.yaml")
	yml := "src: " + filepath.Join(dir, "train.src") + "\n" +
		"trg: " + filepath.Join(dir, "train.trg") + "\n" +
		"src_limit: 1\n" +
		"json: true\n"
	require.NoError(t, os.WriteFile(profile, []byte(yml), 0644))

	ui, out, _ := testUI()
	require.NoError(t, run([]string{"vocstat", "stat", "--config", profile, "--src-limit", "2"}, ui))

	var got []struct {
		Src *stat.Stats `json:"src"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	// the flag wins over the profile
	assert.Equal(t, 2, got[0].Src.Unique)
}

func TestStatConfigurationError(t *testing.T) {
	dir := writeFiles(t, trainFiles)
	ui, out, _ := testUI()

	err := run(trainArgs(dir, "--table", "--json"), ui)
	assert.True(t, config.IsConfigurationError(err), "got %v", err)
	assert.Empty(t, out.String())
}

func TestStatDuplicateNames(t *testing.T) {
	dir := writeFiles(t, trainFiles)

	for _, names := range []string{"dev,dev", "train,dev"} {
		t.Run(names, func(t *testing.T) {
			ui, out, _ := testUI()
			args := trainArgs(dir,
				"--src-test", filepath.Join(dir, "dev.src")+","+filepath.Join(dir, "train.src"),
				"--trg-test", filepath.Join(dir, "dev.trg")+","+filepath.Join(dir, "train.trg"),
				"--names", names,
			)

			err := run(args, ui)
			assert.True(t, config.IsConfigurationError(err), "got %v", err)
			assert.Empty(t, out.String())
		})
	}
}

func TestStatMissingTrainingCorpus(t *testing.T) {
	dir := writeFiles(t, map[string]string{"train.trg": "x\n"})
	ui, _, _ := testUI()

	err := run(trainArgs(dir), ui)

	var me *file.MissingFileError
	assert.True(t, errors.As(err, &me), "got %v", err)
}

func TestStatSideFiles(t *testing.T) {
	files := map[string]string{"vocab.json": `{"a": [0]}`}
	for k, v := range trainFiles {
		files[k] = v
	}
	dir := writeFiles(t, files)
	ui, _, _ := testUI()

	unks := filepath.Join(dir, "unks")
	sents := filepath.Join(dir, "sents")
	args := trainArgs(dir,
		"--src-vocab", filepath.Join(dir, "vocab.json"),
		"--unks", unks,
		"--unk-sentences", sents,
	)
	require.NoError(t, run(args, ui))

	words, err := os.ReadFile(unks + ".src")
	require.NoError(t, err)
	assert.Equal(t, "b 1\nc 1\n", string(words))

	lines, err := os.ReadFile(sents + ".src")
	require.NoError(t, err)
	assert.Equal(t, "0\ta b a\n1\tc a\n", string(lines))

	// no reference vocabulary on the target side
	_, err = os.Stat(unks + ".tgt")
	assert.True(t, os.IsNotExist(err))
}

func TestStatVerbose(t *testing.T) {
	dir := writeFiles(t, trainFiles)
	ui, _, errOut := testUI()

	require.NoError(t, run(trainArgs(dir, "--verbose"), ui))
	assert.Contains(t, errOut.String(), "vocstat: counted "+filepath.Join(dir, "train.src"))
}

func TestWithUnpaired(t *testing.T) {
	s1, s2 := &stat.Stats{Lines: 1}, &stat.Stats{Lines: 2}
	report := corpus.Report{
		Sets: dataset.NewSet(),
		Unpaired: []corpus.Entry{
			{Side: corpus.SourceSide, Path: "a.src", Stats: s1},
			{Side: corpus.TargetSide, Path: "b.trg", Stats: s2},
		},
	}
	report.Sets.Add(corpus.TrainName, dataset.Pair{})

	set := withUnpaired(report)
	assert.Equal(t, []string{corpus.TrainName, "a.src", "b.trg"}, set.Names())

	a, _ := set.Get("a.src")
	assert.Equal(t, dataset.Pair{Src: s1}, a)
	b, _ := set.Get("b.trg")
	assert.Equal(t, dataset.Pair{Trg: s2}, b)

	// the report itself is left untouched
	assert.Equal(t, 1, report.Sets.Len())
}
