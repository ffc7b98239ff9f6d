// Package corpus runs the statistics passes over the training and test
// corpora of a source/target dataset.
package corpus

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/revelaction/vocstat/config"
	"github.com/revelaction/vocstat/count"
	"github.com/revelaction/vocstat/dataset"
	"github.com/revelaction/vocstat/file"
	"github.com/revelaction/vocstat/stat"
	"github.com/revelaction/vocstat/vocab"
)

// TrainName is the dataset name of the training corpora.
const TrainName = config.TrainName

// Sides of an unpaired Entry.
const (
	SourceSide = "source"
	TargetSide = "target"
)

// Side is the training state of one language side. The test corpora of that
// side are measured against its Vocabulary.
type Side struct {
	Path       string
	Table      count.Table
	Vocabulary vocab.Vocabulary

	// Reference is nil without a reference vocabulary.
	Reference vocab.Reference

	Stats stat.Stats
}

// Entry is a test corpus reported on its own, when test lists cannot be
// paired by name. Stats is nil when the file is missing or empty.
type Entry struct {
	Side  string
	Path  string
	Stats *stat.Stats
}

// Report is the outcome of a run.
type Report struct {
	Src Side
	Trg Side

	// Sets holds the training pair first, then the named test pairs.
	Sets *dataset.Set

	Unpaired []Entry
}

// Analyzer runs the passes described by Config.
type Analyzer struct {
	Config config.Config

	// Logger is used for diagnostics (skipped test sets, timings). nil
	// means no logging.
	Logger *log.Logger

	// OnOpen, if set, is called for every corpus file opened. The returned
	// function, if not nil, receives the bytes read so far.
	OnOpen func(path string, size int64) func(read int64)
}

func NewAnalyzer(cfg config.Config) *Analyzer {
	return &Analyzer{Config: cfg}
}

// Run validates the configuration, then reads every corpus once in this
// order: training source, training target, test corpora.
func (a *Analyzer) Run() (Report, error) {
	cfg := a.Config
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	srcRef, err := readReference(cfg.SrcVocab)
	if err != nil {
		return Report{}, err
	}

	trgRef, err := readReference(cfg.TrgVocab)
	if err != nil {
		return Report{}, err
	}

	src, trg, err := a.train(srcRef, trgRef)
	if err != nil {
		return Report{}, err
	}

	trainSrc, trainTrg := src.Stats, trg.Stats
	report := Report{Src: src, Trg: trg, Sets: dataset.NewSet()}
	report.Sets.Add(TrainName, dataset.Pair{Src: &trainSrc, Trg: &trainTrg})

	if cfg.Paired() {
		for i, name := range cfg.TestNames() {
			srcStats, err := a.test(cfg.SrcTests[i], src)
			if err != nil {
				return Report{}, err
			}

			trgStats, err := a.test(cfg.TrgTests[i], trg)
			if err != nil {
				return Report{}, err
			}

			report.Sets.Add(name, dataset.Pair{Src: srcStats, Trg: trgStats})
		}

		return report, nil
	}

	for _, path := range cfg.SrcTests {
		s, err := a.test(path, src)
		if err != nil {
			return Report{}, err
		}
		report.Unpaired = append(report.Unpaired, Entry{Side: SourceSide, Path: path, Stats: s})
	}

	for _, path := range cfg.TrgTests {
		s, err := a.test(path, trg)
		if err != nil {
			return Report{}, err
		}
		report.Unpaired = append(report.Unpaired, Entry{Side: TargetSide, Path: path, Stats: s})
	}

	return report, nil
}

// train counts both training corpora and resolves their vocabularies. With
// a shared vocabulary, the shared set is built from both tables before
// either side is resolved against it.
func (a *Analyzer) train(srcRef, trgRef vocab.Reference) (Side, Side, error) {
	cfg := a.Config

	srcRes, err := a.count(cfg.Src, srcRef)
	if err != nil {
		return Side{}, Side{}, err
	}

	trgRes, err := a.count(cfg.Trg, trgRef)
	if err != nil {
		return Side{}, Side{}, err
	}

	srcPolicy := vocab.NewPolicy(cfg.SrcLimit)
	trgPolicy := vocab.NewPolicy(cfg.TrgLimit)

	if cfg.SharedVocab {
		shared := vocab.SharedVocabulary(cfg.SrcLimit, srcRes.Table, trgRes.Table)
		a.logf("shared vocabulary: %d tokens", shared.Len())
		srcPolicy = vocab.Shared{Vocabulary: shared}
		trgPolicy = vocab.Shared{Vocabulary: shared}
	}

	src, err := resolve(cfg.Src, srcRes, srcPolicy, srcRef)
	if err != nil {
		return Side{}, Side{}, err
	}

	trg, err := resolve(cfg.Trg, trgRes, trgPolicy, trgRef)
	if err != nil {
		return Side{}, Side{}, err
	}

	return src, trg, nil
}

func resolve(path string, res count.Result, p vocab.Policy, ref vocab.Reference) (Side, error) {
	r := p.Resolve(res.Table)

	s, err := stat.New(stat.Input{
		Lines:      res.Lines,
		Tokens:     res.Tokens,
		Resolution: r,
		Reference:  ref,
		Unknown:    res.Unknown,
	})
	if err != nil {
		return Side{}, fmt.Errorf("%s: %w", path, err)
	}

	return Side{
		Path:       path,
		Table:      res.Table,
		Vocabulary: r.Vocabulary,
		Reference:  ref,
		Stats:      s,
	}, nil
}

// test measures a held-out corpus against the training vocabulary of its
// side. Missing and empty files are logged and reported as absent.
func (a *Analyzer) test(path string, side Side) (*stat.Stats, error) {
	res, err := a.count(path, side.Reference)
	if err != nil {
		var me *file.MissingFileError
		if errors.As(err, &me) {
			a.logf("skipping test corpus: %v", err)
			return nil, nil
		}
		return nil, err
	}

	s, err := stat.Compute(res, vocab.Fixed{Vocabulary: side.Vocabulary}, side.Reference)
	if err != nil {
		var de *stat.DegenerateInputError
		if errors.As(err, &de) {
			a.logf("skipping test corpus %s: %v", path, err)
			return nil, nil
		}
		return nil, err
	}

	return &s, nil
}

func (a *Analyzer) count(path string, ref vocab.Reference) (count.Result, error) {
	start := time.Now()

	r, err := file.Open(path)
	if err != nil {
		return count.Result{}, err
	}
	defer r.Close()

	if a.OnOpen != nil {
		r.OnRead = a.OnOpen(path, r.Size)
	}

	c := count.Counter{}
	if ref != nil {
		c.Reference = ref
	}

	res, err := c.Count(r)
	if err != nil {
		return count.Result{}, fmt.Errorf("%s: %w", path, err)
	}

	a.logf("counted %s: %d lines, %d tokens in %v", path, res.Lines, res.Tokens, time.Since(start))
	return res, nil
}

func readReference(path string) (vocab.Reference, error) {
	if path == "" {
		return nil, nil
	}
	return file.ReadReference(path)
}

func (a *Analyzer) logf(format string, args ...any) {
	if a.Logger != nil {
		a.Logger.Printf(format, args...)
	}
}
