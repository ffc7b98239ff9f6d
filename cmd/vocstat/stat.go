package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gosuri/uiprogress"
	"github.com/urfave/cli/v2"

	"github.com/revelaction/vocstat/config"
	"github.com/revelaction/vocstat/corpus"
	"github.com/revelaction/vocstat/dataset"
	"github.com/revelaction/vocstat/file"
	"github.com/revelaction/vocstat/render"
)

const (
	srcExt = "src"
	trgExt = "tgt"
)

func statCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "stat",
		Usage: "print vocabulary and OOV statistics of training and test corpora",
		Flags: statFlags(),
		Action: func(c *cli.Context) error {
			opts, err := parseRunArgs(c)
			if err != nil {
				return err
			}
			return statCommand(opts, ui)
		},
	}
}

func statCommand(opts RunOptions, ui UI) error {
	report, err := analyze(opts, ui)
	if err != nil {
		return err
	}

	cfg := opts.Config

	switch {
	case cfg.JSON:
		if err := render.NewJSONRenderer(ui.Out).Render(withUnpaired(report)); err != nil {
			return err
		}

	case cfg.Table:
		r := render.NewRenderer(ui.Out)
		r.Subword = cfg.Subword
		r.Table(withUnpaired(report))

	default:
		printBlocks(cfg, report, ui)
	}

	return writeSideFiles(cfg, report)
}

// analyze runs the statistics passes, with the logger and progress bars the
// options ask for.
func analyze(opts RunOptions, ui UI) (corpus.Report, error) {
	a := corpus.NewAnalyzer(opts.Config)

	if opts.Verbose {
		a.Logger = log.New(ui.Err, "vocstat: ", 0)
	}

	if opts.Progress {
		p := uiprogress.New()
		p.SetOut(ui.Err)
		p.Start()
		defer p.Stop()

		a.OnOpen = progressBar(p)
	}

	return a.Run()
}

// progressBar adds one bar per corpus file, advanced by the bytes read from
// disk.
func progressBar(p *uiprogress.Progress) func(path string, size int64) func(int64) {
	return func(path string, size int64) func(int64) {
		if size <= 0 {
			return nil
		}

		name := filepath.Base(path)
		bar := p.AddBar(int(size)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return name
		})

		return func(read int64) {
			_ = bar.Set(int(read))
		}
	}
}

func printBlocks(cfg config.Config, report corpus.Report, ui UI) {
	r := render.NewRenderer(ui.Out)

	r.Block("Train source corpus: "+report.Src.Path, report.Src.Stats)
	r.Block("Train target corpus: "+report.Trg.Path, report.Trg.Stats)

	if cfg.Paired() {
		for i, name := range cfg.TestNames() {
			pair, _ := report.Sets.Get(name)
			if pair.Src != nil {
				r.Block(fmt.Sprintf("Test source corpus: %s %s", name, cfg.SrcTests[i]), *pair.Src)
			}
			if pair.Trg != nil {
				r.Block(fmt.Sprintf("Test target corpus: %s %s", name, cfg.TrgTests[i]), *pair.Trg)
			}
		}
		return
	}

	for _, e := range report.Unpaired {
		if e.Stats != nil {
			r.Block(fmt.Sprintf("Test %s corpus: %s", e.Side, e.Path), *e.Stats)
		}
	}
}

// withUnpaired returns the datasets of report, with every unpaired test
// corpus appended as a one sided dataset named after its path.
func withUnpaired(report corpus.Report) *dataset.Set {
	if len(report.Unpaired) == 0 {
		return report.Sets
	}

	set := dataset.NewSet()
	report.Sets.Each(func(name string, p dataset.Pair) {
		set.Add(name, p)
	})

	for _, e := range report.Unpaired {
		p, _ := set.Get(e.Path)
		if e.Side == corpus.SourceSide {
			p.Src = e.Stats
		} else {
			p.Trg = e.Stats
		}
		set.Add(e.Path, p)
	}

	return set
}

// writeSideFiles writes the unknown words and sentences of the training
// corpora that have a reference vocabulary.
func writeSideFiles(cfg config.Config, report corpus.Report) error {
	sides := []struct {
		ext  string
		side corpus.Side
	}{
		{srcExt, report.Src},
		{trgExt, report.Trg},
	}

	for _, s := range sides {
		if s.side.Reference == nil {
			continue
		}

		if cfg.Unks != "" {
			path := cfg.Unks + "." + s.ext
			if err := file.WriteUnknownWords(path, s.side.Stats.Unknown.Words, s.side.Table); err != nil {
				return err
			}
		}

		if cfg.UnkSentences != "" {
			path := cfg.UnkSentences + "." + s.ext
			if err := file.WriteUnknownLines(path, s.side.Stats.Unknown.Lines); err != nil {
				return err
			}
		}
	}

	return nil
}
