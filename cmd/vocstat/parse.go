package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/vocstat/config"
	"github.com/revelaction/vocstat/vocab"
)

// RunOptions are the options shared by the commands that read corpora.
type RunOptions struct {
	Config   config.Config
	Progress bool
	Verbose  bool
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "YAML run profile, flags given on the command line take precedence"},
		&cli.StringFlag{Name: "src", Usage: "source training corpus (.gz allowed)"},
		&cli.StringFlag{Name: "trg", Usage: "target training corpus (.gz allowed)"},
		&cli.StringFlag{Name: "src-test", Usage: "comma separated source test corpora"},
		&cli.StringFlag{Name: "trg-test", Usage: "comma separated target test corpora"},
		&cli.StringFlag{Name: "names", Usage: "comma separated test dataset names"},
		&cli.BoolFlag{Name: "shared-vocab", Usage: "one vocabulary for source and target"},
		&cli.IntFlag{Name: "src-limit", Value: vocab.Unlimited, Usage: "source vocabulary size, -1 for unlimited"},
		&cli.IntFlag{Name: "trg-limit", Value: vocab.Unlimited, Usage: "target vocabulary size, -1 for unlimited"},
		&cli.StringFlag{Name: "src-vocab", Usage: "source reference vocabulary (JSON)"},
		&cli.StringFlag{Name: "trg-vocab", Usage: "target reference vocabulary (JSON)"},
		&cli.BoolFlag{Name: "progress", Usage: "show reading progress on stderr"},
		&cli.BoolFlag{Name: "verbose", Usage: "log diagnostics on stderr"},
	}
}

func statFlags() []cli.Flag {
	return append(runFlags(),
		&cli.BoolFlag{Name: "subword", Usage: "label running words as subwords"},
		&cli.BoolFlag{Name: "table", Usage: "print a table of all datasets"},
		&cli.BoolFlag{Name: "json", Usage: "print the datasets as JSON"},
		&cli.StringFlag{Name: "unks", Usage: "write unknown words to <path>.src and <path>.tgt"},
		&cli.StringFlag{Name: "unk-sentences", Usage: "write sentences with unknown words to <path>.src and <path>.tgt"},
	)
}

// parseRunArgs builds the run configuration: the profile first, if any, then
// every flag set explicitly on the command line.
func parseRunArgs(c *cli.Context) (RunOptions, error) {
	cfg := config.Default()

	if path := c.String("config"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return RunOptions{}, err
		}
	}

	setString(c, "src", &cfg.Src)
	setString(c, "trg", &cfg.Trg)
	setList(c, "src-test", &cfg.SrcTests)
	setList(c, "trg-test", &cfg.TrgTests)
	setList(c, "names", &cfg.Names)
	setBool(c, "shared-vocab", &cfg.SharedVocab)
	setInt(c, "src-limit", &cfg.SrcLimit)
	setInt(c, "trg-limit", &cfg.TrgLimit)
	setString(c, "src-vocab", &cfg.SrcVocab)
	setString(c, "trg-vocab", &cfg.TrgVocab)
	setBool(c, "subword", &cfg.Subword)
	setBool(c, "table", &cfg.Table)
	setBool(c, "json", &cfg.JSON)
	setString(c, "unks", &cfg.Unks)
	setString(c, "unk-sentences", &cfg.UnkSentences)

	return RunOptions{
		Config:   cfg,
		Progress: c.Bool("progress"),
		Verbose:  c.Bool("verbose"),
	}, nil
}

func setString(c *cli.Context, name string, dst *string) {
	if c.IsSet(name) {
		*dst = c.String(name)
	}
}

func setList(c *cli.Context, name string, dst *[]string) {
	if c.IsSet(name) {
		*dst = config.SplitList(c.String(name))
	}
}

func setBool(c *cli.Context, name string, dst *bool) {
	if c.IsSet(name) {
		*dst = c.Bool(name)
	}
}

func setInt(c *cli.Context, name string, dst *int) {
	if c.IsSet(name) {
		*dst = c.Int(name)
	}
}
