package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// Set with -ldflags at build time.
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := run(os.Args, ui); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "vocstat: %v\n", err)
}

func run(args []string, ui UI) error {
	return newApp(ui).Run(args)
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:                 "vocstat",
		Usage:                "vocabulary and OOV statistics of parallel corpora",
		Writer:               ui.Out,
		ErrWriter:            ui.Err,
		EnableBashCompletion: true,
		HideVersion:          true,
		Commands: []*cli.Command{
			statCmd(ui),
			inspectCmd(ui),
			bashCmd(ui),
			versionCmd(ui),
		},
	}
}
