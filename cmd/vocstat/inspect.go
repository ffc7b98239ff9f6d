package main

import (
	"github.com/urfave/cli/v2"

	"github.com/revelaction/vocstat/inspect"
)

func inspectCmd(ui UI) *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "look up training tokens interactively",
		Flags: runFlags(),
		Action: func(c *cli.Context) error {
			opts, err := parseRunArgs(c)
			if err != nil {
				return err
			}
			return inspectCommand(opts, ui)
		},
	}
}

func inspectCommand(opts RunOptions, ui UI) error {
	report, err := analyze(opts, ui)
	if err != nil {
		return err
	}

	hdl := inspect.NewHandler(report, ui.Out)
	return hdl.Run()
}
