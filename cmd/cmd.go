// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/cmdzip/cmd/list"
	"github.com/matt-FFFFFF/cmdzip/cmd/run"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		list.ListCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "cmdzip",
	Description: `Cmdzip runs a set of commands as child processes, capturing their
output as named entries in a zip archive, so intermediate results never
touch the filesystem. Entry names are incrementing numbers or a regex
match/expand over the command text. Commands starting with '#' are
echoed without being run; failed commands are archived with a '.err'
suffix. Finished commands are listed on stdout, everything else goes to
stderr.`,
	Usage:     `cmdzip run -o icons.zip -p '([\w-]+)\.svg$' -r '$1.png' --cmd-prefix "resvg -w 128" ./icons/a.svg ./icons/b.svg`,
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
