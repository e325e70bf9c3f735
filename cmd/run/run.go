// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run implements the run subcommand: it resolves the
// configuration, opens the archive sink and hands the command list to
// the scheduler.
package run

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/cmdzip/internal/archive"
	"github.com/matt-FFFFFF/cmdzip/internal/config"
	"github.com/matt-FFFFFF/cmdzip/internal/namegen"
	"github.com/matt-FFFFFF/cmdzip/internal/scheduler"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	configFlag      = "config"
	inputFlag       = "input"
	outputFlag      = "output"
	cmdPrefixFlag   = "cmd-prefix"
	cmdPostfixFlag  = "cmd-postfix"
	namePatternFlag = "name-pattern"
	nameReplaceFlag = "name-replace"
	namePrefixFlag  = "name-prefix"
	namePostfixFlag = "name-postfix"
	threadsFlag     = "threads"
	limitFlag       = "limit"
	appendFlag      = "append"
	dryRunFlag      = "dry-run"
)

// RunCmd runs the supplied commands and archives their output.
var RunCmd = &cli.Command{
	Name:        "run",
	Description: "Run commands as child processes and capture their output into a zip archive.",
	ArgsUsage:   "[COMMAND ...]",
	Flags:       flags(),
	Action:      actionFunc,
}

// flags returns a fresh flag list on every call: urfave/cli flag
// objects are stateful across parses, so sharing one slice between
// commands leaks IsSet state.
func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  configFlag,
			Usage: "Read default option values from the given YAML file",
		},
		&cli.StringFlag{
			Name:    inputFlag,
			Aliases: []string{"i"},
			Usage:   "Also pull commands from the given file, or stdin via '-'",
		},
		&cli.StringFlag{
			Name:    outputFlag,
			Aliases: []string{"o"},
			Usage:   "The name/path of the zip archive to output to",
			Value:   "output.zip",
		},
		&cli.StringFlag{
			Name:  cmdPrefixFlag,
			Usage: "Prefix to be prepended to all commands; does not partake in name generation",
		},
		&cli.StringFlag{
			Name:  cmdPostfixFlag,
			Usage: "Postfix to be appended to all commands; does not partake in name generation",
		},
		&cli.StringFlag{
			Name:    namePatternFlag,
			Aliases: []string{"p"},
			Usage:   "Regex pattern to extract an entry name from each command",
		},
		&cli.StringFlag{
			Name:    nameReplaceFlag,
			Aliases: []string{"r"},
			Usage:   "Regex replacement expansion; $N and $NAME reference captures. Without it, the entire match is used",
		},
		&cli.StringFlag{
			Name:  namePrefixFlag,
			Usage: "Prefix to prepend to all generated names, applied after match/replace",
		},
		&cli.StringFlag{
			Name:  namePostfixFlag,
			Usage: "Postfix to append to all generated names, applied after the name prefix",
		},
		&cli.IntFlag{
			Name:    threadsFlag,
			Aliases: []string{"t"},
			Usage:   "The number of child processes to run in parallel; 0 uses all cores",
			Value:   0,
		},
		&cli.IntFlag{
			Name:    limitFlag,
			Aliases: []string{"l"},
			Usage:   "The maximum number of commands to run",
			Value:   config.NoLimit,
		},
		&cli.BoolFlag{
			Name:    appendFlag,
			Aliases: []string{"a"},
			Usage:   "Append to the output archive instead of replacing it",
		},
		&cli.BoolFlag{
			Name:    dryRunFlag,
			Aliases: []string{"d"},
			Usage:   "Write the assembled commands themselves to the archive instead of running them",
		},
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	fsys := afero.NewOsFs()

	cfg, err := resolveConfig(cmd, fsys)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if err := cfg.Validate(); err != nil {
		return cli.Exit("invalid configuration: "+err.Error(), 1)
	}

	gen, err := namegen.New(namegen.Options{
		Pattern: cfg.NamePattern,
		Replace: cfg.NameReplace,
		Prefix:  cfg.NamePrefix,
		Postfix: cfg.NamePostfix,
	})
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	fmt.Fprintf(cmd.ErrWriter, "-- Name generator: %s\n", gen.Strategy())

	commands, err := scheduler.Commands(fsys, os.Stdin, cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	sink, err := openSink(fsys, cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return scheduler.New(cfg, gen, sink, cmd.Writer, cmd.ErrWriter).Run(ctx, commands)
}

func openSink(fsys afero.Fs, cfg *config.Config) (*archive.Sink, error) {
	if cfg.Append {
		return archive.OpenAppend(fsys, cfg.Output)
	}

	return archive.Create(fsys, cfg.Output)
}

// resolveConfig merges the command line with the optional YAML
// defaults file. Flags set on the command line always win.
func resolveConfig(cmd *cli.Command, fsys afero.Fs) (*config.Config, error) {
	file := &config.File{}

	if path := cmd.String(configFlag); path != "" {
		f, err := config.LoadFile(fsys, path)
		if err != nil {
			return nil, err
		}

		file = f
	}

	stringOr := func(flag, fileValue string) string {
		if cmd.IsSet(flag) || fileValue == "" {
			return cmd.String(flag)
		}

		return fileValue
	}

	boolOr := func(flag string, fileValue bool) bool {
		if cmd.IsSet(flag) {
			return cmd.Bool(flag)
		}

		return fileValue
	}

	threads := cmd.Int(threadsFlag)
	if !cmd.IsSet(threadsFlag) && file.Threads != 0 {
		threads = file.Threads
	}

	limit := cmd.Int(limitFlag)
	if !cmd.IsSet(limitFlag) && file.Limit != nil {
		limit = *file.Limit
	}

	return &config.Config{
		Output:      stringOr(outputFlag, file.Output),
		Append:      boolOr(appendFlag, file.Append),
		DryRun:      boolOr(dryRunFlag, file.DryRun),
		Input:       stringOr(inputFlag, file.Input),
		CmdPrefix:   stringOr(cmdPrefixFlag, file.CmdPrefix),
		CmdPostfix:  stringOr(cmdPostfixFlag, file.CmdPostfix),
		NamePattern: stringOr(namePatternFlag, file.NamePattern),
		NameReplace: stringOr(nameReplaceFlag, file.NameReplace),
		NamePrefix:  stringOr(namePrefixFlag, file.NamePrefix),
		NamePostfix: stringOr(namePostfixFlag, file.NamePostfix),
		Threads:     threads,
		Limit:       limit,
		Commands:    cmd.Args().Slice(),
	}, nil
}
