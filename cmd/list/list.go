// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package list implements the list subcommand, which prints the
// entries of an existing archive without modifying it.
package list

import (
	"context"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/matt-FFFFFF/cmdzip/internal/archive"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const archiveArg = "archive"

const modifiedFormat = "2006-01-02 15:04:05"

// ListCmd lists the entries of an existing zip archive.
var ListCmd = &cli.Command{
	Name:        "list",
	Description: "List the entries of an existing zip archive.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      archiveArg,
			UsageText: "ARCHIVE",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Action: actionFunc,
}

func actionFunc(_ context.Context, cmd *cli.Command) error {
	path := cmd.StringArg(archiveArg)
	if path == "" {
		return cli.Exit("Please provide an archive to list", 1)
	}

	entries, err := archive.List(afero.NewOsFs(), path)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.Writer)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Name", "Bytes", "Modified"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	var total uint64

	for _, e := range entries {
		tw.AppendRow(table.Row{e.Name, e.Size, e.Modified.Format(modifiedFormat)})
		total += e.Size
	}

	tw.AppendFooter(table.Row{strconv.Itoa(len(entries)) + " entries", total, ""})
	tw.Render()

	return nil
}
