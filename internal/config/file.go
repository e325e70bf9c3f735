// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

var (
	// ErrReadDefaults is returned when the defaults file cannot be read.
	ErrReadDefaults = errors.New("failed to read defaults file")
	// ErrParseDefaults is returned when the defaults file is not valid YAML.
	ErrParseDefaults = errors.New("failed to parse defaults file")
)

// File is an optional YAML file of default option values. Values from
// the command line always take precedence over values from the file.
type File struct {
	Output      string `yaml:"output"`
	Append      bool   `yaml:"append"`
	DryRun      bool   `yaml:"dry-run"`
	Input       string `yaml:"input"`
	CmdPrefix   string `yaml:"cmd-prefix"`
	CmdPostfix  string `yaml:"cmd-postfix"`
	NamePattern string `yaml:"name-pattern"`
	NameReplace string `yaml:"name-replace"`
	NamePrefix  string `yaml:"name-prefix"`
	NamePostfix string `yaml:"name-postfix"`
	Threads     int    `yaml:"threads"`
	Limit       *int   `yaml:"limit"`
}

// LoadFile reads and parses a YAML defaults file.
func LoadFile(fsys afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Join(ErrReadDefaults, err)
	}

	f := new(File)
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, errors.Join(ErrParseDefaults, err)
	}

	return f, nil
}
