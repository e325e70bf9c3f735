// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package archive

import (
	"archive/zip"
	"errors"
	"io"
	"time"

	"github.com/spf13/afero"
)

// ErrRead is returned when an archive cannot be opened or decoded.
var ErrRead = errors.New("failed to read archive")

// Entry describes one record in a finalized archive.
type Entry struct {
	Name     string
	Size     uint64 // Uncompressed size in bytes.
	Modified time.Time
}

// List returns the entries of the archive at path in file order.
func List(fsys afero.Fs, path string) ([]Entry, error) {
	zr, closer, err := open(fsys, path)
	if err != nil {
		return nil, err
	}
	defer closer.Close() //nolint:errcheck

	entries := make([]Entry, 0, len(zr.File))
	for _, zf := range zr.File {
		entries = append(entries, Entry{
			Name:     zf.Name,
			Size:     zf.UncompressedSize64,
			Modified: zf.Modified,
		})
	}

	return entries, nil
}

// Contents returns the decompressed content of every entry, keyed by
// entry name. Duplicate names keep the last entry, matching the
// behaviour of most zip tooling.
func Contents(fsys afero.Fs, path string) (map[string][]byte, error) {
	zr, closer, err := open(fsys, path)
	if err != nil {
		return nil, err
	}
	defer closer.Close() //nolint:errcheck

	contents := make(map[string][]byte, len(zr.File))

	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, errors.Join(ErrRead, err)
		}

		data, err := io.ReadAll(rc)

		_ = rc.Close()

		if err != nil {
			return nil, errors.Join(ErrRead, err)
		}

		contents[zf.Name] = data
	}

	return contents, nil
}

func open(fsys afero.Fs, path string) (*zip.Reader, io.Closer, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, nil, errors.Join(ErrRead, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return nil, nil, errors.Join(ErrRead, err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		_ = f.Close()

		return nil, nil, errors.Join(ErrRead, err)
	}

	return zr, f, nil
}
