// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/afero"
)

var (
	// ErrCreate is returned when the archive file cannot be created.
	ErrCreate = errors.New("failed to create archive")
	// ErrOpenAppend is returned when an existing archive cannot be opened for appending.
	ErrOpenAppend = errors.New("failed to open archive for appending")
	// ErrAppendEntry is returned when an entry cannot be written to the archive.
	ErrAppendEntry = errors.New("failed to append archive entry")
	// ErrFinalize is returned when the archive trailer cannot be written.
	ErrFinalize = errors.New("failed to finalize archive")
	// ErrSinkClosed is returned when the sink is used after Close.
	ErrSinkClosed = errors.New("archive sink is closed")
)

// Sink is the single shared writer over one zip archive. All appends
// and the final close acquire its mutex, making each entry write
// atomic with respect to other workers.
type Sink struct {
	mu      sync.Mutex
	fsys    afero.Fs
	file    afero.File
	zw      *zip.Writer
	path    string
	tmpPath string // non-empty in append mode; renamed over path on Close
	closed  bool
}

// Create opens a fresh archive at path, truncating any existing file.
func Create(fsys afero.Fs, path string) (*Sink, error) {
	f, err := fsys.Create(path)
	if err != nil {
		return nil, errors.Join(ErrCreate, err)
	}

	return &Sink{
		fsys: fsys,
		file: f,
		zw:   zip.NewWriter(f),
		path: path,
	}, nil
}

// OpenAppend opens a previously finalized archive at path for
// appending. The zip format cannot be extended in place once the
// central directory is written, so the existing entries are raw-copied
// (compressed bytes untouched) into a temporary file beside the
// output; new entries follow, and Close renames the temporary file
// over the original.
func OpenAppend(fsys afero.Fs, path string) (*Sink, error) {
	existing, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Join(ErrOpenAppend, err)
	}
	defer existing.Close() //nolint:errcheck

	info, err := existing.Stat()
	if err != nil {
		return nil, errors.Join(ErrOpenAppend, err)
	}

	zr, err := zip.NewReader(existing, info.Size())
	if err != nil {
		return nil, errors.Join(ErrOpenAppend, err)
	}

	tmpPath := path + ".tmp"

	f, err := fsys.Create(tmpPath)
	if err != nil {
		return nil, errors.Join(ErrOpenAppend, err)
	}

	zw := zip.NewWriter(f)

	for _, zf := range zr.File {
		if err := copyRaw(zw, zf); err != nil {
			_ = f.Close()
			_ = fsys.Remove(tmpPath)

			return nil, errors.Join(ErrOpenAppend, err)
		}
	}

	return &Sink{
		fsys:    fsys,
		file:    f,
		zw:      zw,
		path:    path,
		tmpPath: tmpPath,
	}, nil
}

// copyRaw transfers one entry into zw without recompressing it, so the
// copied entry stays byte-identical to the original.
func copyRaw(zw *zip.Writer, zf *zip.File) error {
	r, err := zf.OpenRaw()
	if err != nil {
		return fmt.Errorf("open entry %q: %w", zf.Name, err)
	}

	header := zf.FileHeader

	w, err := zw.CreateRaw(&header)
	if err != nil {
		return fmt.Errorf("create entry %q: %w", zf.Name, err)
	}

	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("copy entry %q: %w", zf.Name, err)
	}

	return nil
}

// Append writes one named entry with the given content and flushes the
// writer before releasing the lock.
func (s *Sink) Append(name string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}

	w, err := s.zw.Create(name)
	if err != nil {
		return errors.Join(ErrAppendEntry, err)
	}

	if _, err := w.Write(content); err != nil {
		return errors.Join(ErrAppendEntry, err)
	}

	if err := s.zw.Flush(); err != nil {
		return errors.Join(ErrAppendEntry, err)
	}

	return nil
}

// Close writes the central directory and closes the file. In append
// mode it then renames the temporary file over the original archive.
// Any Append after Close returns ErrSinkClosed.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSinkClosed
	}

	s.closed = true

	if err := s.zw.Close(); err != nil {
		_ = s.file.Close()

		return errors.Join(ErrFinalize, err)
	}

	if err := s.file.Close(); err != nil {
		return errors.Join(ErrFinalize, err)
	}

	if s.tmpPath != "" {
		if err := s.fsys.Rename(s.tmpPath, s.path); err != nil {
			return errors.Join(ErrFinalize, err)
		}
	}

	return nil
}

// Abort closes the sink without writing the central directory,
// discarding the run's output. In append mode the temporary file is
// removed, leaving the original archive untouched. Abort after Close
// is a no-op.
func (s *Sink) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	err := s.file.Close()

	if s.tmpPath != "" {
		if rmErr := s.fsys.Remove(s.tmpPath); rmErr != nil {
			err = errors.Join(err, rmErr)
		}
	}

	if err != nil {
		return errors.Join(ErrFinalize, err)
	}

	return nil
}
