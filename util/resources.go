// util/resources.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ErrNoResources is returned when the resources directory can't be found.
var ErrNoResources = errors.New("unable to find resources directory")

// ResourcesDir, if set, is used as the resources directory; otherwise a
// "resources" directory holding procedures.json is searched for in the
// current directory and the two above it.
var ResourcesDir string

var resourcesFS = sync.OnceValues(func() (fs.StatFS, error) {
	dir := ResourcesDir
	if dir == "" {
		var err error
		if dir, err = findResourcesDir(); err != nil {
			return nil, err
		}
	}
	return os.DirFS(dir).(fs.StatFS), nil
})

func findResourcesDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for range 3 {
		candidate := filepath.Join(dir, "resources")
		if _, err := os.Stat(filepath.Join(candidate, "procedures.json")); err == nil {
			return candidate, nil
		}
		dir = filepath.Join(dir, "..")
	}
	return "", ErrNoResources
}

// ResourceReadCloser is an io.ReadCloser whose Close doesn't return an
// error, matching *zstd.Decoder.
type ResourceReadCloser interface {
	io.Reader
	Close()
}

type bytesReadCloser struct {
	*bytes.Reader
}

func (bytesReadCloser) Close() {}

// LoadResource provides a ResourceReadCloser to access the specified file
// from the resources directory; if it's zstd compressed, the Reader
// handles decompression transparently.
func LoadResource(path string) (ResourceReadCloser, error) {
	fsys, err := resourcesFS()
	if err != nil {
		return nil, err
	}
	f, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	br := bytesReadCloser{bytes.NewReader(f)}

	if filepath.Ext(path) == ".zst" {
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, err
		}
		return zr, nil
	}
	return br, nil
}

func LoadResourceBytes(path string) ([]byte, error) {
	r, err := LoadResource(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

// ResourceExists returns true if the specified resource file exists.
func ResourceExists(path string) bool {
	fsys, err := resourcesFS()
	if err != nil {
		return false
	}
	_, err = fsys.Stat(path)
	return err == nil
}
