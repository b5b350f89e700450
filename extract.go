//
// Copyright 2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package zipfetch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Extract extracts all the entries of the zip archive archivePath into
// destFolder, creating it if needed. Absolute entry names and names that
// climb out of destFolder with ".." are not rewritten: extraction stops
// with an UnsafePathError.
func Extract(archivePath string, destFolder string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", archivePath, err)
	}
	defer r.Close()

	if err := os.MkdirAll(destFolder, 0755); err != nil {
		return err
	}
	for _, f := range r.File {
		target, err := entryPath(destFolder, f.Name)
		if err != nil {
			return &UnsafePathError{Archive: archivePath, Entry: f.Name}
		}
		if err := extractEntry(f, target); err != nil {
			return fmt.Errorf("extracting %s from %s: %w", f.Name, archivePath, err)
		}
	}
	return nil
}

// entryPath returns where name must be extracted, failing if the
// result is not inside destFolder
func entryPath(destFolder, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", os.ErrInvalid
	}
	target := filepath.Join(destFolder, filepath.FromSlash(name))
	rel, err := filepath.Rel(destFolder, target)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", os.ErrInvalid
	}
	return target, nil
}

func extractEntry(f *zip.File, target string) error {
	info := f.FileInfo()
	if info.IsDir() {
		return os.MkdirAll(target, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}
	in, err := f.Open()
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
