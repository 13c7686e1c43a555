// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package group

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

var (
	// ErrDestinationExists means another file already has the name in the
	// target directory. The source is left in place.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrAlreadyInPlace means the source already sits in the target directory.
	ErrAlreadyInPlace = errors.New("already in place")
)

// MoveFile moves src into dir under its base name and returns the new path.
// It falls back to copy and remove when a rename crosses devices.
func MoveFile(src, dir string) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))
	if filepath.Clean(src) == dst {
		return dst, ErrAlreadyInPlace
	}

	if _, err := os.Lstat(dst); err == nil {
		return dst, fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return dst, fmt.Errorf("checking %s: %w", dst, err)
	}

	err := os.Rename(src, dst)
	if err == nil {
		return dst, nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return dst, fmt.Errorf("moving %s: %w", src, err)
	}

	if err := copyFile(src, dst); err != nil {
		return dst, fmt.Errorf("copying %s across devices: %w", src, err)
	}
	if err := os.Remove(src); err != nil {
		return dst, fmt.Errorf("removing %s after copy: %w", src, err)
	}
	return dst, nil
}

// copyFile copies contents, permissions, and modification time.
func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
