// Package fsutil provides the filesystem primitives shared by the
// prepare-history and assemble commands.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ErrSameFile is returned when a copy's source and destination are the same file
var ErrSameFile = errors.New("source and destination are the same file")

// JSONPattern matches the files handled by CopyJSONFiles.
const JSONPattern = "*.json"

// CopyJSONFiles copies every regular *.json file directly inside src into dst.
// dst and its parents are created if needed. When skipExisting is set, a file
// whose name already exists in dst is neither copied nor counted.
// An absent src copies nothing and is not an error.
// Returns the number of files copied.
func CopyJSONFiles(src, dst string, skipExisting bool, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	copied := 0
	for _, entry := range entries {
		if !IsJSONName(entry.Name()) {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		if !IsFile(srcPath) {
			continue
		}

		dstPath := filepath.Join(dst, entry.Name())
		if skipExisting && exists(dstPath) {
			logger.Debug("skip existing file", zap.String("path", dstPath))
			continue
		}

		if err := CopyFile(srcPath, dstPath); err != nil {
			return copied, err
		}
		logger.Debug("copied file", zap.String("src", srcPath), zap.String("dst", dstPath))
		copied++
	}

	return copied, nil
}

// CopyFile copies src to dst, overwriting dst. The permission bits and
// modification time of src are carried over. Copying a file onto itself
// fails with ErrSameFile and leaves it untouched.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	// Must be checked before O_TRUNC empties the source
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return fmt.Errorf("copy %s to %s: %w", src, dst, ErrSameFile)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	// OpenFile only applies the mode on create
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// CopyTree recursively copies the directory src into dst. Existing files in
// dst are overwritten; entries in dst that are not in src are left alone.
// Symlinks are followed. Returns the number of files copied.
func CopyTree(src, dst string, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("copy tree %s: not a directory", src)
	}

	if err := os.MkdirAll(dst, info.Mode().Perm()|0700); err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, err
	}

	copied := 0
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(srcPath)
			if err != nil {
				return copied, err
			}
			isDir = target.IsDir()
		}

		if isDir {
			n, err := CopyTree(srcPath, dstPath, logger)
			copied += n
			if err != nil {
				return copied, err
			}
			continue
		}

		if err := CopyFile(srcPath, dstPath); err != nil {
			return copied, err
		}
		logger.Debug("copied file", zap.String("src", srcPath), zap.String("dst", dstPath))
		copied++
	}

	return copied, nil
}
