package fsutil

import (
	"os"
	"path/filepath"
)

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsJSONName reports whether name matches JSONPattern.
func IsJSONName(name string) bool {
	ok, _ := filepath.Match(JSONPattern, name)
	return ok
}

// exists reports whether anything, including a dangling symlink, is at path.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
