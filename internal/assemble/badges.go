package assemble

import (
	"path/filepath"

	"go.uber.org/zap"

	"benchpages/internal/category"
	"benchpages/internal/fsutil"
)

// promoteBadges copies each mapped badge found in srcDir into dstDir under its
// destination name. A missing srcDir or badge file is skipped.
// Returns the destination names written.
func promoteBadges(srcDir, dstDir string, badges []category.Badge, logger *zap.Logger) ([]string, error) {
	if len(badges) == 0 || !fsutil.IsDir(srcDir) {
		return nil, nil
	}

	var written []string
	for _, b := range badges {
		src := filepath.Join(srcDir, b.Source)
		if !fsutil.IsFile(src) {
			logger.Debug("badge not produced", zap.String("path", src))
			continue
		}

		if err := fsutil.CopyFile(src, filepath.Join(dstDir, b.Destination)); err != nil {
			return written, err
		}
		written = append(written, b.Destination)
	}
	return written, nil
}
