package utils

import "path/filepath"

// ResolvePath returns path unchanged when it is absolute, otherwise relative to baseDir.
// An empty baseDir leaves a relative path relative to the working directory.
func ResolvePath(path, baseDir string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
