package target

import "path/filepath"

// resolveRelative joins a relative path against a module's source
// directory, leaving an already-absolute path untouched.
func resolveRelative(sourceDir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(sourceDir, p)
}
