// Package getpath resolves command-line paths against the directory the user
// ran the command from.
package getpath

import (
	"os"
	"path/filepath"
)

// WorkingDirectoryVar is set by "bazel run" to the directory the command was
// run from.
const WorkingDirectoryVar = "BUILD_WORKING_DIRECTORY"

// GetPath returns the path to the file, which will be correct even when run
// from Bazel. Empty and absolute paths are returned unchanged.
func GetPath(filename string) string {
	return resolve(os.Getenv(WorkingDirectoryVar), filename)
}

// GetPaths applies GetPath to every path.
func GetPaths(filenames []string) []string {
	wd := os.Getenv(WorkingDirectoryVar)
	r := make([]string, len(filenames))
	for i, f := range filenames {
		r[i] = resolve(wd, f)
	}
	return r
}

func resolve(wd, filename string) string {
	if filename != "" && wd != "" && !filepath.IsAbs(filename) {
		return filepath.Join(wd, filename)
	}
	return filename
}
