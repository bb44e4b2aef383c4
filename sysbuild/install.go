package sysbuild

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var sharedLibraryExtensions = map[string]struct{}{
	".so":    {},
	".dll":   {},
	".dylib": {},
}

// versionedSO matches sonames such as liblzhamdll.so.1 or liblzhamdll.so.1.0.
var versionedSO = regexp.MustCompile(`\.so(\.[0-9]+)+$`)

// CopySharedLibraries copies the shared libraries of a dynamic build into
// each destination directory, so a binary can find them at run time
// without an rpath. Static archives and import libraries are skipped.
// It returns the copied paths of the first destination.
func CopySharedLibraries(result *BuildResult, dests ...string) ([]string, error) {
	if result == nil || len(result.Artifacts) == 0 {
		return nil, nil
	}

	dests = uniqueStrings(dests)
	if len(dests) == 0 {
		return nil, nil
	}

	var copied []string
	for _, rel := range result.Artifacts {
		if !isSharedLibrary(rel) {
			continue
		}

		src := filepath.Join(result.LibDir, filepath.FromSlash(rel))
		if info, err := os.Lstat(src); err != nil || info.IsDir() {
			continue
		}

		for i, dest := range dests {
			target := filepath.Join(dest, filepath.Base(rel))
			if err := copyFile(src, target); err != nil {
				return copied, fmt.Errorf("failed to copy %s: %w", rel, err)
			}
			if i == 0 {
				copied = append(copied, target)
			}
		}
	}

	return copied, nil
}

func isSharedLibrary(path string) bool {
	if versionedSO.MatchString(path) {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := sharedLibraryExtensions[ext]
	return ok
}

// copyFile copies src to destPath. Symlinks such as the unversioned .so
// link are followed, so the copy is always a regular file.
func copyFile(srcPath, destPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}

	if mkErr := os.MkdirAll(filepath.Dir(destPath), 0o755); mkErr != nil {
		return mkErr
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{})
	var result []string

	for _, value := range values {
		if value == "" {
			continue
		}
		value = filepath.Clean(value)
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result
}
