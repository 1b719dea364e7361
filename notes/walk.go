package notes

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/monochromegane/go-gitignore"
)

// Entry is a file or directory found by Walk, relative to the walk root
// with forward slashes.
type Entry struct {
	Rel   string
	IsDir bool
}

// WalkOptions filters the walk with doublestar globs matched against
// relative paths. An empty Include keeps every file.
type WalkOptions struct {
	Include []string
	Exclude []string
}

// Walk traverses the tree rooted at root and returns its files and
// directories in lexical order. Hidden entries, node_modules and vendor
// are skipped, as is anything matched by a .gitignore in root.
func Walk(root string, opts WalkOptions) ([]Entry, error) {
	var entries []Entry
	var ignoreMatcher gitignore.IgnoreMatcher

	gitignorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		ignoreMatcher, _ = gitignore.NewGitIgnore(gitignorePath)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, the rest is still useful
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil || relPath == "." {
			return nil
		}
		rel := filepath.ToSlash(relPath)

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() && (d.Name() == "node_modules" || d.Name() == "vendor") {
			return filepath.SkipDir
		}

		if ignoreMatcher != nil && ignoreMatcher.Match(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if matchAny(opts.Exclude, rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && len(opts.Include) > 0 && !matchAny(opts.Include, rel) {
			return nil
		}

		entries = append(entries, Entry{Rel: rel, IsDir: d.IsDir()})
		return nil
	})

	return entries, err
}

func matchAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
