// Package notes turns a directory of markdown notes into search units: one
// per file and one per directory, titled from frontmatter, tagged with their
// own and inherited tags, and carrying their headings.
package notes

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/montrey/sift/search"
	"github.com/montrey/sift/toc"
)

// WebRoot prefixes every web path.
const WebRoot = "/notes"

const readmeName = "readme.md"

// Collection is a loaded notes tree.
type Collection struct {
	Root  string
	Units []search.Unit

	files      map[string]string // key -> relative path
	permalinks map[string]string // uuid -> key
}

// Load walks root and builds a unit for every note and directory. Files
// that cannot be read or parsed are logged and skipped.
func Load(root string, opts WalkOptions) (*Collection, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve notes dir: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open notes dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("notes dir %s is not a directory", abs)
	}

	entries, err := Walk(abs, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to walk notes dir: %w", err)
	}

	c := &Collection{
		Root:       abs,
		files:      map[string]string{},
		permalinks: map[string]string{},
	}

	dirTags := map[string][]string{}
	for _, e := range entries {
		var unit search.Unit
		var ok bool
		if e.IsDir {
			unit = c.loadDir(e.Rel)
			dirTags[e.Rel] = unit.Tags
			ok = true
		} else {
			unit, ok = c.loadFile(e.Rel)
		}
		if !ok {
			continue
		}
		c.Units = append(c.Units, unit)
	}

	for i := range c.Units {
		u := &c.Units[i]
		u.Tags = inheritTags(u.Tags, u.Path, dirTags)
		u.AncestorPath = ancestorKeys(u.Path)
		if u.UUID != "" {
			c.permalinks[u.UUID] = u.Key
		}
	}

	slog.Info("loaded notes", "root", abs, "units", len(c.Units), "permalinks", len(c.permalinks))
	return c, nil
}

func (c *Collection) loadDir(rel string) search.Unit {
	unit := search.Unit{
		Key:   WebPath(rel, true),
		Title: path.Base(rel),
		Path:  rel,
		IsDir: true,
	}
	readme := filepath.Join(c.Root, filepath.FromSlash(rel), readmeName)
	content, err := os.ReadFile(readme)
	if err != nil {
		return unit
	}
	fm, _, err := ParseFrontmatter(content)
	if err != nil {
		slog.Warn("skipping readme frontmatter", "path", readme, "error", err)
		return unit
	}
	if fm.Title != "" {
		unit.Title = fm.Title
	}
	unit.Tags = fm.Tags
	return unit
}

func (c *Collection) loadFile(rel string) (search.Unit, bool) {
	unit := search.Unit{
		Key:   WebPath(rel, false),
		Title: path.Base(rel),
		Path:  rel,
	}
	c.files[unit.Key] = rel
	if !isMarkdown(rel) {
		return unit, true
	}

	abs := filepath.Join(c.Root, filepath.FromSlash(rel))
	content, err := os.ReadFile(abs)
	if err != nil {
		slog.Warn("skipping unreadable note", "path", abs, "error", err)
		delete(c.files, unit.Key)
		return unit, false
	}
	fm, body, err := ParseFrontmatter(content)
	if err != nil {
		slog.Warn("ignoring frontmatter", "path", abs, "error", err)
	}
	if fm.Title != "" {
		unit.Title = fm.Title
	}
	unit.Tags = fm.Tags
	for _, h := range toc.Headings(body) {
		unit.Headers = append(unit.Headers, h.Text)
	}
	if fm.UUID != "" {
		id, err := uuid.Parse(fm.UUID)
		if err != nil {
			slog.Warn("ignoring malformed uuid", "path", abs, "uuid", fm.UUID)
		} else {
			unit.UUID = id.String()
		}
	}
	return unit, true
}

// Lookup returns the unit with the given key.
func (c *Collection) Lookup(key string) (search.Unit, bool) {
	for _, u := range c.Units {
		if u.Key == key {
			return u, true
		}
	}
	return search.Unit{}, false
}

// File returns the absolute path of the note served at key.
func (c *Collection) File(key string) (string, bool) {
	rel, ok := c.files[key]
	if !ok {
		return "", false
	}
	return filepath.Join(c.Root, filepath.FromSlash(rel)), true
}

// Permalink resolves a note uuid to its key.
func (c *Collection) Permalink(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	key, ok := c.permalinks[parsed.String()]
	return key, ok
}

// Permalinks returns a copy of the uuid to key map.
func (c *Collection) Permalinks() map[string]string {
	out := make(map[string]string, len(c.permalinks))
	for k, v := range c.permalinks {
		out[k] = v
	}
	return out
}

// Tags groups unit keys by tag.
func (c *Collection) Tags() map[string][]string {
	out := map[string][]string{}
	for _, u := range c.Units {
		for _, tag := range u.Tags {
			out[tag] = append(out[tag], u.Key)
		}
	}
	return out
}

// TOC builds the heading tree of the markdown note served at key.
func (c *Collection) TOC(key string) (*toc.Node, error) {
	file, ok := c.File(key)
	if !ok || !isMarkdown(file) {
		return nil, fmt.Errorf("no markdown note at %s", key)
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read note: %w", err)
	}
	_, body, _ := ParseFrontmatter(content)
	return toc.FromMarkdown(body), nil
}

// WebPath maps a relative note path to the path it is served at. Markdown
// files are served as .html.
func WebPath(rel string, isDir bool) string {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	if !isDir && isMarkdown(rel) {
		rel = strings.TrimSuffix(rel, path.Ext(rel)) + ".html"
	}
	return path.Join(WebRoot, rel)
}

func isMarkdown(p string) bool {
	return strings.EqualFold(path.Ext(p), ".md")
}

// inheritTags appends the tags of every ancestor directory, nearest first,
// skipping duplicates.
func inheritTags(own []string, rel string, dirTags map[string][]string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(tags []string) {
		for _, t := range tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	add(own)
	for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
		add(dirTags[dir])
	}
	return out
}

func ancestorKeys(rel string) []string {
	var keys []string
	for dir := path.Dir(rel); dir != "." && dir != "/"; dir = path.Dir(dir) {
		keys = append([]string{WebPath(dir, true)}, keys...)
	}
	return keys
}
