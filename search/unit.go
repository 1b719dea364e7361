package search

import "strings"

// Unit is one searchable entity: a document, a directory or a TOC entry.
// Units are treated as immutable once handed to BuildIndex.
type Unit struct {
	Key          string   `json:"key"`
	Title        string   `json:"title"`
	Path         string   `json:"path,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Headers      []string `json:"headers,omitempty"`
	IsDir        bool     `json:"is_dir,omitempty"`
	AncestorPath []string `json:"ancestor_path,omitempty"`
	UUID         string   `json:"uuid,omitempty"`
}

// Values returns the non-empty sub-values of a field. Missing fields yield
// nothing and therefore never match.
func (u *Unit) Values(f Field) []string {
	switch f {
	case FieldTitle:
		return nonEmpty(u.Title)
	case FieldPath:
		return nonEmpty(u.Path)
	case FieldTags:
		return nonEmpty(u.Tags...)
	case FieldHeaders:
		return nonEmpty(u.Headers...)
	}
	return nil
}

// DisplayTitle is the title as listings show it, with directories suffixed
// by a slash.
func (u *Unit) DisplayTitle() string {
	if u.IsDir && !strings.HasSuffix(u.Title, "/") {
		return u.Title + "/"
	}
	return u.Title
}

// Target is the reference a renderer navigates to.
func (u *Unit) Target() string {
	if u.Path != "" {
		return u.Path
	}
	return u.Key
}

func (u *Unit) clone() Unit {
	c := *u
	c.Tags = append([]string(nil), u.Tags...)
	c.Headers = append([]string(nil), u.Headers...)
	c.AncestorPath = append([]string(nil), u.AncestorPath...)
	return c
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
