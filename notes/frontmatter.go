package notes

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Frontmatter holds the YAML header fields the loader understands.
type Frontmatter struct {
	Title string  `yaml:"title"`
	Tags  TagList `yaml:"tags"`
	UUID  string  `yaml:"uuid"`
}

// TagList accepts either a YAML sequence or a single comma separated string.
type TagList []string

func (t *TagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var tags []string
		if err := value.Decode(&tags); err != nil {
			return err
		}
		*t = cleanTags(tags)
	case yaml.ScalarNode:
		*t = cleanTags(strings.Split(value.Value, ","))
	default:
		return fmt.Errorf("tags: unexpected YAML node at line %d", value.Line)
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// frontmatterBounds returns the byte offsets of the YAML block and of the
// body. ok is false when content does not open with a closed --- block.
func frontmatterBounds(content []byte) (yamlStart, yamlEnd, bodyStart int, ok bool) {
	first, rest, found := bytes.Cut(content, []byte("\n"))
	if !found || strings.TrimSpace(string(first)) != "---" {
		return 0, 0, 0, false
	}
	yamlStart = len(first) + 1
	offset := yamlStart
	for len(rest) > 0 {
		line, tail, _ := bytes.Cut(rest, []byte("\n"))
		if strings.TrimSpace(string(line)) == "---" {
			bodyStart = offset + len(line)
			if bodyStart < len(content) {
				bodyStart++
			}
			return yamlStart, offset, bodyStart, true
		}
		offset += len(line) + 1
		rest = tail
	}
	return 0, 0, 0, false
}

// ParseFrontmatter splits content into its frontmatter and markdown body.
// Content without frontmatter yields a zero Frontmatter and the whole input.
func ParseFrontmatter(content []byte) (Frontmatter, []byte, error) {
	var fm Frontmatter
	start, end, body, ok := frontmatterBounds(content)
	if !ok {
		return fm, content, nil
	}
	if err := yaml.Unmarshal(content[start:end], &fm); err != nil {
		return fm, content[body:], fmt.Errorf("failed to parse frontmatter as YAML: %w", err)
	}
	fm.Title = strings.TrimSpace(fm.Title)
	return fm, content[body:], nil
}

// EnsureUUID returns content with a uuid frontmatter field, adding a new
// random one if none is present. The rest of the document is kept as is.
func EnsureUUID(content []byte) (out []byte, id string, added bool, err error) {
	fm, _, err := ParseFrontmatter(content)
	if err != nil {
		return nil, "", false, err
	}
	if fm.UUID != "" {
		return content, fm.UUID, false, nil
	}

	id = uuid.New().String()
	line := "uuid: " + id + "\n"
	start, end, _, ok := frontmatterBounds(content)
	if !ok {
		return append([]byte("---\n"+line+"---\n"), content...), id, true, nil
	}

	var b bytes.Buffer
	b.Write(content[:end])
	if end > start && content[end-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(line)
	b.Write(content[end:])
	return b.Bytes(), id, true, nil
}
