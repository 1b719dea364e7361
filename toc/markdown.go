package toc

import (
	"strconv"
	"strings"

	goslug "github.com/gosimple/slug"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one markdown heading with its anchor.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// Headings extracts the headings of a markdown document in order. Anchors
// are slugs of the heading text, suffixed -1, -2, ... when repeated.
func Headings(src []byte) []Heading {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var headings []Heading
	taken := map[string]bool{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		var b strings.Builder
		inlineText(&b, heading, src)
		headingText := strings.Join(strings.Fields(b.String()), " ")
		if headingText == "" {
			return ast.WalkSkipChildren, nil
		}

		headings = append(headings, Heading{
			Level: heading.Level,
			Text:  headingText,
			ID:    anchor(headingText, taken),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// FromMarkdown builds a content tree from the headings of src. A heading
// nests under the closest preceding heading of a lower level; skipped
// levels are not filled in.
func FromMarkdown(src []byte) *Node {
	root := &Node{}
	type frame struct {
		level int
		node  *Node
	}
	stack := []frame{{level: 0, node: root}}
	for _, h := range Headings(src) {
		for len(stack) > 1 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		node := &Node{ID: h.ID, Text: h.Text, Href: "#" + h.ID}
		parent := stack[len(stack)-1].node
		parent.Children = append(parent.Children, node)
		stack = append(stack, frame{level: h.Level, node: node})
	}
	return root
}

func inlineText(b *strings.Builder, n ast.Node, src []byte) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		default:
			inlineText(b, child, src)
		}
	}
}

func anchor(s string, taken map[string]bool) string {
	base := goslug.Make(s)
	if base == "" {
		base = "section"
	}
	id := base
	for i := 1; taken[id]; i++ {
		id = base + "-" + strconv.Itoa(i)
	}
	taken[id] = true
	return id
}
