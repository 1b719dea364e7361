package main

import (
	"fmt"

	"github.com/montrey/sift/search"
	"github.com/montrey/sift/toc"
	"github.com/montrey/sift/ui"
)

const sample = `# Getting Started
## Install
### Install on Linux
### Install on macOS
## Configure
# Reference
## Command line flags
## Environment
`

func main() {
	root := toc.FromMarkdown([]byte(sample))
	idx, err := toc.NewIndex(root)
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, q := range []string{"", "install", "envrionment"} {
		results := idx.Search(q, search.MaxLimit)
		fmt.Printf("=== %q: %d results ===\n", q, len(results))
		if q == "" {
			fmt.Println(ui.RenderTree(toc.Full(root)))
		} else {
			fmt.Println(ui.RenderTree(toc.Reconstruct(root, results)))
		}
		fmt.Println()
	}

	fmt.Println("=== flat list ===")
	fmt.Println(ui.RenderResults(idx.Search("install", search.DefaultLimit), 0, search.DefaultMaxDisplayed))
}
