package main

import "github.com/montrey/sift/cli"

func main() {
	cli.Execute()
}
