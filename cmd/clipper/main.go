package main

import "github.com/clipperhq/clipper/internal/cli"

func main() {
	cli.Main()
}
