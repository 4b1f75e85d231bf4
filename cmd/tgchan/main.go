package main

import "github.com/itchan-dev/tgchan/internal/cli"

func main() {
	cli.Execute()
}
