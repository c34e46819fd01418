package main

import "github.com/pfrederiksen/nps-sites/internal/cli"

func main() {
	cli.Execute()
}
