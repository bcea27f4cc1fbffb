package main

import "github.com/agentic-research/sprout/cmd"

func main() {
	cmd.Execute()
}
