package main

import (
	"github.com/naton1/taskforge/cmd"
)

// main is the entry point for the taskforge CLI.
func main() {
	cmd.Execute()
}
