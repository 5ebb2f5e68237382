package main

import "github.com/draftloom/manuscript/cmd"

func main() {
	cmd.Execute()
}
