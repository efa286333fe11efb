package main

import "github.com/likx/scrollsnap/cmd/scrollsnap/commands"

func main() {
	commands.Execute()
}
