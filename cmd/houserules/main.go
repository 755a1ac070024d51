package main

import (
	"github.com/livp123/houserules/cmd/houserules/commands"
)

func main() {
	commands.Execute()
}
