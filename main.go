package main

import "github.com/aegislabs/aegis/internal/commands"

func main() {
	commands.Execute()
}
