package main

import "github.com/qyf6zs2vmg-hue/CeloraAI/internal/commands"

func main() {
	commands.Execute()
}
