package main

import (
	"dev.hon.one/sodola/cmd/sodola-exporter/commands"
)

func main() {
	commands.Execute()
}
