package main

import (
	"github.com/arkade-games/adastra-server/internal/cli"
)

func main() {
	cli.Execute()
}
