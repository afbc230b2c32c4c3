package main

import (
	"github.com/mcoot/playerhub-go/internal/cli"
)

func main() {
	cli.Execute()
}
