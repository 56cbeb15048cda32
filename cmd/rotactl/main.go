package main

import (
	"os"

	"github.com/ogurasousui/office-rota/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
