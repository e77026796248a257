package main

import (
	"os"

	"github.com/forrestang/RenkoDiscovery-sub000/cmd/renkodisc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
