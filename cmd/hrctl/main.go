package main

import (
	"fmt"
	"os"

	"hrportal/internal/app/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hrctl:", err)
		os.Exit(1)
	}
}
