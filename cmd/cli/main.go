package main

import (
	"fmt"
	"os"

	"github.com/pratik-mahalle/hireloop/internal/cli"
)

func main() {
	err := cli.Execute()
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(cli.ExitCode(err))
}
