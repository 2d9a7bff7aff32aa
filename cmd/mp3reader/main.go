package main

import (
	"fmt"
	"os"

	"github.com/AliceZed8/mp3-reader/cmd/mp3reader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
