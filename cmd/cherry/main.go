package main

import (
	"fmt"
	"os"

	"github.com/cherrygraph/cherry/cmd/cherry/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
