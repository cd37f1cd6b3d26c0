package main

import (
	"fmt"
	"os"

	"dispatchsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "dispatchsim:", err)
		os.Exit(1)
	}
}
