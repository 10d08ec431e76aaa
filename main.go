package main

import (
	"os"

	"shareflow/cmd"
	"shareflow/internal/logutil"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logutil.Errorf("%v", err)
		os.Exit(1)
	}
}
