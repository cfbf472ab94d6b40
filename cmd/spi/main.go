package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, loadedConfig, err)
		os.Exit(1)
	}
}
