package main

import (
	"os"
)

const appVersion = "dev"

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
