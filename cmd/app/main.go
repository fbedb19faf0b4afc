package main

import (
	"os"

	"highwayMonitor/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
