package main

import (
	"os"

	"github.com/wonny/vulture/cmd/vulture/commands"
)

// main is the entry point for the Vulture CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/vulture [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
