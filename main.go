// Copyright (c) 2026 Entities Service Team
// Entities Service - DLite entities service utility CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for the entities-service utility.
//
// Usage:
//
//	go run . config set base_url https://example.org
//	./entities-service config show --reveal-sensitive
//
// See --help for all commands and options.
package main

import (
	"fmt"
	"os"

	"github.com/toeirei/entities-service/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
