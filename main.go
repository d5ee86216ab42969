// Command splinch splits a file into two XOR-complementary parts or combines them back.
package main

import (
	"os"

	"github.com/idelchi/splinch/internal/commands"
	"github.com/idelchi/splinch/internal/config"
)

// version is set at build time.
var version = "unknown - unofficial build"

func main() {
	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).Execute(); err != nil {
		os.Exit(1)
	}
}
