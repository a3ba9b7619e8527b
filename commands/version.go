package commands

import (
	"context"
	"flag"
	"fmt"
)

// VersionCmd is an initialized Version command for the main() command list
var VersionCmd = Version{}

// Version is a CLI command implementation that displays the version information.
type Version struct {
}

func (cmd *Version) Name() string {
	return "version"
}

func (cmd *Version) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("version", flag.ExitOnError)
}

func (cmd *Version) Description() string {
	return "Displays the current version"
}

func (cmd *Version) Usage() string {
	return ""
}

// Help returns the 'version' command long form help
func (cmd *Version) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s version\n", APP)
	fmt.Println()
	fmt.Printf("  Displays the %s version in the format v<major>.<minor>.<build> e.g. v1.0.0\n", APP)
	fmt.Println()
}

// Execute prints the current version
func (cmd *Version) Execute(ctx context.Context, options *Options) error {
	fmt.Printf("%v\n", VERSION)

	return nil
}
