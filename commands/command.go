package commands

import (
	"context"
	"flag"
	"fmt"
	"log"

	"google.golang.org/api/sheets/v4"
)

// Command is the contract for a CLI command - parsed from its own flagset
// and executed with the global options.
type Command interface {
	Name() string
	FlagSet() *flag.FlagSet
	Description() string
	Usage() string
	Help()
	Execute(ctx context.Context, options *Options) error
}

// Options are the settings common to all commands.
type Options struct {
	Debug bool
}

// Parse matches the first command line argument against the command list
// and parses the remaining arguments with the matched command's flagset.
// Returns nil if the argument list is empty or does not name a command.
func Parse(cli []Command, help Command, args []string) (Command, error) {
	if len(args) < 1 {
		return nil, nil
	}

	list := append([]Command{}, cli...)
	if help != nil {
		list = append(list, help)
	}

	for _, c := range list {
		if c.Name() == args[0] {
			flagset := c.FlagSet()
			if flagset == nil {
				return nil, fmt.Errorf("Command '%s' is missing a flagset", c.Name())
			}

			return c, flagset.Parse(args[1:])
		}
	}

	return nil, nil
}

// NewHelp returns an initialized Help command for the main() command list.
func NewHelp(cli []Command) *Help {
	return &Help{
		cli:     cli,
		flagset: flag.NewFlagSet("help", flag.ExitOnError),
	}
}

type Help struct {
	cli     []Command
	flagset *flag.FlagSet
}

func (cmd *Help) Name() string {
	return "help"
}

func (cmd *Help) FlagSet() *flag.FlagSet {
	return cmd.flagset
}

func (cmd *Help) Description() string {
	return "Displays the command list"
}

func (cmd *Help) Usage() string {
	return "<command>"
}

func (cmd *Help) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s help <command>\n", APP)
	fmt.Println()
}

func (cmd *Help) Execute(ctx context.Context, options *Options) error {
	if args := cmd.flagset.Args(); len(args) > 0 {
		for _, c := range cmd.cli {
			if c.Name() == args[0] {
				c.Help()
				return nil
			}
		}

		return fmt.Errorf("Invalid command '%s'", args[0])
	}

	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] <command> [options]\n", APP)
	fmt.Println()
	fmt.Println("  Commands:")
	fmt.Println()

	for _, c := range cmd.cli {
		fmt.Printf("    %-9s %s\n", c.Name(), c.Description())
	}

	fmt.Printf("    %-9s %s\n", "help", "Displays this message, or command specific help with 'help <command>'")
	fmt.Println()

	return nil
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-10s %s\n", f.Name, f.Usage)
	})
}

func getSpreadsheet(google *sheets.Service, id string, ctx context.Context) (*sheets.Spreadsheet, error) {
	spreadsheet, err := google.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch spreadsheet (%v)", err)
	}

	return spreadsheet, nil
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func info(msg string) {
	log.Printf("%-5s %s", "INFO", msg)
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	log.Printf("%-5s %s", "WARN", fmt.Sprintf(format, args...))
}
