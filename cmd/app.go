// Package cmd implements the CLI application to track accounts, holdings and
// net worth.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/abduladil415/moneyapp2"
)

// Commands lists every subcommand a main package should register.
var Commands = []subcommands.Command{
	&summaryCmd{},
	&accountsCmd{},
	&addAccountCmd{},
	&updateAccountCmd{},
	&deleteAccountCmd{},
	&holdingsCmd{},
	&addHoldingCmd{},
	&updateHoldingCmd{},
	&deleteHoldingCmd{},
	&snapshotCmd{},
	&historyCmd{},
	&scenarioCmd{},
	&settingsCmd{},
	&bucketCmd{},
	&exportCmd{},
	&importCmd{},
	&viewCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var dataDir = flag.String("data-dir", "", "Path to the data directory (default from config, then ~/.moneyapp)")
var verbose = flag.Bool("v", false, "Enable debug logging")
var plain = flag.Bool("plain", false, "Print raw markdown without terminal styling")

// openService opens the slot directory and loads a service over it. The
// caller must Close the service.
func openService() (*moneyapp.Service, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	dir := *dataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	store, err := moneyapp.NewDirStore(dir)
	if err != nil {
		return nil, err
	}
	return moneyapp.NewService(store, moneyapp.WithLogger(logger())), nil
}

func logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// printMarkdown renders a markdown document to the terminal. When rendering
// fails or -plain is set, the raw markdown is printed as-is.
func printMarkdown(markdown string) {
	if *plain {
		fmt.Print(markdown)
		return
	}
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}
