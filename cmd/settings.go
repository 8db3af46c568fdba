package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/abduladil415/moneyapp2"
	"github.com/abduladil415/moneyapp2/renderer"
)

// settingsCmd holds the flags for the 'settings' subcommand.
type settingsCmd struct {
	timeframe string
}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change user preferences" }
func (*settingsCmd) Usage() string {
	return `mna settings [-timeframe <7d|30d|90d|1y>]

  Without flags, shows the current settings. With -timeframe, sets the
  default chart lookback window.
`
}

func (c *settingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.timeframe, "timeframe", "", "New default timeframe")
}

func (c *settingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	if c.timeframe != "" {
		s := svc.Settings()
		s.DefaultTimeframe = moneyapp.ParseTimeframe(c.timeframe)
		svc.SetSettings(s)
	}
	printMarkdown(renderer.SettingsMarkdown(svc.Settings()))
	return subcommands.ExitSuccess
}

// bucketCmd holds the flags for the 'bucket' subcommand.
type bucketCmd struct {
	add    string
	remove string
}

func (*bucketCmd) Name() string     { return "bucket" }
func (*bucketCmd) Synopsis() string { return "add or remove a strategy bucket" }
func (*bucketCmd) Usage() string {
	return `mna bucket [-add <name>] [-remove <name>]

  Manages the strategy bucket list. Removing a bucket does not touch
  holdings already labeled with it.
`
}

func (c *bucketCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Bucket to append")
	f.StringVar(&c.remove, "remove", "", "Bucket to remove")
}

func (c *bucketCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.add == "" && c.remove == "" {
		fmt.Fprintln(os.Stderr, "Nothing to do: pass -add or -remove.")
		return subcommands.ExitUsageError
	}

	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	if c.add != "" {
		svc.AddStrategyBucket(c.add)
	}
	if c.remove != "" {
		svc.RemoveStrategyBucket(c.remove)
	}
	fmt.Println("Buckets:", svc.Settings().StrategyBuckets)
	return subcommands.ExitSuccess
}
