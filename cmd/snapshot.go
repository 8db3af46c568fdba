package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/abduladil415/moneyapp2"
)

type snapshotCmd struct{}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "capture the current net worth and allocation" }
func (*snapshotCmd) Usage() string {
	return `mna snapshot

  Captures a timestamped snapshot of the current net worth and the
  allocation breakdowns. Snapshots are append-only.
`
}

func (*snapshotCmd) SetFlags(f *flag.FlagSet) {}

func (c *snapshotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	s := svc.CaptureSnapshot()
	fmt.Printf("Captured snapshot %s: net worth %s\n", s.ID, moneyapp.M(s.NetWorth, "").String())
	return subcommands.ExitSuccess
}

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list the net worth history from snapshots" }
func (*historyCmd) Usage() string {
	return `mna history

  Lists every snapshot's net worth in chronological order.
`
}

func (*historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	points := moneyapp.NetWorthSeries(svc.Snapshots())
	if len(points) == 0 {
		fmt.Println("No snapshots yet. Run 'mna snapshot' to capture one.")
		return subcommands.ExitSuccess
	}
	for _, p := range points {
		fmt.Printf("%s  %s\n", p.Timestamp.Format("2006-01-02 15:04"), moneyapp.M(p.NetWorth, "").String())
	}
	return subcommands.ExitSuccess
}
