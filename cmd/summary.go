package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/abduladil415/moneyapp2"
	"github.com/abduladil415/moneyapp2/renderer"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display net worth, changes, allocation and top holdings" }
func (*summaryCmd) Usage() string {
	return `mna summary

  Displays the current net worth, its change over recent periods, the
  allocation by asset class and by account, and the largest holdings.
`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	report := moneyapp.NewSummaryReport(svc.Accounts(), svc.Holdings(), svc.Snapshots(), time.Now().UTC())
	printMarkdown(renderer.SummaryMarkdown(report))
	return subcommands.ExitSuccess
}
