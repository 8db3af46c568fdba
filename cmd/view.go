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

// viewCmd renders a view by its route token, the way a navigation bar would.
type viewCmd struct{}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "render a view by name" }
func (*viewCmd) Usage() string {
	return `mna view [<name>]

  Renders one of the five views: summary (default), accounts, holdings,
  scenario or settings. Unknown names fall back to summary.
`
}

func (*viewCmd) SetFlags(f *flag.FlagSet) {}

func (c *viewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	switch moneyapp.ParseView(f.Arg(0)) {
	case moneyapp.ViewAccounts:
		printMarkdown(renderer.AccountsMarkdown(moneyapp.NewAccountsReport(svc.Accounts(), svc.Holdings())))
	case moneyapp.ViewHoldings:
		printMarkdown(renderer.HoldingsMarkdown(moneyapp.NewHoldingsReport(svc.Accounts(), svc.Holdings(), moneyapp.HoldingFilter{})))
	case moneyapp.ViewScenario:
		printMarkdown(renderer.ScenarioMarkdown(moneyapp.NewScenarioReport(svc.Accounts(), svc.Holdings(), moneyapp.NewScenario())))
	case moneyapp.ViewSettings:
		printMarkdown(renderer.SettingsMarkdown(svc.Settings()))
	default:
		report := moneyapp.NewSummaryReport(svc.Accounts(), svc.Holdings(), svc.Snapshots(), time.Now().UTC())
		printMarkdown(renderer.SummaryMarkdown(report))
	}
	return subcommands.ExitSuccess
}
