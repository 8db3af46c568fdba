package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/abduladil415/moneyapp2"
	"github.com/abduladil415/moneyapp2/renderer"
)

// pairList collects repeated "key=value" flag occurrences.
type pairList struct {
	keys   []string
	values []string
}

func (p *pairList) String() string { return strings.Join(p.keys, ",") }

func (p *pairList) Set(s string) error {
	key, value, found := strings.Cut(s, "=")
	if !found || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	p.keys = append(p.keys, key)
	p.values = append(p.values, value)
	return nil
}

// scenarioCmd holds the flags for the 'scenario' subcommand.
type scenarioCmd struct {
	overrides pairList
	shifts    pairList
	quick     string
	quickPct  string
}

func (*scenarioCmd) Name() string     { return "scenario" }
func (*scenarioCmd) Synopsis() string { return "project a hypothetical net worth" }
func (*scenarioCmd) Usage() string {
	return `mna scenario [-set <ticker>=<price>]... [-shift <class>=<pct>]... [-quick <tickers> -pct <pct>]

  Projects holdings through a what-if scenario. A per-ticker price override
  wins over its asset-class shift; holdings without either keep their
  current price. Cash account balances are never touched.

Usage Examples:
# What if BTC hits 100k?
$ mna scenario -set BTC=100000

# What if every stock drops 20% while BTC rallies?
$ mna scenario -shift Stock=-20 -set BTC=100000

# Move a set of tickers by a percentage in one go.
$ mna scenario -quick VTI,VXUS -pct 10
`
}

func (c *scenarioCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.overrides, "set", "Price override as ticker=price (repeatable)")
	f.Var(&c.shifts, "shift", "Asset class shift as class=percent (repeatable)")
	f.StringVar(&c.quick, "quick", "", "Comma-separated tickers to move by -pct")
	f.StringVar(&c.quickPct, "pct", "0", "Percent move applied to -quick tickers")
}

func (c *scenarioCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	sc := moneyapp.NewScenario()
	for i, ticker := range c.overrides.keys {
		price, err := decimal.NewFromString(c.overrides.values[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing override for %s: %v\n", ticker, err)
			return subcommands.ExitUsageError
		}
		sc.SetOverride(strings.ToUpper(ticker), price)
	}
	for i, class := range c.shifts.keys {
		pct, err := decimal.NewFromString(c.shifts.values[i])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing shift for %s: %v\n", class, err)
			return subcommands.ExitUsageError
		}
		sc.SetShift(moneyapp.ParseAssetClass(class), pct)
	}
	if c.quick != "" {
		pct, err := decimal.NewFromString(c.quickPct)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -pct: %v\n", err)
			return subcommands.ExitUsageError
		}
		tickers := strings.Split(strings.ToUpper(c.quick), ",")
		sc.QuickSet(svc.Holdings(), tickers, pct)
	}

	report := moneyapp.NewScenarioReport(svc.Accounts(), svc.Holdings(), sc)
	printMarkdown(renderer.ScenarioMarkdown(report))
	return subcommands.ExitSuccess
}
