package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/abduladil415/moneyapp2"
	"github.com/abduladil415/moneyapp2/renderer"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	class  string
	bucket string
	search string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list holdings with values and portfolio weights" }
func (*holdingsCmd) Usage() string {
	return `mna holdings [-class <class>] [-bucket <bucket>] [-search <term>]

  Lists holdings, optionally filtered by asset class, strategy bucket or a
  case-insensitive search over ticker and name.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.class, "class", "", "Only holdings of this asset class")
	f.StringVar(&c.bucket, "bucket", "", "Only holdings in this strategy bucket")
	f.StringVar(&c.search, "search", "", "Only holdings whose ticker or name matches")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	filter := moneyapp.HoldingFilter{Bucket: c.bucket, Search: c.search}
	if c.class != "" {
		filter.AssetClass = moneyapp.ParseAssetClass(c.class)
	}
	printMarkdown(renderer.HoldingsMarkdown(moneyapp.NewHoldingsReport(svc.Accounts(), svc.Holdings(), filter)))
	return subcommands.ExitSuccess
}

// addHoldingCmd holds the flags for the 'add-holding' subcommand.
type addHoldingCmd struct {
	account   string
	ticker    string
	name      string
	class     string
	bucket    string
	quantity  string
	price     string
	costBasis string
	currency  string
}

func (*addHoldingCmd) Name() string     { return "add-holding" }
func (*addHoldingCmd) Synopsis() string { return "create a new holding in an account" }
func (*addHoldingCmd) Usage() string {
	return `mna add-holding -account <id> -ticker <ticker> -name <name> -quantity <q> -price <p> [-class <class>] [-bucket <bucket>]

  Creates a holding. The ticker is normalized to upper case; quantity and
  price must be non-negative. The market value is always quantity times
  price, never stored.

Usage Examples:
$ mna add-holding -account a1 -ticker vti -name "Total Market" -class ETF -quantity 10 -price 210.55
`
}

func (c *addHoldingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account id the holding belongs to")
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol")
	f.StringVar(&c.name, "name", "", "Display name (required)")
	f.StringVar(&c.class, "class", string(moneyapp.AssetClassOther), "Asset class")
	f.StringVar(&c.bucket, "bucket", "", "Strategy bucket")
	f.StringVar(&c.quantity, "quantity", "0", "Quantity held")
	f.StringVar(&c.price, "price", "0", "Current price per unit")
	f.StringVar(&c.costBasis, "cost-basis", "", "Total cost basis (optional)")
	f.StringVar(&c.currency, "currency", "", "Currency code (defaults to USD)")
}

func (c *addHoldingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	var costBasis *decimal.Decimal
	if c.costBasis != "" {
		cb, err := decimal.NewFromString(c.costBasis)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing cost basis: %v\n", err)
			return subcommands.ExitUsageError
		}
		costBasis = &cb
	}

	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	h, err := svc.AddHolding(moneyapp.Holding{
		AccountID:      c.account,
		Ticker:         c.ticker,
		Name:           c.name,
		AssetClass:     moneyapp.ParseAssetClass(c.class),
		StrategyBucket: c.bucket,
		Quantity:       quantity,
		Price:          price,
		CostBasis:      costBasis,
		Currency:       c.currency,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created holding %s (%s)\n", h.Ticker, h.ID)
	return subcommands.ExitSuccess
}

// updateHoldingCmd holds the flags for the 'update-holding' subcommand.
type updateHoldingCmd struct {
	id       string
	account  string
	ticker   string
	name     string
	class    string
	bucket   string
	quantity string
	price    string
}

func (*updateHoldingCmd) Name() string     { return "update-holding" }
func (*updateHoldingCmd) Synopsis() string { return "change fields of an existing holding" }
func (*updateHoldingCmd) Usage() string {
	return `mna update-holding -id <id> [-price <p>] [-quantity <q>] ...

  Updates the given fields of a holding; omitted flags leave their fields
  untouched. Every update stamps the holding with the current time.
`
}

func (c *updateHoldingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Holding id (required)")
	f.StringVar(&c.account, "account", "", "New account id")
	f.StringVar(&c.ticker, "ticker", "", "New ticker")
	f.StringVar(&c.name, "name", "", "New display name")
	f.StringVar(&c.class, "class", "", "New asset class")
	f.StringVar(&c.bucket, "bucket", "", "New strategy bucket")
	f.StringVar(&c.quantity, "quantity", "", "New quantity")
	f.StringVar(&c.price, "price", "", "New price")
}

func (c *updateHoldingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var changes moneyapp.HoldingChanges
	if c.account != "" {
		changes.AccountID = &c.account
	}
	if c.ticker != "" {
		changes.Ticker = &c.ticker
	}
	if c.name != "" {
		changes.Name = &c.name
	}
	if c.class != "" {
		class := moneyapp.ParseAssetClass(c.class)
		changes.AssetClass = &class
	}
	if c.bucket != "" {
		changes.StrategyBucket = &c.bucket
	}
	if c.quantity != "" {
		quantity, err := decimal.NewFromString(c.quantity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing quantity: %v\n", err)
			return subcommands.ExitUsageError
		}
		changes.Quantity = &quantity
	}
	if c.price != "" {
		price, err := decimal.NewFromString(c.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
			return subcommands.ExitUsageError
		}
		changes.Price = &price
	}

	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	h, err := svc.UpdateHolding(c.id, changes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated holding %s\n", h.Ticker)
	return subcommands.ExitSuccess
}

// deleteHoldingCmd holds the flags for the 'delete-holding' subcommand.
type deleteHoldingCmd struct {
	id string
}

func (*deleteHoldingCmd) Name() string     { return "delete-holding" }
func (*deleteHoldingCmd) Synopsis() string { return "delete a holding" }
func (*deleteHoldingCmd) Usage() string {
	return `mna delete-holding -id <id>
`
}

func (c *deleteHoldingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Holding id (required)")
}

func (c *deleteHoldingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	if !svc.DeleteHolding(c.id) {
		fmt.Fprintf(os.Stderr, "No holding with id %q\n", c.id)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted holding %s\n", c.id)
	return subcommands.ExitSuccess
}
