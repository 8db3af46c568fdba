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

type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts with their derived balances" }
func (*accountsCmd) Usage() string {
	return `mna accounts

  Lists every account. Cash account balances are the stored amounts; every
  other balance is derived from the account's holdings.
`
}

func (*accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	printMarkdown(renderer.AccountsMarkdown(moneyapp.NewAccountsReport(svc.Accounts(), svc.Holdings())))
	return subcommands.ExitSuccess
}

// addAccountCmd holds the flags for the 'add-account' subcommand.
type addAccountCmd struct {
	name        string
	institution string
	accountType string
	taxType     string
	balance     string
	notes       string
}

func (*addAccountCmd) Name() string     { return "add-account" }
func (*addAccountCmd) Synopsis() string { return "create a new account" }
func (*addAccountCmd) Usage() string {
	return `mna add-account -name <name> [-institution <name>] [-type <type>] [-tax <tax>] [-balance <amount>]

  Creates an account. Valid types are 401k, "Roth IRA", Taxable, Crypto,
  Cash and Other; anything else maps to Other. The balance only matters for
  Cash accounts.

Usage Examples:
$ mna add-account -name "Emergency Fund" -type Cash -balance 5000
$ mna add-account -name Brokerage -institution Schwab -type Taxable -tax Taxable
`
}

func (c *addAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Account name (required)")
	f.StringVar(&c.institution, "institution", "", "Institution holding the account")
	f.StringVar(&c.accountType, "type", string(moneyapp.AccountTypeOther), "Account type")
	f.StringVar(&c.taxType, "tax", string(moneyapp.TaxTypeNone), "Tax treatment")
	f.StringVar(&c.balance, "balance", "0", "Stored balance (Cash accounts only)")
	f.StringVar(&c.notes, "notes", "", "Free-form notes")
}

func (c *addAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	balance, err := decimal.NewFromString(c.balance)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing balance: %v\n", err)
		return subcommands.ExitUsageError
	}

	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	a, err := svc.AddAccount(moneyapp.Account{
		Name:        c.name,
		Institution: c.institution,
		AccountType: moneyapp.ParseAccountType(c.accountType),
		TaxType:     moneyapp.ParseTaxType(c.taxType),
		Balance:     balance,
		Notes:       c.notes,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created account %q (%s)\n", a.Name, a.ID)
	return subcommands.ExitSuccess
}

// updateAccountCmd holds the flags for the 'update-account' subcommand.
type updateAccountCmd struct {
	id          string
	name        string
	institution string
	accountType string
	taxType     string
	balance     string
	notes       string
}

func (*updateAccountCmd) Name() string     { return "update-account" }
func (*updateAccountCmd) Synopsis() string { return "change fields of an existing account" }
func (*updateAccountCmd) Usage() string {
	return `mna update-account -id <id> [-name <name>] [-balance <amount>] ...

  Updates the given fields of an account; omitted flags leave their fields
  untouched.
`
}

func (c *updateAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id (required)")
	f.StringVar(&c.name, "name", "", "New name")
	f.StringVar(&c.institution, "institution", "", "New institution")
	f.StringVar(&c.accountType, "type", "", "New account type")
	f.StringVar(&c.taxType, "tax", "", "New tax treatment")
	f.StringVar(&c.balance, "balance", "", "New stored balance")
	f.StringVar(&c.notes, "notes", "", "New notes")
}

func (c *updateAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var changes moneyapp.AccountChanges
	if c.name != "" {
		changes.Name = &c.name
	}
	if c.institution != "" {
		changes.Institution = &c.institution
	}
	if c.accountType != "" {
		t := moneyapp.ParseAccountType(c.accountType)
		changes.AccountType = &t
	}
	if c.taxType != "" {
		t := moneyapp.ParseTaxType(c.taxType)
		changes.TaxType = &t
	}
	if c.balance != "" {
		balance, err := decimal.NewFromString(c.balance)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing balance: %v\n", err)
			return subcommands.ExitUsageError
		}
		changes.Balance = &balance
	}
	if c.notes != "" {
		changes.Notes = &c.notes
	}

	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	a, err := svc.UpdateAccount(c.id, changes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated account %q\n", a.Name)
	return subcommands.ExitSuccess
}

// deleteAccountCmd holds the flags for the 'delete-account' subcommand.
type deleteAccountCmd struct {
	id string
}

func (*deleteAccountCmd) Name() string     { return "delete-account" }
func (*deleteAccountCmd) Synopsis() string { return "delete an account and its holdings" }
func (*deleteAccountCmd) Usage() string {
	return `mna delete-account -id <id>

  Deletes the account and every holding attributed to it.
`
}

func (c *deleteAccountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Account id (required)")
}

func (c *deleteAccountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	if !svc.DeleteAccount(c.id) {
		fmt.Fprintf(os.Stderr, "No account with id %q\n", c.id)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted account %s\n", c.id)
	return subcommands.ExitSuccess
}
