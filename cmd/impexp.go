package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a full backup of all data" }
func (*exportCmd) Usage() string {
	return `mna export [-o <file>]

  Writes accounts, holdings, snapshots and settings as a single JSON
  document, to stdout or to a file.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Destination file (defaults to stdout)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	payload, err := svc.ExportData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting data: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output == "" {
		fmt.Println(string(payload))
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.output, payload, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported to %s\n", c.output)
	return subcommands.ExitSuccess
}

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	input string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "restore data from a backup file" }
func (*importCmd) Usage() string {
	return `mna import -i <file>

  Replaces each collection present in the backup wholesale; collections
  absent from the file are left untouched. A malformed file changes
  nothing.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Backup file to import (required)")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "Missing -i <file>.")
		return subcommands.ExitUsageError
	}
	payload, err := os.ReadFile(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", c.input, err)
		return subcommands.ExitFailure
	}

	svc, err := openService()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	if err := svc.ImportData(payload); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", c.input, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %s\n", c.input)
	return subcommands.ExitSuccess
}
