package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"github.com/abduladil415/moneyapp2"
)

func AccountsMarkdown(r *moneyapp.AccountsReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Accounts")
	if len(r.Accounts) == 0 {
		doc.PlainText("No accounts yet.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Name", "Institution", "Type", "Tax", "Balance"},
	}
	for _, a := range r.Accounts {
		table.Rows = append(table.Rows, []string{
			a.Name,
			a.Institution,
			string(a.AccountType),
			string(a.TaxType),
			moneyapp.M(a.Balance, "").String(),
		})
	}
	doc.Table(table)
	doc.PlainText("Total: " + moneyapp.M(r.Total, "").String())

	return doc.String()
}
