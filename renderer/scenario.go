package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"

	"github.com/abduladil415/moneyapp2"
)

func ScenarioMarkdown(r *moneyapp.ScenarioReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("What-If Scenario")
	summary := md.TableSet{
		Header: []string{"", "Value"},
		Rows: [][]string{
			{"Current net worth", moneyapp.M(r.NetWorth, "").String()},
			{"Scenario net worth", moneyapp.M(r.ScenarioNetWorth, "").String()},
			{"Delta", moneyapp.M(r.Delta, "").SignedString()},
			{"Cash (unchanged)", moneyapp.M(r.CashTotal, "").String()},
		},
	}
	doc.Table(summary)

	if len(r.Holdings) > 0 {
		doc.H2("Projected Holdings")
		table := md.TableSet{
			Header: []string{"Ticker", "Price", "Scenario Price", "Scenario Value"},
		}
		for _, h := range r.Holdings {
			table.Rows = append(table.Rows, []string{
				h.Ticker,
				moneyapp.M(h.Price, h.Currency).String(),
				moneyapp.M(h.ScenarioPrice, h.Currency).String(),
				moneyapp.M(h.ScenarioValue, h.Currency).String(),
			})
		}
		doc.Table(table)
	}

	if len(r.Allocation) > 0 {
		doc.H2("Scenario Allocation")
		doc.Table(allocationTable(r.Allocation))
	}

	return doc.String()
}
