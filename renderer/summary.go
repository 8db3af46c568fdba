// Package renderer turns report structures into markdown documents, one
// function per view.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"

	"github.com/abduladil415/moneyapp2"
)

func SummaryMarkdown(r *moneyapp.SummaryReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Net Worth on %s", r.Time.Format("2006-01-02")))
	doc.PlainText(moneyapp.M(r.NetWorth, "").String())

	doc.H2("Change")
	changes := md.TableSet{
		Header: []string{"Period", "Change"},
	}
	for _, c := range r.Changes {
		diff := "n/a"
		if c.OK {
			diff = moneyapp.M(c.Diff, "").SignedString()
		}
		changes.Rows = append(changes.Rows, []string{fmt.Sprintf("%dd", c.Days), diff})
	}
	doc.Table(changes)

	doc.H2("Allocation by Asset Class")
	doc.Table(allocationTable(r.ByAssetClass))

	doc.H2("Allocation by Account")
	doc.Table(allocationTable(r.ByAccount))

	doc.H2("Top Holdings")
	top := md.TableSet{
		Header: []string{"Ticker", "Name", "Value", "Weight"},
	}
	for _, h := range r.TopHoldings {
		top.Rows = append(top.Rows, []string{
			h.Ticker,
			h.Name,
			moneyapp.M(h.MarketValue, h.Currency).String(),
			h.Weight.String(),
		})
	}
	doc.Table(top)

	if len(r.Series) > 0 {
		doc.H2("History")
		series := md.TableSet{
			Header: []string{"Date", "Net Worth"},
		}
		for _, p := range r.Series {
			series.Rows = append(series.Rows, []string{
				p.Timestamp.Format("2006-01-02"),
				moneyapp.M(p.NetWorth, "").String(),
			})
		}
		doc.Table(series)
	}

	return doc.String()
}

func allocationTable(rows []moneyapp.AllocationRow) md.TableSet {
	table := md.TableSet{
		Header: []string{"Group", "Value", "Weight"},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			row.Label,
			moneyapp.M(row.Value, "").String(),
			row.Weight.String(),
		})
	}
	return table
}
