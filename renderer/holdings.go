package renderer

import (
	"bytes"
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/abduladil415/moneyapp2"
)

func HoldingsMarkdown(r *moneyapp.HoldingsReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")
	if f := filterCaption(r.Filter); f != "" {
		doc.PlainText(f)
	}
	if len(r.Holdings) == 0 {
		doc.PlainText("No holdings match.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Ticker", "Name", "Class", "Bucket", "Quantity", "Price", "Value", "Gain", "Weight"},
	}
	for _, h := range r.Holdings {
		bucket := h.StrategyBucket
		if bucket == "" {
			bucket = moneyapp.UnspecifiedBucket
		}
		// gain/loss is undefined without a cost basis, not zero
		gain := "-"
		if g, ok := h.GainLoss(); ok {
			gain = moneyapp.M(g, h.Currency).SignedString()
		}
		table.Rows = append(table.Rows, []string{
			h.Ticker,
			h.Name,
			string(h.AssetClass),
			bucket,
			h.Quantity.String(),
			moneyapp.M(h.Price, h.Currency).String(),
			moneyapp.M(h.MarketValue, h.Currency).String(),
			gain,
			h.Weight.String(),
		})
	}
	doc.Table(table)
	doc.PlainText("Listed value: " + moneyapp.M(r.Total, "").String())

	return doc.String()
}

func filterCaption(f moneyapp.HoldingFilter) string {
	var parts []string
	if f.AssetClass != "" {
		parts = append(parts, fmt.Sprintf("class=%s", f.AssetClass))
	}
	if f.Bucket != "" {
		parts = append(parts, fmt.Sprintf("bucket=%s", f.Bucket))
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.Search))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Filtered: " + strings.Join(parts, ", ")
}
