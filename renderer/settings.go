package renderer

import (
	"bytes"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/abduladil415/moneyapp2"
)

func SettingsMarkdown(s moneyapp.Settings) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Settings")

	doc.H2("Strategy Buckets")
	if len(s.StrategyBuckets) == 0 {
		doc.PlainText("No buckets defined.")
	} else {
		doc.BulletList(s.StrategyBuckets...)
	}

	doc.H2("Charts")
	frames := make([]string, 0, len(s.ChartTimeframes))
	for _, t := range s.ChartTimeframes {
		frames = append(frames, string(t))
	}
	table := md.TableSet{
		Header: []string{"Default Timeframe", "Available"},
		Rows:   [][]string{{string(s.DefaultTimeframe), strings.Join(frames, ", ")}},
	}
	doc.Table(table)

	return doc.String()
}
