package cmd

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"corpora/pkg/reconcile"
)

// renderRunTable renders the per-file and total counters of a merge
// run as a console table.
func renderRunTable(result *reconcile.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"File", "Kind", "Added", "Updated", "Skipped", "Status"})
	for _, report := range result.Files {
		status := "ok"
		if report.Err != nil {
			status = "failed"
		}
		tw.AppendRow(table.Row{
			report.File,
			report.Kind.String(),
			report.Stats.Added,
			report.Stats.Updated,
			skippedTotal(report.Stats),
			status,
		})
	}
	tw.AppendFooter(table.Row{
		"total (" + strconv.Itoa(len(result.Files)) + " files)",
		"",
		result.Stats.Added,
		result.Stats.Updated,
		skippedTotal(result.Stats),
		"",
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.Render()
}

func skippedTotal(s reconcile.Stats) int {
	return s.SkippedDuplicate + s.SkippedNotFound + s.SkippedAlreadyTranslated + s.SkippedIncomplete
}
