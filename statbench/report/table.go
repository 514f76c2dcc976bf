// Package report renders benchmark summaries for humans.
package report

import (
	"fmt"
	"io"

	"github.com/ZanzyTHEbar/statbench/statbench/bench"

	"github.com/olekukonko/tablewriter"
)

// Headers of the summary table, in column order.
var Headers = []string{"OP", "PROVIDER", "ROUNDS", "MEAN NS/OP", "STDDEV NS/OP"}

// PrintSummary writes one row per op and provider.
func PrintSummary(w io.Writer, rows []bench.SummaryRow) error {
	if len(rows) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(Headers)

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, row := range rows {
		table.Append([]string{
			string(row.Op),
			row.Provider,
			fmt.Sprintf("%d", row.Rounds),
			fmt.Sprintf("%.1f", row.Mean),
			fmt.Sprintf("%.1f", row.StdDev),
		})
	}

	fmt.Fprintln(w)
	table.Render()
	return nil
}
