package render

import (
	"fmt"
	"io"
	"math/big"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
)

// GasReportRenderer renders the gas spent by a command
type GasReportRenderer struct {
	out io.Writer
}

// NewGasReportRenderer creates a new gas report renderer
func NewGasReportRenderer(out io.Writer) *GasReportRenderer {
	return &GasReportRenderer{out: out}
}

// Render prints one row per transaction and a total. Nothing is printed
// when the gas reporter is disabled.
func (r *GasReportRenderer) Render(entries []models.GasEntry) error {
	if len(entries) == 0 {
		return nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle("Gas Report")
	t.AppendHeader(table.Row{"Contract", "Method", "Gas Used", "Gas Price (gwei)", "Cost (native)"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	var totalGas uint64
	totalCost := new(big.Int)
	for _, entry := range entries {
		cost := entry.Cost()
		totalGas += entry.GasUsed
		totalCost.Add(totalCost, cost)
		t.AppendRow(table.Row{
			entry.Contract,
			entry.Method,
			entry.GasUsed,
			formatUnits(entry.GasPrice, 9),
			formatUnits(cost, 18),
		})
	}
	t.AppendFooter(table.Row{"Total", "", totalGas, "", formatUnits(totalCost, 18)})

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, t.Render())
	return nil
}
