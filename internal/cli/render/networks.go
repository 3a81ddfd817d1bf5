package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// Render renders the list of networks
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"", "Network", "Chain ID", "Kind", "Status"})

	for _, network := range result.Networks {
		marker := ""
		if network.Selected {
			marker = color.GreenString("*")
		}
		kind := "remote"
		if network.Local {
			kind = "local"
		}

		chainID := "-"
		status := color.GreenString("✅ ok")
		if network.Error != nil {
			status = color.RedString("❌ %v", network.Error)
		} else {
			chainID = fmt.Sprintf("%d", network.ChainID)
		}

		t.AppendRow(table.Row{marker, network.Name, chainID, Title(kind), status})
	}

	fmt.Fprintln(r.out, t.Render())
	return nil
}
