package render

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/models"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// DeployRenderer renders the result of a proxy deployment
type DeployRenderer struct {
	out io.Writer
	gas *GasReportRenderer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out, gas: NewGasReportRenderer(out)}
}

// Render prints the proxy and implementation addresses and where the
// proxy was recorded
func (r *DeployRenderer) Render(result *usecase.DeployProxyResult) error {
	deployment := result.Deployment
	fmt.Fprintln(r.out, "proxy deployed to:", color.New(color.FgGreen, color.Bold).Sprint(deployment.Proxy.Hex()), "on", result.Network)
	fmt.Fprintln(r.out, "New implementation address:", result.Implementation.Hex())
	if deployment.ImplementationReused {
		fmt.Fprintln(r.out, color.New(color.Faint).Sprint("(implementation reused from a previous deployment)"))
	}
	fmt.Fprintln(r.out, deployment.Proxy.Hex(), "added")
	fmt.Fprintln(r.out, FormatSuccess("Recorded in "+result.RecordPath))

	return r.gas.Render(result.GasReport)
}

// UpgradeRenderer renders the result of a proxy upgrade
type UpgradeRenderer struct {
	out io.Writer
	gas *GasReportRenderer
}

// NewUpgradeRenderer creates a new upgrade renderer
func NewUpgradeRenderer(out io.Writer) *UpgradeRenderer {
	return &UpgradeRenderer{out: out, gas: NewGasReportRenderer(out)}
}

// Render prints the implementation before and after the upgrade
func (r *UpgradeRenderer) Render(result *usecase.UpgradeProxyResult) error {
	fmt.Fprintf(r.out, "\nUpgrading '%s' proxy...\n", result.Network)
	fmt.Fprintf(r.out, "Using proxy address '%s'\n", result.Proxy.Hex())
	fmt.Fprintln(r.out, "Current implementation address:", result.PreviousImplementation.Hex())
	fmt.Fprintln(r.out, "New implementation address:", result.Implementation.Hex())

	renderWarnings(r.out, result.Warnings)
	return r.gas.Render(result.GasReport)
}

// ProxyRenderer renders a proxy record
type ProxyRenderer struct {
	out io.Writer
}

// NewProxyRenderer creates a new proxy renderer
func NewProxyRenderer(out io.Writer) *ProxyRenderer {
	return &ProxyRenderer{out: out}
}

// Render prints the recorded and configured proxy of a network
func (r *ProxyRenderer) Render(record *models.ProxyRecord) error {
	bold := color.New(color.Bold)
	label := record.Network
	if record.Record != "" {
		label += " (" + record.Record + ")"
	}
	fmt.Fprintf(r.out, "%s %s\n", bold.Sprint("Network:"), label)

	if record.Proxy != (common.Address{}) {
		fmt.Fprintf(r.out, "%s %s\n", bold.Sprint("Proxy:"), color.GreenString(record.Proxy.Hex()))
	} else {
		fmt.Fprintf(r.out, "%s %s\n", bold.Sprint("Proxy:"), color.New(color.Faint).Sprint("(not recorded)"))
	}
	if record.Configured != "" {
		fmt.Fprintf(r.out, "%s %s\n", bold.Sprint("Configured:"), record.Configured)
	}
	if record.Implementation != (common.Address{}) {
		fmt.Fprintf(r.out, "%s %s\n", bold.Sprint("Implementation:"), record.Implementation.Hex())
	}
	return nil
}
