package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// AccountsRenderer renders account lists
type AccountsRenderer struct {
	out io.Writer
}

// NewAccountsRenderer creates a new accounts renderer
func NewAccountsRenderer(out io.Writer) *AccountsRenderer {
	return &AccountsRenderer{out: out}
}

// Render prints one address per line, signers first
func (r *AccountsRenderer) Render(result *usecase.ListAccountsResult) error {
	if len(result.Accounts) == 0 {
		fmt.Fprintf(r.out, "No accounts available on %s\n", result.Network)
		renderWarnings(r.out, result.Warnings)
		return nil
	}

	for _, account := range result.Accounts {
		source := color.New(color.Faint).Sprintf("(%s)", account.Source)
		fmt.Fprintf(r.out, "%s %s\n", account.Address.Hex(), source)
	}

	renderWarnings(r.out, result.Warnings)
	return nil
}
