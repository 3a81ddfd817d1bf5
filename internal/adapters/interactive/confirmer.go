package interactive

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/tablelandnetwork/tabdeploy/internal/domain/config"
	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
)

// ConfirmerAdapter asks yes/no questions on the terminal
type ConfirmerAdapter struct {
	config     *config.RuntimeConfig
	run        func(prompt *promptui.Prompt) (string, error)
	isTerminal func() bool
}

// NewConfirmerAdapter creates a new confirmer adapter
func NewConfirmerAdapter(cfg *config.RuntimeConfig) *ConfirmerAdapter {
	return &ConfirmerAdapter{
		config: cfg,
		run:    func(p *promptui.Prompt) (string, error) { return p.Run() },
		isTerminal: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
}

// Confirm asks the user to confirm prompt. Non-interactive runs, and runs
// whose stdin is not a terminal (CI, pipes), never prompt and are treated
// as confirmed.
func (c *ConfirmerAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if c.config.NonInteractive || !c.isTerminal() {
		return true, nil
	}

	p := &promptui.Prompt{
		Label:     color.New(color.FgYellow, color.Bold).Sprint(prompt),
		IsConfirm: true,
	}

	_, err := c.run(p)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort), errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, nil
	default:
		return false, fmt.Errorf("prompt failed: %w", err)
	}
}

// Ensure the adapter implements the interface
var _ usecase.Confirmer = (*ConfirmerAdapter)(nil)
