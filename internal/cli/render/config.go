package render

import (
	"fmt"
	"io"

	"github.com/tablelandnetwork/tabdeploy/internal/usecase"
	"gopkg.in/yaml.v3"
)

// ConfigRenderer renders the resolved configuration as YAML
type ConfigRenderer struct {
	out io.Writer
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer) *ConfigRenderer {
	return &ConfigRenderer{out: out}
}

// Render encodes the configuration view
func (r *ConfigRenderer) Render(view *usecase.ConfigView) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
