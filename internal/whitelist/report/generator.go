// Package report renders approval-run reports as YAML artifacts.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/diamond-ops/diamondctl/internal/logger"
	"gopkg.in/yaml.v3"
)

type Generator struct {
	logger *slog.Logger
}

func NewGenerator() *Generator {
	return &Generator{
		logger: logger.Named("report_generator"),
	}
}

// Generate writes the report model to path.
func (g *Generator) Generate(path string, model *Model) error {
	data, err := yaml.Marshal(model)
	if err != nil {
		return fmt.Errorf("could not marshal report model: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create report directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("could not write report file: %w", err)
	}

	g.logger.With("path", path).Info("approval report written")

	return nil
}
