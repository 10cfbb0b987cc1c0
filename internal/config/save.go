package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ionut-t/lineedit/internal/log"
)

const templateHeader = `# lineedit configuration
#
# Geometry is measured in terminal cells. left_padding is the gutter width
# reserved for line numbers; overscan is the number of extra lines rendered
# above and below the viewport.
#
# Colors are hex strings understood by lipgloss.
`

// DefaultConfigTemplate returns Defaults() encoded as commented YAML.
func DefaultConfigTemplate() (string, error) {
	var buf bytes.Buffer
	buf.WriteString(templateHeader)

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(Defaults()); err != nil {
		return "", fmt.Errorf("encoding defaults: %w", err)
	}
	_ = encoder.Close()

	return buf.String(), nil
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	template, err := DefaultConfigTemplate()
	if err != nil {
		return err
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(template), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
