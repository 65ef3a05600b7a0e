package config

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode writes c in the given format, "yaml" or "toml".
func (c *Config) Encode(w io.Writer, format string) error {
	switch format {
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(c)
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalid, format)
	}
}
