// Package config loads flag defaults from a TOML file.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is read when present; kong expands the home directory
const DefaultPath = "~/.config/thumbgrid/config.toml"

// TOML returns a kong resolver backed by a TOML document. Keys are flag names with
// dashes replaced by underscores. A table named after the selected command overrides
// top-level keys, for example:
//
//	log_level = "debug"
//
//	[process]
//	frames = 12
//	no_progress = true
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	var resolver kong.ResolverFunc = func(kctx *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		key := strings.ReplaceAll(flag.Name, "-", "_")

		if node := kctx.Selected(); node != nil {
			if table, ok := values[node.Name].(map[string]any); ok {
				if v, ok := table[key]; ok {
					return flagValue(v), nil
				}
			}
		}

		v, ok := values[key]
		if !ok {
			return nil, nil
		}
		if _, isTable := v.(map[string]any); isTable {
			return nil, nil
		}
		return flagValue(v), nil
	}
	return resolver, nil
}

// flagValue hands numbers to kong as text so they go through the regular flag mappers
func flagValue(v any) any {
	switch v := v.(type) {
	case int64, float64:
		return fmt.Sprint(v)
	default:
		return v
	}
}
