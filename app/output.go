package app

import (
	"encoding/json"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/momentum/internal/config"
)

// printStructured writes v as JSON or YAML when one of the output flags is
// set. It reports whether anything was written.
func printStructured(ctx *cli.Context, v any) (bool, error) {
	switch {
	case ctx.Bool("json"):
		enc := json.NewEncoder(config.Stdout)
		enc.SetIndent("", "  ")

		return true, enc.Encode(v)
	case ctx.Bool("yaml"):
		enc := yaml.NewEncoder(config.Stdout)
		enc.SetIndent(2)

		if err := enc.Encode(v); err != nil {
			return true, err
		}

		return true, enc.Close()
	}

	return false, nil
}
