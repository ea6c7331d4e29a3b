package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cooklang/cooklang"
	"github.com/cooklang/cooklang/extensions"
	"github.com/cooklang/cooklang/unitsconfig"
)

var (
	parseJSON      bool
	parseUnitsFile string
)

var parseCmd = &cobra.Command{
	Use:   "parse <recipe-file>",
	Short: "Parse and display a Cooklang recipe",
	Long: `Parse a Cooklang recipe file and display its resolved model.

The parse command runs the full pipeline (lex, parse, analyze) and
displays:
  - Recipe metadata
  - Ingredients with quantities, units and references
  - Cookware
  - Timers
  - Step-by-step instructions

Examples:
  cook parse recipe.cook
  cook parse recipe.cook --json
  cook parse recipe.cook --units units.toml`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeCookFiles,
	RunE:              runParse,
}

func init() {
	parseCmd.Flags().BoolVarP(&parseJSON, "json", "j", false, "output the resolved model as JSON")
	parseCmd.Flags().StringVar(&parseUnitsFile, "units", "", "path to a units.toml registry (enables unit-aware checks)")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	opts := cooklang.Options{Extensions: extensions.All()}
	if parseUnitsFile != "" {
		reg, err := unitsconfig.Load(parseUnitsFile)
		if err != nil {
			return fmt.Errorf("loading units registry: %w", err)
		}
		opts.Registry = reg
	}

	result, _ := cooklang.ParseAndAnalyze(string(content), opts)

	if parseJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Content)
	}

	displayRecipe(filename, result)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %v\n", w)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %v\n", e)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d error(s) found in %s", len(result.Errors), filename)
	}
	return nil
}
