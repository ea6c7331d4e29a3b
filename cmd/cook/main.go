package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cook",
	Short: "Parse and inspect Cooklang recipe files",
	Long: `cook parses Cooklang recipe files and reports the resolved recipe model:
ingredients, cookware, timers and steps, with references resolved and
modifiers inherited.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
