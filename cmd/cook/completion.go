package main

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

// completeCookFiles provides shell completion for .cook files
func completeCookFiles(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Look for .cook files matching the partial input
	pattern := toComplete + "*.cook"
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	// Also try directory completion
	if toComplete != "" {
		dirPattern := toComplete + "*"
		dirMatches, _ := filepath.Glob(dirPattern)
		for _, m := range dirMatches {
			// Check if it's a directory
			if info, err := filepath.Glob(m + "/*.cook"); err == nil && len(info) > 0 {
				matches = append(matches, m+"/")
			}
		}
	}

	// If no specific prefix, show all .cook files in current directory
	if len(matches) == 0 && toComplete == "" {
		matches, _ = filepath.Glob("*.cook")
	}

	return matches, cobra.ShellCompDirectiveNoSpace
}
