package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunParseReportsErrorsOnBadFile(t *testing.T) {
	parseJSON = false
	parseUnitsFile = ""
	err := runParse(parseCmd, []string{filepath.Join(t.TempDir(), "missing.cook")})
	require.Error(t, err)
}

func TestRunParseSucceedsOnValidRecipe(t *testing.T) {
	parseJSON = false
	parseUnitsFile = ""
	dir := t.TempDir()
	path := filepath.Join(dir, "recipe.cook")
	require.NoError(t, os.WriteFile(path, []byte("@salt{1%tsp}\n"), 0o644))

	err := runParse(parseCmd, []string{path})
	require.NoError(t, err)
}
