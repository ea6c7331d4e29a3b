package metadata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeFrontMatter(t *testing.T) {
	source := "title: Pancakes\nservings: 4\ntags:\n  - breakfast\n  - quick\n"
	out, err := DecodeFrontMatter(source)
	require.NoError(t, err)
	require.Equal(t, "Pancakes", out["title"])
	require.Equal(t, "4", out["servings"])
	require.Contains(t, out["tags"], "breakfast")
}

func TestDecodeFrontMatterInvalidYAML(t *testing.T) {
	_, err := DecodeFrontMatter("not: [valid: yaml")
	require.Error(t, err)
}

func TestParseSpecialKey(t *testing.T) {
	tests := []struct {
		key  string
		want SpecialKey
	}{
		{"define", KeyDefineMode},
		{"mode", KeyDefineMode},
		{"duplicate", KeyDuplicateMode},
		{"auto scale", KeyAutoScale},
		{"auto_scale", KeyAutoScale},
		{"title", NotSpecial},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ParseSpecialKey(tt.key))
	}
}

func TestParseDefineMode(t *testing.T) {
	mode, ok := ParseDefineMode("components")
	require.True(t, ok)
	require.Equal(t, DefineComponents, mode)

	_, ok = ParseDefineMode("nonsense")
	require.False(t, ok)
}

func TestParseServings(t *testing.T) {
	servings, err := ParseServings("2|4")
	require.NoError(t, err)
	require.Equal(t, []int{2, 4}, servings)

	_, err = ParseServings("2|-1")
	require.Error(t, err)

	_, err = ParseServings("two")
	require.Error(t, err)
}
