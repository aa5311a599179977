package vocabulary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vulture/pkg/config"
)

func TestNew(t *testing.T) {
	v, err := New([]string{" gme", "AMC", "DD", "OR", ""}, []string{"dd", "OR", "CAN"})
	require.NoError(t, err)

	assert.Equal(t, 4, v.Size())
	assert.True(t, v.Contains("GME"))
	assert.True(t, v.Contains("gme"))
	assert.False(t, v.Contains("TSLA"))

	assert.True(t, v.IsAmbiguous("DD"))
	assert.True(t, v.IsAmbiguous("or"))
	assert.False(t, v.IsAmbiguous("CAN"), "ambiguous entries outside the vocabulary are ignored")
	assert.False(t, v.IsAmbiguous("GME"))
	assert.Equal(t, []string{"DD", "OR"}, v.Ambiguous())
}

func TestNew_Empty(t *testing.T) {
	_, err := New([]string{" ", ""}, []string{"DD"})
	assert.True(t, errors.Is(err, ErrEmptyVocabulary))
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{
			name: "nasdaq listing with header",
			data: "Symbol,Security Name\nAAPL,Apple Inc.\nGME,GameStop Corp.\n",
			want: []string{"AAPL", "GME"},
		},
		{
			name: "single column without header",
			data: "TSLA\nAMC\n\n",
			want: []string{"TSLA", "AMC"},
		},
		{
			name: "empty",
			data: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(strings.NewReader(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_AllSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "listed.csv"), []byte("Symbol,Name\nNVDA,Nvidia\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.csv"), []byte("SPY\n"), 0o644))
	yamlPath := filepath.Join(dir, "vocabulary.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
symbols: [GME, DD]
symbols_file: listed.csv
ambiguous: [DD]
`), 0o644))

	v, err := Load(config.VocabularyConfig{
		File:        yamlPath,
		SymbolsFile: filepath.Join(dir, "extra.csv"),
		Symbols:     []string{"AMC", "OR"},
		Ambiguous:   []string{"OR"},
	})
	require.NoError(t, err)

	for _, s := range []string{"GME", "DD", "NVDA", "SPY", "AMC", "OR"} {
		assert.True(t, v.Contains(s), "expected %s in vocabulary", s)
	}
	assert.True(t, v.IsAmbiguous("DD"))
	assert.False(t, v.IsAmbiguous("OR"), "file ambiguous list overrides the configured one")
}

func TestLoad_InlineOnly(t *testing.T) {
	v, err := Load(config.VocabularyConfig{
		Symbols:   []string{"GME", "OR"},
		Ambiguous: config.DefaultAmbiguousSymbols,
	})
	require.NoError(t, err)
	assert.True(t, v.IsAmbiguous("OR"))
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load(config.VocabularyConfig{})
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestLoadFile_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("symbolz: [GME]\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}
