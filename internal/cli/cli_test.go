package cli

import (
	"os"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantInput  string
		wantSyntax string
		wantPolicy string
		wantDebug  bool
	}{
		{
			name:       "default flags",
			args:       []string{"prog", "test.json"},
			wantInput:  "test.json",
			wantPolicy: "default",
		},
		{
			name:       "syntax flag",
			args:       []string{"prog", "-syntax", "Intel", "test.json"},
			wantInput:  "test.json",
			wantSyntax: "intel",
			wantPolicy: "default",
		},
		{
			name:       "policy and debug flags",
			args:       []string{"prog", "-policy", "complete", "-debug", "test.json"},
			wantInput:  "test.json",
			wantPolicy: "complete",
			wantDebug:  true,
		},
		{
			name:       "input flag",
			args:       []string{"prog", "-i", "test.json"},
			wantInput:  "test.json",
			wantPolicy: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.wantInput, got.Input)
			assert.Equal(t, tt.wantSyntax, got.Syntax)
			assert.Equal(t, tt.wantPolicy, got.Policy)
			assert.Equal(t, tt.wantDebug, got.Debug)
		})
	}
}

func TestParseFlagsSkipLists(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog",
		"-skip-function", "frame_dummy",
		"-skip-function", "_start",
		"-keep-section", ".got",
		"test.json",
	}

	got, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, []string{"frame_dummy", "_start"}, got.SkipFunctions)
	assert.Equal(t, []string{".got"}, got.KeepSections)
}

func TestValidateArgs(t *testing.T) {
	assert.NoError(t, validateArgs([]string{"test.json"}))
	assert.Error(t, validateArgs([]string{"test.json", "-debug"}))
}
