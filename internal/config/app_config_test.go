package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyemirov/flatcode/internal/utils"
)

type configTestCase struct {
	name             string
	globalContent    string
	localContent     string
	explicitPath     string
	explicitContent  string
	expectOutput     string
	expectFormat     string
	expectClipboard  *bool
	expectTokens     *bool
	expectModel      string
	expectExtensions []string
	expectIgnoreDirs []string
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:             "local_overrides_global",
			globalContent:    "format: json\nclipboard: true\ntokens:\n  enabled: true\n  model: gpt-4\npaths:\n  allowed_extensions: [.go]\n",
			localContent:     "format: xml\nclipboard: false\npaths:\n  allowed_extensions: [.ts, .tsx]\n",
			expectFormat:     "xml",
			expectClipboard:  boolPointer(false),
			expectTokens:     boolPointer(true),
			expectModel:      "gpt-4",
			expectExtensions: []string{".ts", ".tsx"},
		},
		{
			name:             "global_only",
			globalContent:    "output: dump.txt\npaths:\n  ignore_directories:\n    - vendor\n",
			expectOutput:     "dump.txt",
			expectIgnoreDirs: []string{"vendor"},
		},
		{
			name:            "explicit_path_replaces_local",
			localContent:    "format: xml\n",
			explicitPath:    "custom.yaml",
			explicitContent: "format: json\n",
			expectFormat:    "json",
		},
		{
			name: "nothing_configured",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			require.NoError(t, os.MkdirAll(configDir, 0o755))
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.ConfigFileName)
				require.NoError(t, os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600))
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
				require.NoError(t, os.WriteFile(localPath, []byte(testCase.localContent), 0o600))
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				require.NoError(t, os.WriteFile(target, []byte(testCase.explicitContent), 0o600))
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			require.NoError(t, err)

			assert.Equal(t, testCase.expectOutput, loadedConfig.Output)
			assert.Equal(t, testCase.expectFormat, loadedConfig.Format)
			assert.Equal(t, testCase.expectClipboard, loadedConfig.Clipboard)
			assert.Equal(t, testCase.expectTokens, loadedConfig.Tokens.Enabled)
			assert.Equal(t, testCase.expectModel, loadedConfig.Tokens.Model)
			assert.Equal(t, testCase.expectExtensions, loadedConfig.Paths.AllowedExtensions)
			assert.Equal(t, testCase.expectIgnoreDirs, loadedConfig.Paths.IgnoreDirectories)
		})
	}
}

func TestLoadApplicationConfigurationMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "absent.yaml",
	})
	require.Error(t, err)
}

func TestLoadApplicationConfigurationRejectsMalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDir := t.TempDir()
	localPath := filepath.Join(workingDir, utils.LocalConfigFileName)
	require.NoError(t, os.WriteFile(localPath, []byte("format: [unterminated\n"), 0o600))

	_, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir})
	require.Error(t, err)
}

func TestMergeKeepsBaseWhenOverrideUnset(t *testing.T) {
	base := ApplicationConfiguration{
		Format:    "json",
		Clipboard: boolPointer(true),
		Paths:     PathConfiguration{Exclude: []string{"*.test.ts"}},
	}
	merged := base.Merge(ApplicationConfiguration{})

	assert.Equal(t, "json", merged.Format)
	assert.True(t, BoolValue(merged.Clipboard, false))
	assert.Equal(t, []string{"*.test.ts"}, merged.Paths.Exclude)
}

func TestBoolValue(t *testing.T) {
	assert.True(t, BoolValue(nil, true), "nil falls back")
	assert.False(t, BoolValue(boolPointer(false), true), "explicit value wins")
}
