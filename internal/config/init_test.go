package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyemirov/flatcode/internal/collector"
	"github.com/tyemirov/flatcode/internal/tokenizer"
	"github.com/tyemirov/flatcode/internal/utils"
)

func TestRenderDefaultConfigurationStartsWithHeader(t *testing.T) {
	rendered, err := RenderDefaultConfiguration()
	require.NoError(t, err)
	assert.True(t, len(rendered) > len(configurationHeader))
	assert.Equal(t, configurationHeader, string(rendered[:len(configurationHeader)]))
	assert.Contains(t, string(rendered), "allowed_extensions:")
	assert.Contains(t, string(rendered), "model: "+tokenizer.DefaultModel)
}

func TestInitializedLocalConfigurationLoadsBackAsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDirectory := t.TempDir()

	path, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workingDirectory, utils.LocalConfigFileName), path)

	loaded, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	require.NoError(t, err)
	assert.Equal(t, utils.DefaultOutputFileName, loaded.Output)
	assert.Equal(t, collector.DefaultAllowedExtensions, loaded.Paths.AllowedExtensions)
	assert.Equal(t, collector.DefaultIgnoredDirectories, loaded.Paths.IgnoreDirectories)
	assert.Equal(t, collector.DefaultIgnoredFiles, loaded.Paths.IgnoreFiles)
	assert.False(t, BoolValue(loaded.Paths.UseGitignore, true))
	assert.False(t, BoolValue(loaded.Clipboard, true))
}

func TestInitializeGlobalConfigurationCreatesDirectory(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	t.Setenv("USERPROFILE", homeDirectory)

	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName), path)
	assert.FileExists(t, path)
}

func TestInitializeConfigurationOverwriteRequiresForce(t *testing.T) {
	workingDirectory := t.TempDir()
	path := filepath.Join(workingDirectory, utils.LocalConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("format: xml\n"), 0o600))

	_, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal})
	require.Error(t, err)
	kept, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "format: xml\n", string(kept))

	_, err = InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal, Force: true})
	require.NoError(t, err)
	replaced, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.NotEqual(t, "format: xml\n", string(replaced))
}

func TestInitializeConfigurationRejectsUnknownTarget(t *testing.T) {
	_, err := InitializeConfiguration(InitOptions{Target: "remote"})
	assert.Error(t, err)
}
