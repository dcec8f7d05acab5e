package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tyemirov/flatcode/internal/collector"
	"github.com/tyemirov/flatcode/internal/tokenizer"
	"github.com/tyemirov/flatcode/internal/types"
	"github.com/tyemirov/flatcode/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	configurationHeader = "# flatcode configuration. Keys left unset fall back to built-in defaults.\n"
	yamlIndentWidth     = 2
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// DefaultConfiguration returns the built-in defaults as a fully populated configuration.
func DefaultConfiguration() ApplicationConfiguration {
	disabled := false
	return ApplicationConfiguration{
		Output:    utils.DefaultOutputFileName,
		Format:    types.FormatRaw,
		Clipboard: &disabled,
		Quiet:     cloneBool(&disabled),
		Tokens: TokenConfiguration{
			Enabled: cloneBool(&disabled),
			Model:   tokenizer.DefaultModel,
		},
		Paths: PathConfiguration{
			IgnoreDirectories: append([]string{}, collector.DefaultIgnoredDirectories...),
			AllowedExtensions: append([]string{}, collector.DefaultAllowedExtensions...),
			IgnoreFiles:       append([]string{}, collector.DefaultIgnoredFiles...),
			Exclude:           []string{},
			UseGitignore:      cloneBool(&disabled),
		},
	}
}

// RenderDefaultConfiguration marshals DefaultConfiguration to YAML.
func RenderDefaultConfiguration() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteString(configurationHeader)
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(yamlIndentWidth)
	if err := encoder.Encode(DefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("render default configuration: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("render default configuration: %w", err)
	}
	return buffer.Bytes(), nil
}

// InitializeConfiguration writes the default configuration to the requested target.
func InitializeConfiguration(options InitOptions) (string, error) {
	target := options.Target
	if target == "" {
		target = InitTargetLocal
	}
	var destinationPath string
	switch target {
	case InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = current
		}
		destinationPath = filepath.Join(workingDirectory, utils.LocalConfigFileName)
	case InitTargetGlobal:
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory for configuration: %w", err)
		}
		configurationDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
		if err := os.MkdirAll(configurationDirectory, 0o755); err != nil {
			return "", fmt.Errorf("create configuration directory %s: %w", configurationDirectory, err)
		}
		destinationPath = filepath.Join(configurationDirectory, utils.ConfigFileName)
	default:
		return "", fmt.Errorf("unsupported init target %q", target)
	}

	if _, err := os.Stat(destinationPath); err == nil {
		if !options.Force {
			return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, err)
	}

	rendered, renderErr := RenderDefaultConfiguration()
	if renderErr != nil {
		return "", renderErr
	}
	if err := os.WriteFile(destinationPath, rendered, 0o600); err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}

	return destinationPath, nil
}
