package config

import (
	"os"
	"path/filepath"
	"testing"

	"aimd/internal/utils"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

// TestLoadApplicationConfigurationMergesSources verifies that a local
// configuration overrides the global one field by field.
func TestLoadApplicationConfigurationMergesSources(testingHandle *testing.T) {
	homeDirectory := testingHandle.TempDir()
	workingDirectory := testingHandle.TempDir()
	testingHandle.Setenv("HOME", homeDirectory)

	globalConfigDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
	if makeDirError := os.MkdirAll(globalConfigDirectory, 0o755); makeDirError != nil {
		testingHandle.Fatalf("create config dir: %v", makeDirError)
	}
	globalContent := "generate:\n  extensions: [ts, html]\n  clipboard: true\n  tokens:\n    model: global-model\n"
	if writeError := os.WriteFile(filepath.Join(globalConfigDirectory, utils.ConfigFileName), []byte(globalContent), 0o600); writeError != nil {
		testingHandle.Fatalf("write global config: %v", writeError)
	}
	localContent := "generate:\n  extensions: [go, md, go]\n  clipboard: false\n  tokens:\n    enabled: true\n  paths:\n    exclude: [vendor/]\n"
	if writeError := os.WriteFile(filepath.Join(workingDirectory, utils.ConfigFileName), []byte(localContent), 0o600); writeError != nil {
		testingHandle.Fatalf("write local config: %v", writeError)
	}

	loadedConfiguration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testingHandle.Fatalf("load error: %v", loadError)
	}

	generateConfiguration := loadedConfiguration.Generate
	if len(generateConfiguration.Extensions) != 2 || generateConfiguration.Extensions[0] != "go" || generateConfiguration.Extensions[1] != "md" {
		testingHandle.Fatalf("local extensions did not override and deduplicate: %v", generateConfiguration.Extensions)
	}
	if generateConfiguration.Clipboard == nil || *generateConfiguration.Clipboard {
		testingHandle.Fatalf("local clipboard override not applied: %+v", generateConfiguration.Clipboard)
	}
	if generateConfiguration.Tokens.Enabled == nil || !*generateConfiguration.Tokens.Enabled {
		testingHandle.Fatalf("token enablement not merged")
	}
	if generateConfiguration.Tokens.Model != "global-model" {
		testingHandle.Fatalf("global token model lost in merge: %q", generateConfiguration.Tokens.Model)
	}
	if len(generateConfiguration.Paths.Exclude) != 1 || generateConfiguration.Paths.Exclude[0] != "vendor/" {
		testingHandle.Fatalf("path exclusions not merged: %v", generateConfiguration.Paths.Exclude)
	}
}

// TestLoadApplicationConfigurationMissingFiles verifies that absent
// configuration files yield the zero configuration without error.
func TestLoadApplicationConfigurationMissingFiles(testingHandle *testing.T) {
	testingHandle.Setenv("HOME", testingHandle.TempDir())
	workingDirectory := testingHandle.TempDir()

	loadedConfiguration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		testingHandle.Fatalf("load error: %v", loadError)
	}
	if len(loadedConfiguration.Generate.Extensions) != 0 || loadedConfiguration.Generate.Clipboard != nil {
		testingHandle.Fatalf("expected zero configuration, got %+v", loadedConfiguration)
	}
}

// TestMergeOverridePointerSemantics verifies that merge clones pointer
// fields instead of sharing them.
func TestMergeOverridePointerSemantics(testingHandle *testing.T) {
	overrideClipboard := boolPointer(true)
	override := ApplicationConfiguration{Generate: GenerateConfiguration{Clipboard: overrideClipboard}}

	merged := ApplicationConfiguration{}.Merge(override)
	if merged.Generate.Clipboard == nil || !*merged.Generate.Clipboard {
		testingHandle.Fatalf("override clipboard not applied")
	}
	*overrideClipboard = false
	if !*merged.Generate.Clipboard {
		testingHandle.Fatalf("merged configuration shares pointer with override")
	}
}
