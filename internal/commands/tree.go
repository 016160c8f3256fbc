package commands

import (
	"aimd/internal/scan"
)

// RenderTree validates targetFolderPath and returns its rendered markdown
// tree fragment without writing anything.
func RenderTree(targetFolderPath string, ignorePatterns []string) (string, error) {
	absoluteTargetPath, validationError := validateTargetFolder(targetFolderPath)
	if validationError != nil {
		return "", validationError
	}
	treeRenderer := scan.NewTreeRenderer(ignorePatterns)
	return treeRenderer.Render(absoluteTargetPath)
}
