package managers

import (
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

const goModuleFileName = "go.mod"

type goModuleManager struct {
	*toolManager
}

// DescribeProject returns the module path declared by go.mod.
func (manager goModuleManager) DescribeProject(workingDirectory string) (string, bool) {
	moduleFilePath := filepath.Join(workingDirectory, goModuleFileName)
	content, readError := manager.fileSystem.ReadFile(moduleFilePath)
	if readError != nil {
		return "", false
	}

	moduleFile, parseError := modfile.ParseLax(moduleFilePath, content, nil)
	if parseError != nil || moduleFile.Module == nil {
		return "", false
	}

	modulePath := strings.TrimSpace(moduleFile.Module.Mod.Path)
	if len(modulePath) == 0 {
		return "", false
	}
	return modulePath, true
}

func newManager(definition Definition, dependencies ProbeDependencies) Manager {
	base := newToolManager(definition, dependencies)
	if definition.Identifier == IdentifierGo {
		return goModuleManager{toolManager: base}
	}
	return base
}
