package managers

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FileSystem exposes the read-only filesystem queries needed by manager probes.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// ExecutableResolver locates executables on the search path.
type ExecutableResolver interface {
	LookPath(executable string) (string, error)
}

// OSFileSystem implements FileSystem with the os package.
type OSFileSystem struct{}

// Stat delegates to os.Stat.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile delegates to os.ReadFile.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// OSExecutableResolver implements ExecutableResolver with exec.LookPath.
type OSExecutableResolver struct{}

// LookPath delegates to exec.LookPath.
func (OSExecutableResolver) LookPath(executable string) (string, error) {
	return exec.LookPath(executable)
}

// CommandTable maps verbs to literal command lines.
type CommandTable map[Verb]string

// Clone returns an independent copy of the table.
func (table CommandTable) Clone() CommandTable {
	cloned := make(CommandTable, len(table))
	for verb, commandLine := range table {
		cloned[verb] = commandLine
	}
	return cloned
}

// Definition is the static description of a manager.
type Definition struct {
	Identifier       Identifier
	MarkerFiles      []string
	Executable       string
	InstallReference string
	Commands         CommandTable
}

// Clone returns a deep copy of the definition.
func (definition Definition) Clone() Definition {
	cloned := definition
	cloned.MarkerFiles = append([]string(nil), definition.MarkerFiles...)
	cloned.Commands = definition.Commands.Clone()
	return cloned
}

// MarkerLabel renders the marker files for diagnostics, e.g. "build.gradle / build.gradle.kts".
func (definition Definition) MarkerLabel() string {
	return strings.Join(definition.MarkerFiles, " / ")
}

// Manager is the capability every registered tool exposes: detection, invokability, and verb resolution.
type Manager interface {
	Identifier() Identifier
	Definition() Definition
	Detected(workingDirectory string) bool
	Invokable() bool
	Command(verb Verb) (string, bool)
}

// ProjectDescriber is implemented by managers able to name the project they govern.
type ProjectDescriber interface {
	DescribeProject(workingDirectory string) (string, bool)
}

// ProbeDependencies supplies the collaborators used by manager probes.
type ProbeDependencies struct {
	FileSystem         FileSystem
	ExecutableResolver ExecutableResolver
}

func (dependencies ProbeDependencies) sanitize() ProbeDependencies {
	if dependencies.FileSystem == nil {
		dependencies.FileSystem = OSFileSystem{}
	}
	if dependencies.ExecutableResolver == nil {
		dependencies.ExecutableResolver = OSExecutableResolver{}
	}
	return dependencies
}

type toolManager struct {
	definition         Definition
	fileSystem         FileSystem
	executableResolver ExecutableResolver
}

func newToolManager(definition Definition, dependencies ProbeDependencies) *toolManager {
	sanitized := dependencies.sanitize()
	return &toolManager{
		definition:         definition.Clone(),
		fileSystem:         sanitized.FileSystem,
		executableResolver: sanitized.ExecutableResolver,
	}
}

func (manager *toolManager) Identifier() Identifier {
	return manager.definition.Identifier
}

func (manager *toolManager) Definition() Definition {
	return manager.definition.Clone()
}

// Detected reports whether any marker file sits directly under the working directory.
func (manager *toolManager) Detected(workingDirectory string) bool {
	for _, markerFile := range manager.definition.MarkerFiles {
		fileInfo, statError := manager.fileSystem.Stat(filepath.Join(workingDirectory, markerFile))
		if statError != nil || fileInfo == nil {
			continue
		}
		if fileInfo.IsDir() {
			continue
		}
		return true
	}
	return false
}

func (manager *toolManager) Invokable() bool {
	executable := strings.TrimSpace(manager.definition.Executable)
	if len(executable) == 0 {
		return false
	}
	resolvedPath, lookupError := manager.executableResolver.LookPath(executable)
	return lookupError == nil && len(resolvedPath) > 0
}

func (manager *toolManager) Command(verb Verb) (string, bool) {
	commandLine, exists := manager.definition.Commands[verb]
	if !exists {
		return "", false
	}
	trimmed := strings.TrimSpace(commandLine)
	if len(trimmed) == 0 {
		return "", false
	}
	return trimmed, true
}
