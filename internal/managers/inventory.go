package managers

// Status summarizes what a manager looks like from a working directory.
type Status struct {
	Identifier       Identifier `yaml:"manager"`
	MarkerFiles      []string   `yaml:"markers"`
	Executable       string     `yaml:"executable"`
	Detected         bool       `yaml:"detected"`
	Invokable        bool       `yaml:"invokable"`
	InstallReference string     `yaml:"install_reference"`
	Project          string     `yaml:"project,omitempty"`
	Verbs            []Verb     `yaml:"verbs"`
}

// Inventory probes every registered manager against the working directory.
func Inventory(registry *Registry, workingDirectory string) []Status {
	registeredManagers := registry.Managers()
	statuses := make([]Status, 0, len(registeredManagers))
	for _, manager := range registeredManagers {
		definition := manager.Definition()
		status := Status{
			Identifier:       definition.Identifier,
			MarkerFiles:      definition.MarkerFiles,
			Executable:       definition.Executable,
			Detected:         manager.Detected(workingDirectory),
			Invokable:        manager.Invokable(),
			InstallReference: definition.InstallReference,
			Verbs:            supportedVerbs(manager),
		}
		if describer, describable := manager.(ProjectDescriber); describable && status.Detected {
			if project, described := describer.DescribeProject(workingDirectory); described {
				status.Project = project
			}
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func supportedVerbs(manager Manager) []Verb {
	verbs := make([]Verb, 0, len(knownVerbs))
	for _, verb := range knownVerbs {
		if _, supported := manager.Command(verb); supported {
			verbs = append(verbs, verb)
		}
	}
	return verbs
}
