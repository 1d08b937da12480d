package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tyemirov/tk/internal/dispatch"
	"github.com/tyemirov/tk/internal/execshell"
	"github.com/tyemirov/tk/internal/managers"
	"github.com/tyemirov/tk/internal/utils"
	flagutils "github.com/tyemirov/tk/internal/utils/flags"
	"github.com/tyemirov/tk/internal/version"
	"github.com/tyemirov/tk/pkg/taskrunner"
)

const (
	applicationNameConstant                                          = "tk"
	applicationUsageConstant                                         = applicationNameConstant + " [<manager>] <verb> [arguments...] [-- arguments...]"
	applicationShortDescriptionConstant                              = "Run build and package tasks with whichever tools govern the project"
	applicationLongDescriptionConstant                               = "tk detects the build and package managers of the current project by their marker files and runs the command each one maps to the requested verb.\n\nVerbs: %s\nManagers: %s"
	applicationExampleConstant                                       = "  tk build\n  tk npm test -- --watch\n  tk -C services/api go test ./..."
	configFileFlagNameConstant                                       = "config"
	configFileFlagUsageConstant                                      = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                                         = "log-level"
	logLevelFlagUsageConstant                                        = "Override the configured log level."
	logFormatFlagNameConstant                                        = "log-format"
	logFormatFlagUsageConstant                                       = "Override the configured log format (structured or console)."
	configurationInitializationFlagNameConstant                      = "init"
	configurationInitializationFlagUsageConstant                     = "Write the embedded default configuration to local (./config.yaml) or user ($HOME/.tk/config.yaml) scope."
	configurationInitializationDefaultScopeConstant                  = "local"
	configurationInitializationForceFlagNameConstant                 = "force"
	configurationInitializationForceFlagUsageConstant                = "Overwrite an existing configuration file when initializing."
	configurationInitializationScopeLocalConstant                    = "local"
	configurationInitializationScopeUserConstant                     = "user"
	configurationInitializationUnsupportedScopeTemplateConstant      = "unsupported initialization scope %q"
	configurationInitializationWorkingDirectoryErrorTemplateConstant = "unable to determine working directory: %w"
	configurationInitializationHomeDirectoryErrorTemplateConstant    = "unable to determine user home directory: %w"
	configurationInitializationContentUnavailableErrorConstant       = "embedded configuration content is unavailable"
	configurationInitializationDirectoryErrorTemplateConstant        = "unable to ensure configuration directory %s: %w"
	configurationInitializationExistingFileTemplateConstant          = "configuration file already exists at %s (use --force to overwrite)"
	configurationInitializationExistingDirectoryTemplateConstant     = "configuration path %s is a directory"
	configurationInitializationDirectoryConflictTemplateConstant     = "configuration directory path %s is not a directory"
	configurationInitializationWriteErrorTemplateConstant            = "unable to write configuration file %s: %w"
	configurationInitializationSuccessMessageConstant                = "configuration file created"
	commonConfigurationKeyConstant                                   = "common"
	commonLogLevelConfigKeyConstant                                  = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant                                 = commonConfigurationKeyConstant + ".log_format"
	commonVerboseConfigKeyConstant                                   = commonConfigurationKeyConstant + ".verbose"
	environmentPrefixConstant                                        = "TK"
	configurationNameConstant                                        = "config"
	configurationTypeConstant                                        = "yaml"
	configurationFileNameConstant                                    = configurationNameConstant + "." + configurationTypeConstant
	configurationDirectoryPermissionConstant                         = 0o755
	configurationFilePermissionConstant                              = 0o600
	configurationInitializedMessageConstant                          = "configuration initialized"
	configurationLogLevelFieldConstant                               = "log_level"
	configurationLogFormatFieldConstant                              = "log_format"
	configurationFileFieldConstant                                   = "config_file"
	xdgConfigHomeEnvironmentVariableConstant                         = "XDG_CONFIG_HOME"
	configurationLoadErrorTemplateConstant                           = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant                              = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant                                  = "unable to flush logger: %w"
	configurationInitializedConsoleTemplateConstant                  = "%s | log level=%s | log format=%s | config file=%s"
	dispatchRequestedMessageConstant                                 = "dispatch requested"
	logFieldManagerConstant                                          = "manager"
	logFieldVerbConstant                                             = "verb"
	logFieldArgumentsConstant                                        = "arguments"
	logFieldWorkingDirectoryConstant                                 = "working_directory"
	loggerNotInitializedMessageConstant                              = "logger not initialized"
	defaultConfigurationSearchPathConstant                           = "."
	userConfigurationDirectoryNameConstant                           = ".tk"
	xdgConfigurationDirectoryNameConstant                            = "tk"
	configurationSearchPathEnvironmentVariableConstant               = "TK_CONFIG_SEARCH_PATH"
	missingVerbErrorTemplateConstant                                 = "missing verb for manager %s"
	unknownVerbOrManagerErrorTemplateConstant                        = "unknown verb or manager %q"
	unknownVerbErrorTemplateConstant                                 = "unknown verb %q"
	dependenciesErrorTemplateConstant                                = "unable to prepare task dispatch: %w"
	listSeparatorConstant                                            = ", "
	argumentSeparatorConstant                                        = "--"
)

var errMissingVerb = errors.New("missing verb")

type loggerOutputsFactory interface {
	CreateLoggerOutputs(utils.LogLevel, utils.LogFormat) (utils.LoggerOutputs, error)
}

type configurationInitializationPlan struct {
	DirectoryPath string
	FilePath      string
}

// Application wires configuration, logging, and the task runner into a cobra command tree.
type Application struct {
	rootCommand                       *cobra.Command
	configurationLoader               *utils.ConfigurationLoader
	loggerFactory                     loggerOutputsFactory
	logger                            *zap.Logger
	consoleLogger                     *zap.Logger
	configuration                     ApplicationConfiguration
	configurationMetadata             utils.LoadedConfiguration
	configurationFilePath             string
	logLevelFlagValue                 string
	logFormatFlagValue                string
	commandContextAccessor            utils.CommandContextAccessor
	directoryFlagValues               *flagutils.DirectoryFlagValues
	configurationInitializationScope  string
	configurationInitializationForced bool
	probeDependencies                 managers.ProbeDependencies
	runnerFactory                     taskrunner.Factory
	commandRunner                     execshell.CommandRunner
	versionResolver                   func(context.Context) string
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	application := &Application{
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		consoleLogger:          zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}
	application.versionResolver = application.resolveVersion

	application.configurationLoader = utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		application.resolveConfigurationSearchPaths(),
	)

	embeddedConfigurationData, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	application.configurationLoader.SetEmbeddedConfiguration(embeddedConfigurationData, embeddedConfigurationType)

	cobraCommand := &cobra.Command{
		Use:           applicationUsageConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          fmt.Sprintf(applicationLongDescriptionConstant, strings.Join(managers.KnownVerbNames(), listSeparatorConstant), strings.Join(identifierNames(managers.KnownIdentifiers()), listSeparatorConstant)),
		Example:       applicationExampleConstant,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	cobraCommand.Flags().StringVar(
		&application.configurationInitializationScope,
		configurationInitializationFlagNameConstant,
		configurationInitializationDefaultScopeConstant,
		configurationInitializationFlagUsageConstant,
	)
	cobraCommand.Flags().Lookup(configurationInitializationFlagNameConstant).NoOptDefVal = configurationInitializationDefaultScopeConstant
	cobraCommand.Flags().BoolVar(
		&application.configurationInitializationForced,
		configurationInitializationForceFlagNameConstant,
		false,
		configurationInitializationForceFlagUsageConstant,
	)

	application.directoryFlagValues = flagutils.BindDirectoryFlag(
		cobraCommand,
		flagutils.DirectoryFlagValues{},
		flagutils.DirectoryFlagDefinition{
			Name:       flagutils.DirectoryFlagName,
			Shorthand:  flagutils.DirectoryFlagShorthand,
			Usage:      flagutils.DirectoryFlagUsage,
			Enabled:    true,
			Persistent: true,
		},
	)

	flagutils.BindExecutionFlags(
		cobraCommand,
		flagutils.ExecutionDefaults{},
		flagutils.ExecutionFlagDefinitions{
			Verbose: flagutils.ExecutionFlagDefinition{
				Name:      flagutils.VerboseFlagName,
				Usage:     flagutils.VerboseFlagUsage,
				Shorthand: flagutils.VerboseFlagShorthand,
				Enabled:   true,
			},
		},
	)

	application.registerCommands(cobraCommand)
	application.rootCommand = cobraCommand

	return application
}

// Execute runs the root command against the process arguments.
func (application *Application) Execute() error {
	return application.executeArguments(os.Args[1:])
}

func (application *Application) executeArguments(arguments []string) error {
	application.rootCommand.SetArgs(normalizeInitializationScopeArguments(arguments))

	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a new application and runs it.
func Execute() error {
	return NewApplication().Execute()
}

// normalizeInitializationScopeArguments joins "--init <scope>" into "--init=<scope>" so the optional flag value is not read as a verb.
func normalizeInitializationScopeArguments(arguments []string) []string {
	flagName := "--" + configurationInitializationFlagNameConstant
	normalizedArguments := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == argumentSeparatorConstant {
			return append(normalizedArguments, arguments[index:]...)
		}
		if currentArgument == flagName && index+1 < len(arguments) && isInitializationScope(arguments[index+1]) {
			currentArgument = flagName + "=" + arguments[index+1]
			index++
		}
		normalizedArguments = append(normalizedArguments, currentArgument)
	}
	return normalizedArguments
}

func isInitializationScope(candidate string) bool {
	normalized := strings.ToLower(strings.TrimSpace(candidate))
	return normalized == configurationInitializationScopeLocalConstant || normalized == configurationInitializationScopeUserConstant
}

func (application *Application) resolveConfigurationSearchPaths() []string {
	overrideValue := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentVariableConstant))
	if len(overrideValue) == 0 {
		defaultSearchPaths := []string{defaultConfigurationSearchPathConstant}
		return append(defaultSearchPaths, application.resolveUserConfigurationDirectoryPaths()...)
	}

	overridePaths := strings.FieldsFunc(overrideValue, func(candidate rune) bool {
		return candidate == os.PathListSeparator
	})

	cleanedPaths := make([]string, 0, len(overridePaths))
	for _, pathCandidate := range overridePaths {
		trimmedCandidate := strings.TrimSpace(pathCandidate)
		if len(trimmedCandidate) == 0 {
			continue
		}
		cleanedPaths = append(cleanedPaths, trimmedCandidate)
	}

	if len(cleanedPaths) == 0 {
		return []string{defaultConfigurationSearchPathConstant}
	}

	return cleanedPaths
}

func (application *Application) resolveUserConfigurationDirectoryPaths() []string {
	userConfigurationDirectoryPaths := make([]string, 0, 3)

	appendConfigurationDirectory := func(candidateDirectoryPath string) {
		for _, existingDirectoryPath := range userConfigurationDirectoryPaths {
			if existingDirectoryPath == candidateDirectoryPath {
				return
			}
		}
		userConfigurationDirectoryPaths = append(userConfigurationDirectoryPaths, candidateDirectoryPath)
	}

	if xdgConfigHome := strings.TrimSpace(os.Getenv(xdgConfigHomeEnvironmentVariableConstant)); len(xdgConfigHome) > 0 {
		appendConfigurationDirectory(filepath.Join(xdgConfigHome, xdgConfigurationDirectoryNameConstant))
	}

	if userConfigurationBaseDirectoryPath, userConfigurationDirectoryError := os.UserConfigDir(); userConfigurationDirectoryError == nil && len(strings.TrimSpace(userConfigurationBaseDirectoryPath)) > 0 {
		appendConfigurationDirectory(filepath.Join(userConfigurationBaseDirectoryPath, xdgConfigurationDirectoryNameConstant))
	}

	if userHomeDirectoryPath, userHomeDirectoryError := os.UserHomeDir(); userHomeDirectoryError == nil && len(strings.TrimSpace(userHomeDirectoryPath)) > 0 {
		appendConfigurationDirectory(filepath.Join(userHomeDirectoryPath, userConfigurationDirectoryNameConstant))
	}

	return userConfigurationDirectoryPaths
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelError),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
		commonVerboseConfigKeyConstant:   false,
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configurationMetadata = loadedConfiguration

	if command.Flags().Changed(logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if command.Flags().Changed(logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger
	if application.logger == nil {
		application.logger = zap.NewNop()
	}

	application.consoleLogger = loggerOutputs.ConsoleLogger
	if application.consoleLogger == nil {
		application.consoleLogger = zap.NewNop()
	}

	application.logConfigurationInitialization()

	updatedContext := application.commandContextAccessor.WithExecutionFlags(command.Context(), application.collectExecutionFlags(command))
	if application.directoryFlagValues != nil {
		updatedContext = application.commandContextAccessor.WithWorkingDirectory(updatedContext, application.directoryFlagValues.Directory)
	}

	command.SetContext(updatedContext)
	if rootCommand := command.Root(); rootCommand != nil {
		rootCommand.SetContext(updatedContext)
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) logConfigurationInitialization() {
	if !strings.EqualFold(strings.TrimSpace(application.configuration.Common.LogLevel), string(utils.LogLevelDebug)) {
		return
	}

	if application.humanReadableLoggingEnabled() {
		bannerMessage := fmt.Sprintf(
			configurationInitializedConsoleTemplateConstant,
			configurationInitializedMessageConstant,
			application.configuration.Common.LogLevel,
			application.configuration.Common.LogFormat,
			application.configurationMetadata.ConfigFileUsed,
		)
		application.consoleLogger.Debug(bannerMessage)
		return
	}

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)
}

// collectExecutionFlags merges the verbose flag over the configured default.
func (application *Application) collectExecutionFlags(command *cobra.Command) utils.ExecutionFlags {
	executionFlags := flagutils.CollectExecutionFlags(command)
	if !executionFlags.VerboseSet {
		executionFlags.Verbose = application.configuration.Common.Verbose
	}
	return executionFlags
}

func (application *Application) resolveVersion(executionContext context.Context) string {
	dependencies := version.Dependencies{}
	shellExecutor, executorError := execshell.NewShellExecutor(application.logger, execshell.NewOSCommandRunner(), application.humanReadableLoggingEnabled())
	if executorError == nil {
		dependencies.CommandExecutor = shellExecutor
	}

	resolved := version.Detect(executionContext, dependencies)
	trimmed := strings.TrimSpace(resolved)
	if len(trimmed) == 0 {
		return resolved
	}
	return trimmed
}

func (application *Application) workingDirectory(command *cobra.Command) string {
	if command != nil {
		if workingDirectory, available := application.commandContextAccessor.WorkingDirectory(command.Context()); available {
			return workingDirectory
		}
	}
	if application.directoryFlagValues != nil {
		return strings.TrimSpace(application.directoryFlagValues.Directory)
	}
	return ""
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	initializationHandled, initializationError := application.handleConfigurationInitialization(command)
	if initializationError != nil {
		return initializationError
	}
	if initializationHandled {
		return nil
	}

	request, parseError := parseDispatchArguments(arguments, command.ArgsLenAtDash())
	if errors.Is(parseError, errMissingVerb) && len(arguments) == 0 {
		return command.Help()
	}
	if parseError != nil {
		return parseError
	}

	executionFlags, _ := flagutils.ResolveExecutionFlags(command)
	request.Verbose = executionFlags.Verbose

	return application.runDispatch(command, request)
}

func (application *Application) runDispatch(command *cobra.Command, request dispatch.Request) error {
	registry, registryError := application.configuration.BuildRegistry(application.probeDependencies)
	if registryError != nil {
		return registryError
	}

	dependencies, dependenciesError := taskrunner.BuildDependencies(
		taskrunner.DependenciesConfig{
			LoggerProvider: func() *zap.Logger {
				return application.logger
			},
			HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
			Registry:                     registry,
			CommandRunner:                application.commandRunner,
		},
		taskrunner.DependenciesOptions{
			Command:          command,
			WorkingDirectory: application.workingDirectory(command),
		},
	)
	if dependenciesError != nil {
		return fmt.Errorf(dependenciesErrorTemplateConstant, dependenciesError)
	}

	application.logger.Info(
		dispatchRequestedMessageConstant,
		zap.String(logFieldManagerConstant, request.Manager.String()),
		zap.String(logFieldVerbConstant, request.Verb.String()),
		zap.Strings(logFieldArgumentsConstant, request.ExtraArguments),
		zap.String(logFieldWorkingDirectoryConstant, dependencies.WorkingDirectory),
	)

	executor := taskrunner.Resolve(application.runnerFactory, dependencies.Runner)
	outcome, runError := executor.Run(command.Context(), request)
	if runError != nil {
		return runError
	}
	return outcome.Err()
}

// parseDispatchArguments reads `[<manager>] <verb> [extra...]`. Arguments after the dash separator are always extra.
func parseDispatchArguments(arguments []string, dashIndex int) (dispatch.Request, error) {
	leading := arguments
	var trailing []string
	if dashIndex >= 0 && dashIndex <= len(arguments) {
		leading = arguments[:dashIndex]
		trailing = arguments[dashIndex:]
	}

	if len(leading) == 0 {
		return dispatch.Request{}, errMissingVerb
	}

	request := dispatch.Request{}
	position := 0
	if verb, knownVerb := managers.ParseVerb(leading[position]); knownVerb {
		request.Verb = verb
	} else if identifier, knownIdentifier := managers.ParseIdentifier(leading[position]); knownIdentifier {
		request.Manager = identifier
		position++
		if position >= len(leading) {
			return dispatch.Request{}, fmt.Errorf(missingVerbErrorTemplateConstant, identifier)
		}
		verb, knownVerb := managers.ParseVerb(leading[position])
		if !knownVerb {
			return dispatch.Request{}, fmt.Errorf(unknownVerbErrorTemplateConstant, leading[position])
		}
		request.Verb = verb
	} else {
		return dispatch.Request{}, fmt.Errorf(unknownVerbOrManagerErrorTemplateConstant, leading[position])
	}

	extraArguments := append([]string{}, leading[position+1:]...)
	extraArguments = append(extraArguments, trailing...)
	if len(extraArguments) > 0 {
		request.ExtraArguments = extraArguments
	}
	return request, nil
}

func identifierNames(identifiers []managers.Identifier) []string {
	names := make([]string, 0, len(identifiers))
	for _, identifier := range identifiers {
		names = append(names, identifier.String())
	}
	return names
}

func localInitializationDirectory(directory string) (string, error) {
	if len(directory) == 0 {
		return os.Getwd()
	}
	return filepath.Abs(directory)
}

func (application *Application) handleConfigurationInitialization(command *cobra.Command) (bool, error) {
	if command == nil || !command.Flags().Changed(configurationInitializationFlagNameConstant) {
		return false, nil
	}

	initializationScope := strings.TrimSpace(application.configurationInitializationScope)
	if len(initializationScope) == 0 {
		initializationScope = configurationInitializationDefaultScopeConstant
	}

	initializationPlan, planError := application.resolveConfigurationInitializationPlan(command, initializationScope)
	if planError != nil {
		return true, planError
	}

	configurationContent, _ := EmbeddedDefaultConfiguration()
	if len(configurationContent) == 0 {
		return true, errors.New(configurationInitializationContentUnavailableErrorConstant)
	}

	if writeError := application.writeConfigurationFile(initializationPlan, configurationContent); writeError != nil {
		return true, writeError
	}

	application.logger.Info(
		configurationInitializationSuccessMessageConstant,
		zap.String(configurationFileFieldConstant, initializationPlan.FilePath),
	)

	return true, nil
}

func (application *Application) resolveConfigurationInitializationPlan(command *cobra.Command, initializationScope string) (configurationInitializationPlan, error) {
	switch strings.ToLower(strings.TrimSpace(initializationScope)) {
	case "", configurationInitializationScopeLocalConstant:
		workingDirectoryPath, workingDirectoryError := localInitializationDirectory(application.workingDirectory(command))
		if workingDirectoryError != nil {
			return configurationInitializationPlan{}, fmt.Errorf(configurationInitializationWorkingDirectoryErrorTemplateConstant, workingDirectoryError)
		}
		return configurationInitializationPlan{
			DirectoryPath: workingDirectoryPath,
			FilePath:      filepath.Join(workingDirectoryPath, configurationFileNameConstant),
		}, nil
	case configurationInitializationScopeUserConstant:
		userHomeDirectoryPath, userHomeDirectoryError := os.UserHomeDir()
		if userHomeDirectoryError != nil {
			return configurationInitializationPlan{}, fmt.Errorf(configurationInitializationHomeDirectoryErrorTemplateConstant, userHomeDirectoryError)
		}
		configurationDirectoryPath := filepath.Join(userHomeDirectoryPath, userConfigurationDirectoryNameConstant)
		return configurationInitializationPlan{
			DirectoryPath: configurationDirectoryPath,
			FilePath:      filepath.Join(configurationDirectoryPath, configurationFileNameConstant),
		}, nil
	default:
		return configurationInitializationPlan{}, fmt.Errorf(configurationInitializationUnsupportedScopeTemplateConstant, strings.TrimSpace(initializationScope))
	}
}

func (application *Application) writeConfigurationFile(initializationPlan configurationInitializationPlan, configurationContent []byte) error {
	directoryPath := strings.TrimSpace(initializationPlan.DirectoryPath)

	directoryInfo, directoryStatError := os.Stat(directoryPath)
	switch {
	case directoryStatError == nil:
		if !directoryInfo.IsDir() {
			return fmt.Errorf(configurationInitializationDirectoryConflictTemplateConstant, directoryPath)
		}
	case errors.Is(directoryStatError, os.ErrNotExist):
		if createError := os.MkdirAll(directoryPath, configurationDirectoryPermissionConstant); createError != nil {
			return fmt.Errorf(configurationInitializationDirectoryErrorTemplateConstant, directoryPath, createError)
		}
	default:
		return fmt.Errorf(configurationInitializationDirectoryErrorTemplateConstant, directoryPath, directoryStatError)
	}

	fileInfo, fileStatError := os.Stat(initializationPlan.FilePath)
	switch {
	case fileStatError == nil:
		if fileInfo.IsDir() {
			return fmt.Errorf(configurationInitializationExistingDirectoryTemplateConstant, initializationPlan.FilePath)
		}
		if !application.configurationInitializationForced {
			return fmt.Errorf(configurationInitializationExistingFileTemplateConstant, initializationPlan.FilePath)
		}
	case errors.Is(fileStatError, os.ErrNotExist):
	default:
		return fmt.Errorf(configurationInitializationWriteErrorTemplateConstant, initializationPlan.FilePath, fileStatError)
	}

	if writeError := os.WriteFile(initializationPlan.FilePath, configurationContent, configurationFilePermissionConstant); writeError != nil {
		return fmt.Errorf(configurationInitializationWriteErrorTemplateConstant, initializationPlan.FilePath, writeError)
	}

	return nil
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return application.syncLoggerInstance(application.consoleLogger)
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.EBADF):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}
