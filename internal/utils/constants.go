package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

const (
	// ApplicationName is the command name and the stem of the configuration files.
	ApplicationName = "flatcode"
	// DefaultOutputFileName is the aggregate artifact written when no name is given.
	DefaultOutputFileName = "full_project_source.txt"
	// ConfigFileName is the name of the global configuration file.
	ConfigFileName = "config.yaml"
	// LocalConfigFileName is the name of the configuration file in the working directory.
	LocalConfigFileName = "." + ApplicationName + ".yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = "." + ApplicationName
	// LockFileSuffix is appended to the output path to name its advisory lock.
	LockFileSuffix = ".lock"
)

// LoggerInitializationFailedMessageFormat reports a failure to build the zap logger.
const LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes fatal errors returned by the CLI.
const ApplicationExecutionFailedMessage = "flatcode failed"
