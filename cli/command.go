package cli

import (
	"github.com/icdeck/icdeck/config"
	"github.com/icdeck/icdeck/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds the flags shared by every icdeck command.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
}

// NewStandardCommand creates a command with the standard icdeck flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to the projects file")

	SetStyledHelp(cmd)

	return cmd
}

// GetLogger returns the icdeck logger adjusted for the command's flags.
// Logs never go to stdout.
func GetLogger(cmd *cobra.Command) *logrus.Logger {
	logger := logging.NewLogger("icdeck").Logger

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// GetOptions extracts the standard flags from cmd.
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
	}
}

// LoadConfig loads the projects file named by --config, or the one found
// on the default search path.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.LoadWithLogger(GetOptions(cmd).ConfigFile, GetLogger(cmd))
}
