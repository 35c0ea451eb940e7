package scirnap

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/scirnap/internal/version"
	"github.com/arthur-debert/scirnap/pkg/config"
	"github.com/arthur-debert/scirnap/pkg/errors"
	"github.com/arthur-debert/scirnap/pkg/logging"
	"github.com/arthur-debert/scirnap/pkg/style"
)

// globalOptions are the flags shared by every command
type globalOptions struct {
	verbosity  int
	configFile string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(runEnv{})
}

func newRootCmd(env runEnv) *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "scirnap",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetHelpCommandGroupID("misc")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRunCmd(opts, env))
	rootCmd.AddCommand(newToolsCmd())
	rootCmd.AddCommand(newSummariseCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// loadConfig merges every configuration source with the given overrides
func (o *globalOptions) loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	return config.Load(config.LoadOptions{
		File:      o.configFile,
		Overrides: overrides,
	})
}

// printer styles messages for cmd's output when stdout is a terminal
func printer(cmd *cobra.Command) *style.Printer {
	if cmd.OutOrStdout() != os.Stdout {
		return style.NewPlainPrinter(true)
	}
	return style.NewPrinter(os.Stdout)
}

// say renders markup and writes it to cmd's output
func say(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintln(cmd.OutOrStdout(), printer(cmd).Sprint(fmt.Sprintf(format, args...)))
}
