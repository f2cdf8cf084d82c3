package main

import (
	"fmt"
	"io"

	"github.com/bethropolis/drumsheet/internal/config"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flags    config.Flags
	cfg      *config.Config
	logClose io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "drumsheet [file]",
	Short: "Terminal editor for drum sheets",
	Long: `drumsheet edits drum notation in the terminal. Sheets are saved as JSON
and can be exported to Standard MIDI Files.`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logClose != nil {
			_ = logClose.Close()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) > 0 {
			path = args[0]
		}
		return runEditor(path)
	},
}

func init() {
	flags.Define(rootCmd.PersistentFlags())
}

// setup loads the configuration and starts logging for every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flags.ConfigFilePath, &flags)
	if err != nil {
		// The config is still usable, only report the problem.
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	logClose, err = logger.Setup(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logger.Debugf("Config loaded: steps=%d history=%d theme=%q",
		cfg.Editor.StepsPerBeat, cfg.History.MaxEntries, cfg.Editor.Theme)
	return nil
}

// Execute runs the root command.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
