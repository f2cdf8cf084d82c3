package main

import (
	"fmt"

	"github.com/bethropolis/drumsheet/internal/app"
	"github.com/bethropolis/drumsheet/internal/logger"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Opens a sheet in the editor",
	Long:  `Opens a sheet in the editor. A file that does not exist yet is created on the first save.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditor(args[0])
	},
}

func runEditor(path string) error {
	logger.Infof("Starting drumsheet editor...")
	if path != "" {
		logger.Debugf("File path specified: %s", path)
	}

	editor, err := app.NewApp(cfg, path)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		return fmt.Errorf("start editor: %w", err)
	}
	if err := editor.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return err
	}

	logger.Infof("drumsheet editor finished.")
	return nil
}
