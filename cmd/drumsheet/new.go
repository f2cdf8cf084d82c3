package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/spf13/cobra"
)

var newOpts struct {
	title string
	tempo int
	beats int
	value int
	force bool
}

func init() {
	newCmd.Flags().StringVar(&newOpts.title, "title", "", "Sheet title (default from config)")
	newCmd.Flags().IntVar(&newOpts.tempo, "tempo", 0, "Tempo in beats per minute (default from config)")
	newCmd.Flags().IntVar(&newOpts.beats, "beats", 0, "Beats per measure (default from config)")
	newCmd.Flags().IntVar(&newOpts.value, "note-value", 0, "Note value of one beat (default from config)")
	newCmd.Flags().BoolVarP(&newOpts.force, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Creates an empty sheet",
	Long:  `Creates a sheet with one empty measure and writes it as JSON.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil && !newOpts.force {
			return fmt.Errorf("'%s' already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts := cfg.SheetOptions()
		if newOpts.title != "" {
			opts.Title = newOpts.title
		}
		if newOpts.tempo > 0 {
			opts.Tempo = newOpts.tempo
		}
		if newOpts.beats > 0 {
			opts.TimeSignature.Beats = newOpts.beats
		}
		if newOpts.value > 0 {
			opts.TimeSignature.NoteValue = newOpts.value
		}

		store := core.NewStore(core.WithDefaults(opts))
		if err := store.SaveFile(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}
