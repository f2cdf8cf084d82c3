package main

import (
	"fmt"

	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/bethropolis/drumsheet/internal/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file> [out.mid]",
	Short: "Exports a sheet as a MIDI file",
	Long: `Exports a sheet as a Standard MIDI File on the General MIDI drum channel.
Without an output path the sheet's path with a .mid extension is used.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := core.NewStore()
		if err := store.LoadFile(args[0]); err != nil {
			return err
		}
		out := core.ExportPath(args[0], midi.FileExtension)
		if len(args) > 1 {
			out = args[1]
		}
		if err := midi.ExportFile(out, store.Sheet(), cfg.MIDIOptions()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", out)
		return nil
	},
}
