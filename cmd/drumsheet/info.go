package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/bethropolis/drumsheet/internal/core"
	"github.com/bethropolis/drumsheet/internal/sheet"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Prints a summary of a sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := core.NewStore()
		if err := store.LoadFile(args[0]); err != nil {
			return err
		}
		sh := store.Sheet()
		st := store.Stats()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Title:\t%s\n", sh.Title)
		if sh.Artist != "" {
			fmt.Fprintf(w, "Artist:\t%s\n", sh.Artist)
		}
		fmt.Fprintf(w, "Tempo:\t%d bpm\n", sh.Tempo)
		fmt.Fprintf(w, "Measures:\t%d\n", st.Measures)
		fmt.Fprintf(w, "Sections:\t%d\n", st.Sections)
		fmt.Fprintf(w, "Notes:\t%d\n", st.Notes)
		fmt.Fprintf(w, "Rests:\t%d\n", st.Rests)
		for _, p := range sheet.Parts {
			if n := st.PerPart[p]; n > 0 {
				fmt.Fprintf(w, "  %s:\t%d\n", p, n)
			}
		}
		return w.Flush()
	},
}
