package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List configured datasets and verify their schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := initLoader()
		if err != nil {
			return eris.Wrap(err, "init loader")
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATASET\tROWS\tSTATUS")

		failed := false
		for _, name := range loader.Names() {
			status := "ok"
			if err := loader.Verify(name); err != nil {
				status = err.Error()
				failed = true
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", name, loader.Load(name).Len(), status)
		}
		if err := w.Flush(); err != nil {
			return eris.Wrap(err, "flush output")
		}

		if failed {
			return eris.New("one or more datasets failed verification")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
}
