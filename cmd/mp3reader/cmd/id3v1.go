package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DefineID3v1Command returns the id3v1 subcommand.
func DefineID3v1Command(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "id3v1 <file.mp3>",
		Short: "Print the ID3v1 trailer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.open(cmd, args[0])
			if err != nil {
				return err
			}
			defer r.Close()

			tag, err := r.ID3v1()
			if err != nil {
				if isAbsent(err) {
					return fmt.Errorf("%s: no ID3v1 tag: %w", args[0], err)
				}
				return err
			}

			rep := newID3v1Report(tag)
			if g.output == "json" {
				return writeJSON(cmd.OutOrStdout(), rep)
			}
			return writeFileReport(cmd.OutOrStdout(), g.output, &fileReport{Path: r.Path, Size: r.Size, ID3v1: rep})
		},
	}
}
