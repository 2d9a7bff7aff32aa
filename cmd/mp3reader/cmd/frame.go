package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	mp3reader "github.com/AliceZed8/mp3-reader"
)

// DefineFrameCommand returns the frame subcommand.
func DefineFrameCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frame <file.mp3>",
		Short: "Decode the first MPEG audio frame header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrame(cmd, g, args[0])
		},
	}
	cmd.Flags().Int("from", -1, "byte offset to start scanning from (-1 to start after the first ID3v2 tag)")
	return cmd
}

func runFrame(cmd *cobra.Command, g *globalFlags, path string) error {
	from, _ := cmd.Flags().GetInt("from")

	r, err := g.open(cmd, path)
	if err != nil {
		return err
	}
	defer r.Close()

	var info *mp3reader.FrameInfo
	if from < 0 {
		info, err = frameAfterTag(r)
	} else {
		info, err = r.FirstFrameFrom(from)
	}
	if err != nil {
		return err
	}
	if info == nil {
		return fmt.Errorf("%s: %w", path, mp3reader.ErrNoValidFrame)
	}

	rep := newFrameReport(info)
	if g.output == "json" {
		return writeJSON(cmd.OutOrStdout(), rep)
	}
	return writeFileReport(cmd.OutOrStdout(), g.output, &fileReport{Path: r.Path, Size: r.Size, Frame: rep})
}

// isAbsent reports whether err means the structure is missing from the file.
func isAbsent(err error) bool {
	return errors.Is(err, mp3reader.ErrNoValidFrame) ||
		errors.Is(err, mp3reader.ErrSignatureMismatch) ||
		errors.Is(err, mp3reader.ErrBufferTooSmall)
}
