package cmd

import (
	"github.com/spf13/cobra"

	mp3reader "github.com/AliceZed8/mp3-reader"
)

// DefineInfoCommand returns the info subcommand.
func DefineInfoCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.mp3>...",
		Short: "Print tags, the first audio frame and the ID3v1 trailer",
		Long: `The 'info' command decodes the ID3v2 tags, the first MPEG audio frame header
and the ID3v1 trailer of each file. Audio frames are searched after the first
ID3v2 tag.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := runInfo(cmd, g, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func runInfo(cmd *cobra.Command, g *globalFlags, path string) error {
	r, err := g.open(cmd, path)
	if err != nil {
		return err
	}
	defer r.Close()

	rep, err := r.Probe(cmd.Context())
	if err != nil {
		return err
	}
	if tags := rep.Tags; len(tags) > 0 && (rep.Frame == nil || rep.Frame.Offset < tags[0].End()) {
		rep.Frame, err = frameAfterTag(r)
		if err != nil {
			return err
		}
	}
	return writeFileReport(cmd.OutOrStdout(), g.output, newFileReport(rep))
}

// frameAfterTag locates the first audio frame past the first ID3v2 tag.
// It returns nil when there is none.
func frameAfterTag(r *mp3reader.Reader) (*mp3reader.FrameInfo, error) {
	start := 0
	if tags := r.Tags(); len(tags) > 0 {
		start = tags[0].End()
	}
	info, err := r.FirstFrameFrom(start)
	if err != nil {
		if isAbsent(err) {
			return nil, nil
		}
		return nil, err
	}
	return info, nil
}
