package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var errNoPicture = errors.New("no picture")

// DefinePictureCommand returns the picture subcommand.
func DefinePictureCommand(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "picture <file.mp3> <dest>",
		Short: "Extract the attached picture",
		Long: `The 'picture' command writes the image data of the last APIC frame to dest.
Use '-' as dest to write to standard output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPicture(cmd, g, args[0], args[1])
		},
	}
	return cmd
}

func runPicture(cmd *cobra.Command, g *globalFlags, path, dest string) error {
	r, err := g.open(cmd, path)
	if err != nil {
		return err
	}
	defer r.Close()

	pic := r.Metadata().Picture
	if pic == nil {
		return fmt.Errorf("%s: %w", path, errNoPicture)
	}
	data, err := pic.Data()
	if err != nil {
		return err
	}

	if dest == "-" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write picture: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%s)\n", dest, pic)
	return nil
}
