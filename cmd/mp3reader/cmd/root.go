// Package cmd implements the mp3reader command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog/v2"
	"github.com/spf13/cobra"

	mp3reader "github.com/AliceZed8/mp3-reader"
)

// AppName is the command name shown in usage output.
const AppName = "mp3reader"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	scanAll        bool
	unicode        bool
	noMmap         bool
	strict         bool
	maxPictureSize int
	logLevel       string
	output         string
}

// Execute runs the command line against os.Args.
func Execute() error {
	return NewRootCommand(os.Stdout, os.Stderr).Execute()
}

// NewRootCommand builds the command tree writing results to stdout and
// log records to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         AppName + " - MP3 tag and frame header inspector",
		Version:       mp3reader.ReadBuildInfo().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&g.scanAll, "scan-all", false, "accept ID3v2 tags found at any offset")
	flags.BoolVar(&g.unicode, "unicode", false, "decode text frames to full Unicode instead of the ASCII subset")
	flags.BoolVar(&g.noMmap, "no-mmap", false, "read files into memory instead of mapping them")
	flags.BoolVar(&g.strict, "strict", false, "fail on any anomaly instead of warning")
	flags.IntVar(&g.maxPictureSize, "max-picture-size", 0, "skip pictures larger than this many bytes (0 for no limit)")
	flags.StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVarP(&g.output, "output", "o", "text", "output format: text or json")

	rootCmd.AddCommand(
		DefineInfoCommand(g),
		DefineFrameCommand(g),
		DefineID3v1Command(g),
		DefinePictureCommand(g),
	)
	return rootCmd
}

// open opens path with the reader options selected on the command line.
func (g *globalFlags) open(cmd *cobra.Command, path string) (*mp3reader.Reader, error) {
	opts, err := g.readerOptions(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return mp3reader.OpenContext(cmd.Context(), path, opts...)
}

func (g *globalFlags) readerOptions(logOut io.Writer) ([]mp3reader.Option, error) {
	logger, err := newLogger(logOut, g.logLevel)
	if err != nil {
		return nil, err
	}
	if g.output != "text" && g.output != "json" {
		return nil, fmt.Errorf("unknown output format %q", g.output)
	}

	opts := []mp3reader.Option{
		mp3reader.WithLogger(logger),
		mp3reader.WithMaxPictureSize(g.maxPictureSize),
	}
	if g.scanAll {
		opts = append(opts, mp3reader.WithScanMode(mp3reader.ScanAllOffsets))
	}
	if g.unicode {
		opts = append(opts, mp3reader.WithTextMode(mp3reader.TextUnicode))
	}
	if g.noMmap {
		opts = append(opts, mp3reader.WithLoadMode(mp3reader.LoadRead))
	}
	if g.strict {
		opts = append(opts, mp3reader.WithStrictParsing())
	}
	return opts, nil
}

// newLogger returns a slog logger backed by a zerolog console writer.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()
	return slog.New(slogzerolog.Option{Level: lvl, Logger: &zl}.NewZerologHandler()), nil
}
