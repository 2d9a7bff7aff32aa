package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	mp3reader "github.com/AliceZed8/mp3-reader"
)

type fileReport struct {
	Path      string            `json:"path"`
	Size      int64             `json:"size"`
	Tags      []string          `json:"tags,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Picture   *pictureReport    `json:"picture,omitempty"`
	Frame     *frameReport      `json:"frame,omitempty"`
	ID3v1     *id3v1Report      `json:"id3v1,omitempty"`
	Anomalies []string          `json:"anomalies,omitempty"`
}

type pictureReport struct {
	MIMEType    string `json:"mime_type"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Size        int    `json:"size"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

type frameReport struct {
	Offset    int           `json:"offset"`
	Header    string        `json:"header"`
	Version   string        `json:"version"`
	Layer     int           `json:"layer"`
	Bitrate   int           `json:"bitrate_kbps"`
	Frequency int           `json:"frequency_hz"`
	Mode      string        `json:"channel_mode"`
	Emphasis  string        `json:"emphasis"`
	FrameSize int           `json:"frame_size"`
	Protected bool          `json:"protected"`
	VBR       bool          `json:"vbr"`
	Frames    uint32        `json:"frames,omitempty"`
	Duration  time.Duration `json:"duration_ns,omitempty"`
}

type id3v1Report struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Album   string `json:"album"`
	Year    string `json:"year"`
	Comment string `json:"comment"`
	Track   int    `json:"track,omitempty"`
	Genre   string `json:"genre,omitempty"`
}

func newFileReport(rep *mp3reader.Report) *fileReport {
	out := &fileReport{
		Path:  rep.Path,
		Size:  rep.Size,
		Frame: newFrameReport(rep.Frame),
		ID3v1: newID3v1Report(rep.ID3v1),
	}
	for _, t := range rep.Tags {
		out.Tags = append(out.Tags, t.String())
	}
	for _, w := range rep.Anomalies {
		out.Anomalies = append(out.Anomalies, w.String())
	}
	if rep.Metadata == nil {
		return out
	}
	for field, value := range rep.Metadata.All() {
		if out.Metadata == nil {
			out.Metadata = make(map[string]string)
		}
		out.Metadata[field.String()] = value
	}
	if p := rep.Metadata.Picture; p != nil {
		out.Picture = &pictureReport{
			MIMEType:    p.MIMEType,
			Type:        p.Type.String(),
			Description: p.Description,
			Size:        p.Size(),
			Width:       p.Width,
			Height:      p.Height,
		}
	}
	return out
}

func newFrameReport(f *mp3reader.FrameInfo) *frameReport {
	if f == nil {
		return nil
	}
	return &frameReport{
		Offset:    f.Offset,
		Header:    fmt.Sprintf("%08X", f.Header),
		Version:   f.VersionName,
		Layer:     f.Layer,
		Bitrate:   f.Bitrate,
		Frequency: f.Frequency,
		Mode:      f.ChannelModeName,
		Emphasis:  f.EmphasisName,
		FrameSize: f.FrameSize,
		Protected: f.Protected,
		VBR:       f.VBR,
		Frames:    f.Frames,
		Duration:  f.Duration,
	}
}

func newID3v1Report(t *mp3reader.ID3v1Tag) *id3v1Report {
	if t == nil {
		return nil
	}
	return &id3v1Report{
		Title:   t.Text(t.Title),
		Artist:  t.Text(t.Artist),
		Album:   t.Text(t.Album),
		Year:    t.Text(t.Year),
		Comment: t.Text(t.Comment),
		Track:   t.Track,
		Genre:   t.Genre(),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFileReport(w io.Writer, format string, rep *fileReport) error {
	if format == "json" {
		return writeJSON(w, rep)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File:\t%s (%d bytes)\n", rep.Path, rep.Size)
	for _, t := range rep.Tags {
		fmt.Fprintf(tw, "Tag:\t%s\n", t)
	}
	for _, name := range []string{"title", "artist", "album", "year", "track", "genre"} {
		if v, ok := rep.Metadata[name]; ok {
			fmt.Fprintf(tw, "%s:\t%s\n", name, v)
		}
	}
	if p := rep.Picture; p != nil {
		fmt.Fprintf(tw, "picture:\t%s %s, %d bytes", p.Type, p.MIMEType, p.Size)
		if p.Width > 0 {
			fmt.Fprintf(tw, ", %dx%d", p.Width, p.Height)
		}
		fmt.Fprintln(tw)
	}
	if f := rep.Frame; f != nil {
		writeFrameRows(tw, f)
	}
	if v1 := rep.ID3v1; v1 != nil {
		writeID3v1Rows(tw, v1)
	}
	for _, a := range rep.Anomalies {
		fmt.Fprintf(tw, "warning:\t%s\n", a)
	}
	return tw.Flush()
}

func writeFrameRows(tw *tabwriter.Writer, f *frameReport) {
	fmt.Fprintf(tw, "frame:\t%s Layer %d at %d (header %s)\n", f.Version, f.Layer, f.Offset, f.Header)
	fmt.Fprintf(tw, "bitrate:\t%d kbps\n", f.Bitrate)
	fmt.Fprintf(tw, "frequency:\t%d Hz\n", f.Frequency)
	fmt.Fprintf(tw, "mode:\t%s\n", f.Mode)
	fmt.Fprintf(tw, "emphasis:\t%s\n", f.Emphasis)
	fmt.Fprintf(tw, "frame size:\t%d bytes\n", f.FrameSize)
	if f.VBR {
		fmt.Fprintf(tw, "vbr:\t%d frames\n", f.Frames)
	}
	if f.Duration > 0 {
		fmt.Fprintf(tw, "duration:\t%s\n", f.Duration.Round(time.Millisecond))
	}
}

func writeID3v1Rows(tw *tabwriter.Writer, t *id3v1Report) {
	fmt.Fprintf(tw, "id3v1 title:\t%s\n", t.Title)
	fmt.Fprintf(tw, "id3v1 artist:\t%s\n", t.Artist)
	fmt.Fprintf(tw, "id3v1 album:\t%s\n", t.Album)
	fmt.Fprintf(tw, "id3v1 year:\t%s\n", t.Year)
	fmt.Fprintf(tw, "id3v1 comment:\t%s\n", t.Comment)
	if t.Track > 0 {
		fmt.Fprintf(tw, "id3v1 track:\t%d\n", t.Track)
	}
	if t.Genre != "" {
		fmt.Fprintf(tw, "id3v1 genre:\t%s\n", t.Genre)
	}
}
