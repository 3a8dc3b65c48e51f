package tools

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/tmazur/album-archiver/internal/scan"
)

// mkvinfo diagnostic patterns. These are the only two facts read from
// its free-text output.
var (
	samplingRe = regexp.MustCompile(`Sampling frequency: (\d+)`)
	channelsRe = regexp.MustCompile(`Channels: (\d+)`)
)

// SampleRate reads the audio sample rate of a container via mkvinfo.
// Exactly one "Sampling frequency:" line must be present.
func (t *Toolchain) SampleRate(ctx context.Context, path string) (int, error) {
	stdout, _, err := run(ctx, "mkvinfo", t.mkvinfo, path)
	if err != nil {
		return 0, err
	}
	rate, err := scan.Int(bytes.NewReader(stdout), samplingRe)
	if err != nil {
		return 0, fmt.Errorf("sample rate of %s: %w", path, err)
	}
	return rate, nil
}

// Channels reads the audio channel count of a container via mkvinfo.
func (t *Toolchain) Channels(ctx context.Context, path string) (int, error) {
	stdout, _, err := run(ctx, "mkvinfo", t.mkvinfo, path)
	if err != nil {
		return 0, err
	}
	n, err := scan.Int(bytes.NewReader(stdout), channelsRe)
	if err != nil {
		return 0, fmt.Errorf("channel count of %s: %w", path, err)
	}
	return n, nil
}

// ExtractChapters writes the container's chapter XML to dest.
func (t *Toolchain) ExtractChapters(ctx context.Context, source, dest string) error {
	_, _, err := run(ctx, "mkvextract chapters", t.mkvextract, source, "chapters", dest)
	return err
}

// ExtractTags writes the container's tag XML to dest.
func (t *Toolchain) ExtractTags(ctx context.Context, source, dest string) error {
	_, _, err := run(ctx, "mkvextract tags", t.mkvextract, source, "tags", dest)
	return err
}

// ExtractAttachment writes attachment id (1-based) to dest. The cover
// image is attached first, so it is always id 1.
func (t *Toolchain) ExtractAttachment(ctx context.Context, source string, id int, dest string) error {
	_, _, err := run(ctx, "mkvextract attachments", t.mkvextract,
		source, "attachments", fmt.Sprintf("%d:%s", id, dest))
	return err
}

// ExtractTrack writes track id (0-based) to dest.
func (t *Toolchain) ExtractTrack(ctx context.Context, source string, id int, dest string) error {
	_, _, err := run(ctx, "mkvextract tracks", t.mkvextract,
		source, "tracks", fmt.Sprintf("%d:%s", id, dest))
	return err
}

// MuxParams names the inputs of the final multiplex step.
type MuxParams struct {
	Output       string
	Title        string
	StreamPath   string
	CoverPath    string
	TagsPath     string
	ChaptersPath string
}

// coverAttachmentName and coverMIMEType are the fixed attachment
// identity of the album cover inside every archive.
const (
	coverAttachmentName = "cover.jpg"
	coverMIMEType       = "image/jpeg"
)

func muxArgs(p MuxParams) []string {
	return []string{
		"-o", p.Output,
		"--title", p.Title,
		"--chapters", p.ChaptersPath,
		"--global-tags", p.TagsPath,
		"--attachment-name", coverAttachmentName,
		"--attachment-mime-type", coverMIMEType,
		"--attach-file", p.CoverPath,
		"--disable-track-statistics-tags",
		p.StreamPath,
	}
}

// Mux combines the lossless stream, cover, tags and chapters into the
// output container. Per-track statistics tags are disabled so the tag
// set stays exactly what the run serialized.
func (t *Toolchain) Mux(ctx context.Context, p MuxParams) error {
	slog.Info("muxing archive", "output", p.Output, "title", p.Title)
	_, _, err := run(ctx, "mkvmerge", t.mkvmerge, muxArgs(p)...)
	return err
}
