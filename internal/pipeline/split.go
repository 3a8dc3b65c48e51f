package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/tmazur/album-archiver/internal/meta"
	"github.com/tmazur/album-archiver/internal/tools"
	"github.com/tmazur/album-archiver/internal/workspace"
)

// Split derives per-track lossy files from an archive: recover cover,
// chapters and tags, cut the lossless stream at chapter boundaries with
// sample-accurate decode spans, and encode each span with its track
// metadata and the shared cover.
func (r *Runner) Split(ctx context.Context, inputPath, outDir string) error {
	runID := uuid.NewString()
	log := slog.With("run", runID, "flow", "split")

	ws, err := workspace.New(runID)
	if err != nil {
		return err
	}
	defer ws.Close()

	rate, err := r.tools.SampleRate(ctx, inputPath)
	if err != nil {
		return err
	}

	chapPath := ws.Path("chapters.xml")
	if err := r.tools.ExtractChapters(ctx, inputPath, chapPath); err != nil {
		return err
	}
	chapData, err := os.ReadFile(chapPath)
	if err != nil {
		return err
	}
	chapters, err := meta.DecodeChaptersXML(chapData, rate)
	if err != nil {
		return err
	}

	tagsPath := ws.Path("tags.xml")
	if err := r.tools.ExtractTags(ctx, inputPath, tagsPath); err != nil {
		return err
	}
	tagData, err := os.ReadFile(tagsPath)
	if err != nil {
		return err
	}
	tags, err := meta.DecodeTagsXML(tagData)
	if err != nil {
		return err
	}

	coverPath := ws.Path("cover.jpg")
	if err := r.tools.ExtractAttachment(ctx, inputPath, 1, coverPath); err != nil {
		return err
	}

	sourcePath := ws.Path("source.flac")
	if err := r.tools.ExtractTrack(ctx, inputPath, 0, sourcePath); err != nil {
		return err
	}
	log.Info("archive unpacked", "tracks", len(chapters.Boundaries), "sample_rate", rate)

	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return err
	}

	bar := progressbar.NewOptions(
		len(chapters.Boundaries),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Encoding tracks...[reset]"),
	)

	for i, b := range chapters.Boundaries {
		if err := r.encodeTrack(ctx, ws, sourcePath, coverPath, outDir, chapters, tags, i); err != nil {
			return fmt.Errorf("track %d (%s): %w", i+1, b.Name, err)
		}
		bar.Add(1)
	}
	fmt.Fprintln(r.out)
	return nil
}

// encodeTrack cuts one chapter span out of the lossless stream and
// encodes it to MP3 with its metadata.
func (r *Runner) encodeTrack(ctx context.Context, ws *workspace.Workspace, sourcePath, coverPath, outDir string, chapters *meta.Chapters, tags *meta.Tags, i int) error {
	b := chapters.Boundaries[i]

	// The last track runs to end of stream.
	until := int64(-1)
	if i+1 < len(chapters.Boundaries) {
		until = chapters.Boundaries[i+1].StartSample
	}

	wavPath := ws.Path(fmt.Sprintf("track%02d.wav", i+1))
	if err := r.tools.DecodeSpan(ctx, sourcePath, wavPath, b.StartSample, until); err != nil {
		return err
	}
	defer os.Remove(wavPath)

	title := b.Name
	partNumber := i + 1
	if tr, ok := tags.TrackByUID(b.UID); ok {
		if tr.Title != "" {
			title = tr.Title
		}
		if tr.PartNumber != 0 {
			partNumber = tr.PartNumber
		}
	}

	outPath := filepath.Join(outDir, fmt.Sprintf("%02d - %s.mp3", partNumber, sanitizeTitle(title)))
	return r.tools.EncodeMP3(ctx, tools.MP3Params{
		Input:      wavPath,
		Output:     outPath,
		Bitrate:    r.cfg.Bitrate,
		Title:      title,
		Artist:     tags.Artist,
		Album:      tags.Title,
		Year:       tags.Year,
		Genre:      tags.Genre,
		TrackNum:   partNumber,
		TrackTotal: tags.TotalParts(),
		CoverPath:  coverPath,
	})
}
