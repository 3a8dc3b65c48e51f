package pipeline

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/tmazur/album-archiver/internal/meta"
	"github.com/tmazur/album-archiver/internal/relay"
	"github.com/tmazur/album-archiver/internal/tools"
	"github.com/tmazur/album-archiver/internal/workspace"
)

// ConvertOptions adjusts the re-archival flow. LegacyChaptersPath, when
// set, supplies track boundaries as a legacy CHAPTERnn text file for
// source containers that carry none; that format is only correct for
// 44100 Hz sources.
type ConvertOptions struct {
	LegacyChaptersPath string
}

// Convert re-archives an existing container: probe its stream
// parameters, recover chapters and tags, re-encode the lossless stream
// through a decode|encode relay, and mux a fresh archive from the
// re-serialized metadata.
func (r *Runner) Convert(ctx context.Context, inputPath, coverPath, outputPath string, opts ConvertOptions) error {
	runID := uuid.NewString()
	log := slog.With("run", runID, "flow", "convert")

	ws, err := workspace.New(runID)
	if err != nil {
		return err
	}
	defer ws.Close()

	rate, err := r.tools.SampleRate(ctx, inputPath)
	if err != nil {
		return err
	}
	channels, err := r.tools.Channels(ctx, inputPath)
	if err != nil {
		return err
	}
	log.Info("probed source", "sample_rate", rate, "channels", channels)

	chapters, err := r.recoverChapters(ctx, ws, inputPath, rate, opts)
	if err != nil {
		return err
	}

	tagsPathIn := ws.Path("tags-in.xml")
	if err := r.tools.ExtractTags(ctx, inputPath, tagsPathIn); err != nil {
		return err
	}
	tagData, err := os.ReadFile(tagsPathIn)
	if err != nil {
		return err
	}
	oldTags, err := meta.DecodeTagsXML(tagData)
	if err != nil {
		return err
	}
	// Re-key the track tags to the recovered chapter UIDs so both
	// artifacts describe the same track sequence.
	tags, err := rebuildTags(chapters, oldTags)
	if err != nil {
		return err
	}

	sourcePath := ws.Path("source.flac")
	if err := r.tools.ExtractTrack(ctx, inputPath, 0, sourcePath); err != nil {
		return err
	}

	streamPath := ws.Path("stream.flac")
	if err := r.reencode(ctx, sourcePath, streamPath); err != nil {
		return err
	}
	log.Info("stream re-encoded", "stream", streamPath)

	chaptersPath, tagsPath, err := r.writeMetadata(ws, chapters, tags, rate)
	if err != nil {
		return err
	}

	return r.tools.Mux(ctx, tools.MuxParams{
		Output:       outputPath,
		Title:        tags.Artist + " - " + tags.Title,
		StreamPath:   streamPath,
		CoverPath:    coverPath,
		TagsPath:     tagsPath,
		ChaptersPath: chaptersPath,
	})
}

// rebuildTags reissues the album's tags against the chapter UIDs of
// this run. Track titles carried by the old tags win over chapter
// display names; chapters parsed from a legacy text file have fresh
// UIDs the old tags cannot reference, so those fall back to the
// boundary names.
func rebuildTags(chapters *meta.Chapters, old *meta.Tags) (*meta.Tags, error) {
	names := make([]string, len(chapters.Boundaries))
	for i, b := range chapters.Boundaries {
		names[i] = b.Name
		if tr, ok := old.TrackByUID(b.UID); ok && tr.Title != "" {
			names[i] = tr.Title
		}
	}
	return meta.BuildTags(old.Artist, old.Title, old.Year, old.Genre, names, chapters.UIDs())
}

// recoverChapters reads boundaries either from the container's own
// chapter XML or from a caller-supplied legacy text file.
func (r *Runner) recoverChapters(ctx context.Context, ws *workspace.Workspace, inputPath string, rate int, opts ConvertOptions) (*meta.Chapters, error) {
	if opts.LegacyChaptersPath != "" {
		data, err := os.ReadFile(opts.LegacyChaptersPath)
		if err != nil {
			return nil, err
		}
		return meta.DecodeLegacy(data, r.uids)
	}

	chapPath := ws.Path("chapters-in.xml")
	if err := r.tools.ExtractChapters(ctx, inputPath, chapPath); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(chapPath)
	if err != nil {
		return nil, err
	}
	return meta.DecodeChaptersXML(data, rate)
}

// reencode pushes source through a flac decode|encode relay into dest so
// neither process ever holds the whole album in memory.
func (r *Runner) reencode(ctx context.Context, source, dest string) error {
	dec, err := r.tools.DecodeStage(ctx, source)
	if err != nil {
		return err
	}
	enc, err := r.tools.EncodeStage(ctx)
	if err != nil {
		return err
	}
	sink, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer sink.Close()

	return relay.Pipeline(dec, enc, sink, relay.DefaultBufferSize)
}
