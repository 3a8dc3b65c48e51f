package pipeline

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tmazur/album-archiver/internal/meta"
	"github.com/tmazur/album-archiver/internal/relay"
	"github.com/tmazur/album-archiver/internal/tools"
	"github.com/tmazur/album-archiver/internal/workspace"
)

// Rip archives a CD: query the table of contents, capture the disc into
// a FLAC stream in the background while album metadata is collected
// interactively, then mux stream, cover, tags and chapters. The mux does
// not start until both the capture and the metadata serialization have
// completed.
func (r *Runner) Rip(ctx context.Context, device, coverPath, outputPath string) error {
	runID := uuid.NewString()
	log := slog.With("run", runID, "flow", "rip")

	ws, err := workspace.New(runID)
	if err != nil {
		return err
	}
	defer ws.Close()

	lengths, err := r.tools.DiscTOC(ctx, device)
	if err != nil {
		return err
	}
	log.Info("disc read", "tracks", len(lengths))

	streamPath := ws.Path("stream.flac")

	var album albumInput
	var names []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.captureDisc(gctx, device, streamPath)
	})
	g.Go(func() error {
		var perr error
		album, names, perr = promptAlbum(r.in, r.out, len(lengths))
		return perr
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("capture finished", "stream", streamPath)

	uids := r.uids.UIDs(len(lengths))
	chapters, err := meta.FromBoundaries(names, startsFromLengths(lengths), uids)
	if err != nil {
		return err
	}
	tags, err := meta.BuildTags(album.Artist, album.Title, album.Year, album.Genre, names, uids)
	if err != nil {
		return err
	}

	chaptersPath, tagsPath, err := r.writeMetadata(ws, chapters, tags, tools.CDDARate)
	if err != nil {
		return err
	}

	return r.tools.Mux(ctx, tools.MuxParams{
		Output:       outputPath,
		Title:        album.Artist + " - " + album.Title,
		StreamPath:   streamPath,
		CoverPath:    coverPath,
		TagsPath:     tagsPath,
		ChaptersPath: chaptersPath,
	})
}

// captureDisc relays the disc reader's output through the FLAC encoder
// into dest.
func (r *Runner) captureDisc(ctx context.Context, device, dest string) error {
	rip, err := r.tools.RipStage(ctx, device)
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

	return relay.Pipeline(rip, enc, sink, relay.DefaultBufferSize)
}

// writeMetadata serializes chapters and tags into the run's workspace
// and returns their paths.
func (r *Runner) writeMetadata(ws *workspace.Workspace, chapters *meta.Chapters, tags *meta.Tags, sampleRate int) (chaptersPath, tagsPath string, err error) {
	chapXML, err := chapters.EncodeXML(sampleRate)
	if err != nil {
		return "", "", err
	}
	if chaptersPath, err = ws.WriteFile("chapters.xml", chapXML); err != nil {
		return "", "", err
	}

	tagXML, err := tags.EncodeXML()
	if err != nil {
		return "", "", err
	}
	if tagsPath, err = ws.WriteFile("tags.xml", tagXML); err != nil {
		return "", "", err
	}
	return chaptersPath, tagsPath, nil
}
