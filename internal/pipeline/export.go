package pipeline

import (
	"context"
	"os"

	"github.com/google/uuid"

	"github.com/tmazur/album-archiver/internal/meta"
	"github.com/tmazur/album-archiver/internal/workspace"
)

// ExportLegacyChapters writes an archive's chapters to the runner's
// output in the legacy CHAPTERnn text form. That format carries no
// sample rate and is only correct for 44100 Hz streams; the offsets are
// emitted as-is regardless.
func (r *Runner) ExportLegacyChapters(ctx context.Context, inputPath string) error {
	ws, err := workspace.New(uuid.NewString())
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
	data, err := os.ReadFile(chapPath)
	if err != nil {
		return err
	}
	chapters, err := meta.DecodeChaptersXML(data, rate)
	if err != nil {
		return err
	}

	_, err = r.out.Write(chapters.EncodeLegacy())
	return err
}
