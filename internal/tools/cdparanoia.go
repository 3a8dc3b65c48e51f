package tools

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"

	"github.com/tmazur/album-archiver/internal/scan"
)

// CDDA constants. Redbook audio is 44.1 kHz stereo; track lengths in the
// table of contents are given in sectors of 1/75 s, 588 samples each.
const (
	CDDARate         = 44100
	CDDAChannels     = 2
	SamplesPerSector = 588
)

// tocRow matches one audio-track row of the cdparanoia -Q table, e.g.
//
//	  1.    16325 [03:37.50]        0 [00:00.00]    no   no  2
//
// capturing the track length in sectors.
var tocRow = regexp.MustCompile(`^\s*\d+\.\s+(\d+)\s+\[[0-9:.]+\]\s+\d+\s+\[[0-9:.]+\]\s+\S+\s+\S+\s+\d+`)

// DiscTOC queries the drive's table of contents and returns per-track
// lengths in samples, in disc order. cdparanoia prints the table on
// stderr.
func (t *Toolchain) DiscTOC(ctx context.Context, device string) ([]int64, error) {
	slog.Debug("querying disc TOC", "device", device)

	_, stderr, err := run(ctx, "cdparanoia query", t.cdparanoia, "-Q", "-d", device)
	if err != nil {
		return nil, err
	}

	sectors, err := scan.Int64s(bytes.NewReader(stderr), tocRow)
	if err != nil {
		return nil, fmt.Errorf("disc TOC: %w", err)
	}

	lengths := make([]int64, len(sectors))
	for i, s := range sectors {
		lengths[i] = s * SamplesPerSector
	}
	return lengths, nil
}

// RipStage returns a pipeline stage streaming the whole disc as WAV on
// stdout.
func (t *Toolchain) RipStage(ctx context.Context, device string) (*CmdStage, error) {
	cmd := exec.CommandContext(ctx, t.cdparanoia, "-d", device, "1-", "-")
	return newCmdStage("cdparanoia rip", cmd, false)
}
