package tools

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

// MP3Params carries one track's encode inputs. Any comment metadata in
// the source is discarded; only these fields end up in the output.
type MP3Params struct {
	Input      string
	Output     string
	Bitrate    int
	Title      string
	Artist     string
	Album      string
	Year       string
	Genre      string
	TrackNum   int
	TrackTotal int
	CoverPath  string
}

func mp3Args(p MP3Params) []string {
	return []string{
		"--quiet",
		"-b", strconv.Itoa(p.Bitrate),
		"--tt", p.Title,
		"--ta", p.Artist,
		"--tl", p.Album,
		"--ty", p.Year,
		"--tg", p.Genre,
		"--tn", fmt.Sprintf("%d/%d", p.TrackNum, p.TrackTotal),
		"--ti", p.CoverPath,
		p.Input,
		p.Output,
	}
}

// EncodeMP3 produces one lossy track file with embedded metadata and
// cover.
func (t *Toolchain) EncodeMP3(ctx context.Context, p MP3Params) error {
	slog.Debug("encoding mp3", "output", p.Output, "track", p.TrackNum)
	_, _, err := run(ctx, "lame", t.lame, mp3Args(p)...)
	return err
}
