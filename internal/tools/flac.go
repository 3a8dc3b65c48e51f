package tools

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// EncodeStage returns a pipeline stage compressing WAV on stdin to FLAC
// on stdout.
func (t *Toolchain) EncodeStage(ctx context.Context) (*CmdStage, error) {
	cmd := exec.CommandContext(ctx, t.flac, "--silent", "--best", "--stdout", "-")
	return newCmdStage("flac encode", cmd, true)
}

// DecodeStage returns a pipeline stage decoding the given FLAC file to
// WAV on stdout.
func (t *Toolchain) DecodeStage(ctx context.Context, path string) (*CmdStage, error) {
	cmd := exec.CommandContext(ctx, t.flac, "--decode", "--silent", "--stdout", path)
	return newCmdStage("flac decode", cmd, false)
}

// decodeSpanArgs builds the argument list for a sample-accurate segment
// extraction. untilSample < 0 decodes to the end of the stream.
func decodeSpanArgs(input, output string, skipSample, untilSample int64) []string {
	args := []string{"--decode", "--silent", "--force", fmt.Sprintf("--skip=%d", skipSample)}
	if untilSample >= 0 {
		args = append(args, fmt.Sprintf("--until=%d", untilSample))
	}
	return append(args, "-o", output, input)
}

// DecodeSpan decodes the samples [skipSample, untilSample) of input into
// a WAV file at output. A negative untilSample means end of stream.
func (t *Toolchain) DecodeSpan(ctx context.Context, input, output string, skipSample, untilSample int64) error {
	slog.Debug("decoding segment",
		"input", input,
		"skip", skipSample,
		"until", untilSample,
	)
	_, _, err := run(ctx, "flac decode", t.flac, decodeSpanArgs(input, output, skipSample, untilSample)...)
	return err
}
