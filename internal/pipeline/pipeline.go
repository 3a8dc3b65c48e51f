// Package pipeline sequences the archival and distribution flows:
// extraction, relay, metadata assembly and the final mux. All stages run
// sequentially except the relay drains and the background disc capture.
package pipeline

import (
	"io"
	"strings"

	"github.com/tmazur/album-archiver/config"
	"github.com/tmazur/album-archiver/internal/meta"
	"github.com/tmazur/album-archiver/internal/tools"
)

type Runner struct {
	cfg   *config.Config
	tools *tools.Toolchain
	uids  *meta.Generator

	// Prompt streams, injected so tests can script the interaction.
	in  io.Reader
	out io.Writer
}

// New wires a runner from configuration. The UID generator is injected
// so runs are reproducible under test with a deterministic seed.
func New(cfg *config.Config, uids *meta.Generator, in io.Reader, out io.Writer) *Runner {
	return &Runner{
		cfg:   cfg,
		tools: tools.New(cfg.Tools),
		uids:  uids,
		in:    in,
		out:   out,
	}
}

// sanitizeTitle makes a track title safe for use in a file name.
func sanitizeTitle(title string) string {
	replacer := strings.NewReplacer("/", "-", ":", "-", "\"", "'", "?", "", "\\", "-", "|", "-")
	return replacer.Replace(title)
}

// startsFromLengths converts per-track lengths to cumulative start
// offsets, beginning at zero.
func startsFromLengths(lengths []int64) []int64 {
	starts := make([]int64, len(lengths))
	var sum int64
	for i, l := range lengths {
		starts[i] = sum
		sum += l
	}
	return starts
}
