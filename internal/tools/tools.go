// Package tools wraps the external binaries the archiver drives:
// cdparanoia, flac, the mkvtoolnix suite and lame. Each wrapper turns a
// process invocation into typed values or files; callers never see the
// tools' own output formats.
package tools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/tmazur/album-archiver/config"
)

// Toolchain holds the resolved binary names for one run.
type Toolchain struct {
	cdparanoia string
	flac       string
	mkvmerge   string
	mkvextract string
	mkvinfo    string
	lame       string
}

func New(cfg config.ToolsConfig) *Toolchain {
	return &Toolchain{
		cdparanoia: cfg.CDParanoia,
		flac:       cfg.Flac,
		mkvmerge:   cfg.MkvMerge,
		mkvextract: cfg.MkvExtract,
		mkvinfo:    cfg.MkvInfo,
		lame:       cfg.Lame,
	}
}

// cmdError wraps a failed tool invocation with the stage name and
// truncated command context.
type cmdError struct {
	stage   string
	cmd     string
	output  string
	wrapped error
}

func (e *cmdError) Error() string {
	return fmt.Sprintf("%s failed: %s\nCommand: %s\nOutput: %s", e.stage, e.wrapped, e.cmd, e.output)
}

func (e *cmdError) Unwrap() error {
	return e.wrapped
}

func newCmdError(stage string, cmd *exec.Cmd, output []byte, err error) error {
	cmdStr := cmd.String()
	if len(cmdStr) > 200 {
		cmdStr = cmdStr[:200] + "..."
	}
	out := string(output)
	if len(out) > 2000 {
		out = out[:2000] + "..."
	}
	return &cmdError{
		stage:   stage,
		cmd:     cmdStr,
		output:  out,
		wrapped: err,
	}
}

// run executes a tool to completion, returning stdout and stderr
// separately. Failures carry the stage name and the tool's output.
func run(ctx context.Context, stage, bin string, args ...string) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, newCmdError(stage, cmd, errBuf.Bytes(), err)
	}
	return outBuf.Bytes(), errBuf.Bytes(), nil
}
