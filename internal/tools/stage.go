package tools

import (
	"bytes"
	"io"
	"os/exec"
)

// CmdStage adapts an exec.Cmd to the relay's pipeline stage interfaces.
// Stderr is captured so a non-zero exit can report what the tool said.
type CmdStage struct {
	name   string
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stdin  io.WriteCloser
	stderr bytes.Buffer
}

func newCmdStage(name string, cmd *exec.Cmd, withStdin bool) (*CmdStage, error) {
	s := &CmdStage{name: name, cmd: cmd}
	cmd.Stderr = &s.stderr

	var err error
	s.stdout, err = cmd.StdoutPipe()
	if err != nil {
		return nil, newCmdError(name, cmd, nil, err)
	}
	if withStdin {
		s.stdin, err = cmd.StdinPipe()
		if err != nil {
			return nil, newCmdError(name, cmd, nil, err)
		}
	}
	return s, nil
}

func (s *CmdStage) Name() string { return s.name }

func (s *CmdStage) Start() error {
	if err := s.cmd.Start(); err != nil {
		return newCmdError(s.name, s.cmd, s.stderr.Bytes(), err)
	}
	return nil
}

func (s *CmdStage) Wait() error {
	if err := s.cmd.Wait(); err != nil {
		return newCmdError(s.name, s.cmd, s.stderr.Bytes(), err)
	}
	return nil
}

func (s *CmdStage) Stdout() io.Reader { return s.stdout }

func (s *CmdStage) Stdin() io.WriteCloser { return s.stdin }
