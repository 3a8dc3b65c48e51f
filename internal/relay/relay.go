// Package relay pumps bytes between external processes so that two
// native tools operate as one pipeline without either blocking the
// other. Neither process is guaranteed to buffer its whole input or
// output, so the two copies must drain concurrently: with a single
// thread a large album deadlocks, the filter blocked writing output
// nobody reads while the producer blocks writing input the filter
// stopped reading.
package relay

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// DefaultBufferSize is the chunk size used by the orchestrators.
const DefaultBufferSize = 1 << 20

// ProcessError reports a pipeline stage that exited non-zero. It is
// surfaced only after both relays have drained.
type ProcessError struct {
	Stage string
	Err   error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Producer is an external process read through its stdout.
type Producer interface {
	Name() string
	Start() error
	Wait() error
	Stdout() io.Reader
}

// Filter is an external process written through its stdin and read
// through its stdout.
type Filter interface {
	Producer
	Stdin() io.WriteCloser
}

// Copy moves bytes from src to dst in bufSize chunks until end of
// stream, then closes dst's write side so the consumer sees EOF.
func Copy(src io.Reader, dst io.WriteCloser, bufSize int) (int64, error) {
	buf := make([]byte, bufSize)
	n, err := io.CopyBuffer(dst, src, buf)
	cerr := dst.Close()
	if err != nil {
		return n, err
	}
	return n, cerr
}

// Pipeline starts src and via, drains src's output into via's input and
// via's output into sink concurrently, and blocks until both relays
// finish. Only then is each process's exit status checked; a non-zero
// status yields a ProcessError naming the stage even when every byte
// was relayed.
func Pipeline(src Producer, via Filter, sink io.Writer, bufSize int) error {
	if err := src.Start(); err != nil {
		return &ProcessError{Stage: src.Name(), Err: err}
	}
	if err := via.Start(); err != nil {
		// Unblock the producer's Wait below.
		_, _ = io.Copy(io.Discard, src.Stdout())
		_ = src.Wait()
		return &ProcessError{Stage: via.Name(), Err: err}
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := Copy(src.Stdout(), via.Stdin(), bufSize)
		return err
	})
	g.Go(func() error {
		buf := make([]byte, bufSize)
		_, err := io.CopyBuffer(sink, via.Stdout(), buf)
		return err
	})
	relayErr := g.Wait()

	// Both relays are joined; now collect completion statuses.
	srcErr := src.Wait()
	viaErr := via.Wait()

	if srcErr != nil {
		return &ProcessError{Stage: src.Name(), Err: srcErr}
	}
	if viaErr != nil {
		return &ProcessError{Stage: via.Name(), Err: viaErr}
	}
	return relayErr
}
