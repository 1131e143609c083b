// Package stdio serves the line-delimited request/response protocol: one JSON
// object per input line, one JSON envelope per output line.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rizesql/timeserver/internal/clock"
	"github.com/rizesql/timeserver/internal/envelope"
	"github.com/rizesql/timeserver/internal/o11y/logging"
	"github.com/rizesql/timeserver/internal/o11y/metrics"
	"github.com/rizesql/timeserver/internal/snapshot"
)

const (
	DefaultBanner      = "MCP time server started, waiting for requests on standard input..."
	DefaultMaxLineSize = 1 << 20
)

type State int32

const (
	StateListening State = iota
	StateProcessing
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateListening:
		return "listening"
	case StateProcessing:
		return "processing"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

type Dependencies struct {
	In     io.Reader
	Out    io.Writer
	Diag   io.Writer
	Clock  clock.Clock
	Logger *logging.Logger
}

type Config struct {
	Snapshot    snapshot.Config
	Banner      string
	MaxLineSize int
}

type Adapter struct {
	in     io.Reader
	out    io.Writer
	diag   io.Writer
	clk    clock.Clock
	logger *logging.Logger
	cfg    Config
	state  atomic.Int32
}

func New(deps Dependencies, cfg Config) *Adapter {
	if cfg.Banner == "" {
		cfg.Banner = DefaultBanner
	}
	if cfg.MaxLineSize <= 0 {
		cfg.MaxLineSize = DefaultMaxLineSize
	}
	if deps.Diag == nil {
		deps.Diag = io.Discard
	}
	if deps.Logger == nil {
		deps.Logger = logging.Noop()
	}
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}

	return &Adapter{
		in:     deps.In,
		out:    deps.Out,
		diag:   deps.Diag,
		clk:    deps.Clock,
		logger: deps.Logger,
		cfg:    cfg,
	}
}

func (a *Adapter) State() State { return State(a.state.Load()) }

func (a *Adapter) setState(s State) { a.state.Store(int32(s)) }

type line struct {
	data []byte
	err  error
}

// Serve writes the banner, then handles lines in arrival order until the
// input ends or ctx is cancelled. Both are clean exits and return nil. The
// input is closed on return when it implements io.Closer.
func (a *Adapter) Serve(ctx context.Context) error {
	if _, err := fmt.Fprintln(a.diag, a.cfg.Banner); err != nil {
		a.logger.Warn("failed to write banner", "error", err)
	}

	a.setState(StateListening)
	defer a.release()

	lines := make(chan line)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go a.read(lines, readErr, done)

	for {
		select {
		case <-ctx.Done():
			a.logger.Debug("stdio adapter stopping", "reason", ctx.Err())
			return nil

		case l, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				a.logger.Debug("stdio input closed")
				return nil
			}

			var err error
			if l.err != nil {
				err = a.reject(l.err)
			} else {
				err = a.Handle(l.data)
			}
			if err != nil {
				return err
			}
		}
	}
}

// Handle processes one input line. Blank lines produce no output; every other
// line produces exactly one envelope on the output.
func (a *Adapter) Handle(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		metrics.ObserveLine(metrics.LineSkipped)
		return nil
	}

	a.setState(StateProcessing)
	defer a.setState(StateListening)

	req, err := envelope.ParseRequest(data)
	if err != nil {
		a.logger.Debug("rejected stdio request", "error", err)
		metrics.ObserveLine(metrics.LineInvalid)
		return a.write(envelope.Failure(err))
	}

	snap := snapshot.Take(a.clk, a.cfg.Snapshot)
	metrics.ObserveLine(metrics.LineOK)
	metrics.ObserveSnapshot("stdio")

	return a.write(envelope.Success(req.ID, snap))
}

func (a *Adapter) reject(cause error) error {
	a.setState(StateProcessing)
	defer a.setState(StateListening)

	metrics.ObserveLine(metrics.LineInvalid)
	return a.write(envelope.Failure(fmt.Errorf("%w: %v", envelope.ErrInvalidRequest, cause)))
}

func (a *Adapter) write(resp envelope.Response) error {
	out, err := envelope.MarshalLine(resp)
	if err != nil {
		return err
	}
	if _, err := a.out.Write(out); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func (a *Adapter) release() {
	a.setState(StateClosed)

	c, ok := a.in.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		a.logger.Debug("failed to close input", "error", err)
	}
}

var ErrLineTooLong = errors.New("line too long")

func (a *Adapter) read(lines chan<- line, readErr chan<- error, done <-chan struct{}) {
	defer close(lines)

	br := bufio.NewReader(a.in)
	for {
		data, tooLong, err := readLine(br, a.cfg.MaxLineSize)

		if len(data) > 0 || tooLong {
			l := line{data: data}
			if tooLong {
				l = line{err: fmt.Errorf("%w: exceeds %d bytes", ErrLineTooLong, a.cfg.MaxLineSize)}
			}
			select {
			case lines <- l:
			case <-done:
				return
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			readErr <- err
			return
		}
	}
}

// readLine returns the next line including its newline. A line longer than
// max is drained and reported as tooLong without being buffered.
func readLine(br *bufio.Reader, max int) ([]byte, bool, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, err := br.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > max+1 {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		return buf, tooLong, err
	}
}
