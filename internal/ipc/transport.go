package ipc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/weft-term/weftctl/internal/target"
)

// ErrUnsupported is reported when the current platform has no IPC
// transport to a weft instance.
var ErrUnsupported = errors.New("no IPC transport on this platform")

// ReportedError wraps a delivery failure whose diagnostic has already
// been written for the user. Callers must not print it a second time.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// Transport delivers one command envelope to an instance.
type Transport interface {
	Deliver(ctx context.Context, sel target.Selector, env Envelope) error
}

// DefaultDialTimeout bounds delivery when the config does not say
// otherwise.
const DefaultDialTimeout = 3 * time.Second

// SocketTransport delivers envelopes as single datagrams on the
// instance's unix command socket.
type SocketTransport struct {
	// Dir overrides the socket directory (config socket_dir).
	Dir string
	// Timeout bounds the dial and the write. Zero means
	// DefaultDialTimeout.
	Timeout time.Duration
	// Stderr receives diagnostics the transport reports itself.
	// Defaults to os.Stderr.
	Stderr io.Writer
}

// Deliver implements Transport. A dial failure that means "no instance
// is listening" is reported here with the socket path and a hint, and
// returned as a ReportedError so the caller stays quiet.
func (t *SocketTransport) Deliver(ctx context.Context, sel target.Selector, env Envelope) error {
	if runtime.GOOS == "windows" {
		return ErrUnsupported
	}

	data, err := env.Encode()
	if err != nil {
		return err
	}

	path := SocketPath(t.Dir, sel)
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}

	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "unixgram", path)
	if err != nil {
		if isNoInstance(err) {
			t.reportNoInstance(path, sel)
			return &ReportedError{Err: fmt.Errorf("no instance at %s: %w", path, err)}
		}
		return fmt.Errorf("connect %s: %w", path, err)
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("send %s to %s: %w", env.Verb, path, err)
	}
	return nil
}

// isNoInstance recognizes dial failures that mean nothing is listening:
// the socket file does not exist, or it is stale with no reader behind it.
func isNoInstance(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ECONNREFUSED)
}

func (t *SocketTransport) reportNoInstance(path string, sel target.Selector) {
	w := t.Stderr
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "error: no running weft instance at %s\n", path)
	if id, ok := sel.Identity(); ok {
		fmt.Fprintf(w, "check that an instance with class %q is running\n", id)
	} else {
		fmt.Fprintf(w, "start weft first, or pass --class to address a specific instance\n")
	}
}
