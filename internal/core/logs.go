package core

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/docker/docker/pkg/stdcopy"

	"github.com/giantswarm/dockerenv/internal/sentinel"
)

// ErrLogStreamClosed is returned by the log wait when the container's log
// stream ends before the target message has appeared. With a follow-mode
// stream this means the container exited; the message can no longer show up.
const ErrLogStreamClosed = sentinel.Error("log stream closed before message appeared")

// logScanBufferSize caps a single log line. Lines longer than this fail
// the scan; 1 MiB is far beyond anything a readiness probe matches on.
const logScanBufferSize = 1024 * 1024

// waitForLogLine reads the engine's multiplexed log stream line by line
// until a line containing message appears. It consumes and closes rc.
//
// The engine multiplexes stdout/stderr frames onto one connection
// (containers started without a TTY); stdcopy strips the framing. Both
// demuxed streams land in the same pipe because the stream selection
// already happened when the log request was built: the engine only sends
// frames for the requested stream.
func waitForLogLine(ctx context.Context, rc io.ReadCloser, message string) error {
	defer rc.Close()

	pr, pw := io.Pipe()
	// Closing the read side on every exit path unblocks the demux
	// goroutine: its next write fails and it exits. Closing only rc
	// would not help a goroutine parked in pw.Write.
	defer pr.Close()
	go func() {
		_, err := stdcopy.StdCopy(pw, pw, rc)
		pw.CloseWithError(err)
	}()

	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 64*1024), logScanBufferSize)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), message) {
			return nil
		}
	}

	// Context cancellation surfaces as a read error on the engine stream;
	// prefer reporting the cancellation itself.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return ErrLogStreamClosed
}
